// Package auth provides wiki authentication functionality.
package auth

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/vitaly-zdanevich/dtMediaWiki/internal/wiki"
)

// LoginCredentials holds the result of a successful login
type LoginCredentials struct {
	APIURL   string
	Username string
	Password string
}

// InteractiveLogin prompts the user for credentials and verifies them with a
// real login call against the wiki. The password never echoes.
func InteractiveLogin(ctx context.Context, apiURL, userAgent string) (*LoginCredentials, error) {
	reader := bufio.NewReader(os.Stdin)

	if apiURL == "" {
		fmt.Printf("Wiki API URL (default %s): ", wiki.DefaultAPIURL)
		entered, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read API URL: %w", err)
		}
		apiURL = strings.TrimSpace(entered)
		if apiURL == "" {
			apiURL = wiki.DefaultAPIURL
		}
	}

	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read username: %w", err)
	}
	username = strings.TrimSpace(username)

	// Prompt for password (hidden input)
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Print newline after password input
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	password := string(passwordBytes)

	client, err := wiki.NewClient(apiURL, userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to create wiki client: %w", err)
	}

	if err := client.Login(ctx, username, password); err != nil {
		return nil, err
	}

	return &LoginCredentials{
		APIURL:   apiURL,
		Username: username,
		Password: password,
	}, nil
}
