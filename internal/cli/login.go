// Package cli provides command-line interface commands for dtmediawiki.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitaly-zdanevich/dtMediaWiki/internal/auth"
	"github.com/vitaly-zdanevich/dtMediaWiki/internal/config"
)

// NewLoginCmd creates the login command
func NewLoginCmd(userAgent string) *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify wiki credentials and save them",
		Long: `Interactive login to the target wiki.

Prompts for username and password, verifies them with a real login call
against the wiki API, then saves them to the configuration file for future
exports. The password is stored in cleartext in the config file; the file is
created with 0600 permissions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, apiURL, userAgent)
		},
	}
	cmd.Flags().StringVar(&apiURL, "wiki", "", "api.php endpoint of the target wiki (default Wikimedia Commons)")
	return cmd
}

func runLogin(cmd *cobra.Command, apiURL, userAgent string) error {
	fmt.Println("dtMediaWiki - Login")
	fmt.Println()

	creds, err := auth.InteractiveLogin(cmd.Context(), apiURL, userAgent)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println()
	fmt.Println("Login successful!")
	fmt.Printf("Wiki: %s\n", creds.APIURL)
	fmt.Printf("Username: %s\n", creds.Username)
	fmt.Println()

	// Load existing config (or create new)
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Wiki.APIURL = creds.APIURL
	cfg.Wiki.Username = creds.Username
	cfg.Wiki.Password = creds.Password

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configDir, _ := config.GetConfigDir()
	fmt.Printf("Credentials saved to: %s/config.yaml\n", configDir)
	fmt.Println()
	fmt.Println("You can now run 'dtmediawiki export' to upload images!")

	return nil
}
