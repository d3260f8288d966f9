// Package wiki implements a minimal MediaWiki action API client: password
// login, CSRF token handling and multipart file uploads.
package wiki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultAPIURL points at Wikimedia Commons.
const DefaultAPIURL = "https://commons.wikimedia.org/w/api.php"

var (
	// ErrFileExists is returned when the target page name is already taken
	// on the wiki and overwriting was not allowed.
	ErrFileExists = errors.New("file already exists on the wiki")

	// ErrNotLoggedIn is returned when Upload is called before a successful
	// Login.
	ErrNotLoggedIn = errors.New("not logged in")
)

// AuthError reports a failed login. It is fatal for the run: the caller is
// expected to abort instead of retrying per image.
type AuthError struct {
	Result string
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("login failed: %s (%s)", e.Reason, e.Result)
	}
	return fmt.Sprintf("login failed: %s", e.Result)
}

// Client is an authenticated session against one wiki. Login must be called
// once before Upload; after that the session is read-only shared state.
type Client struct {
	apiURL    string
	userAgent string
	http      *http.Client
	csrfToken string
}

// NewClient creates a client for the given api.php endpoint.
func NewClient(apiURL, userAgent string) (*Client, error) {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		apiURL:    apiURL,
		userAgent: userAgent,
		http: &http.Client{
			Jar:     jar,
			Timeout: 5 * time.Minute,
		},
	}, nil
}

// LoggedIn reports whether a Login call has succeeded on this client.
func (c *Client) LoggedIn() bool {
	return c.csrfToken != ""
}

// Login establishes the session: it fetches a login token, performs the
// action=login call and caches the CSRF token for subsequent uploads. Any
// non-Success result is returned as an *AuthError.
func (c *Client) Login(ctx context.Context, username, password string) error {
	loginToken, err := c.fetchToken(ctx, "login")
	if err != nil {
		return fmt.Errorf("failed to fetch login token: %w", err)
	}

	body, err := c.postForm(ctx, url.Values{
		"action":     {"login"},
		"format":     {"json"},
		"lgname":     {username},
		"lgpassword": {password},
		"lgtoken":    {loginToken},
	})
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}

	var result struct {
		Login struct {
			Result string `json:"result"`
			Reason string `json:"reason"`
		} `json:"login"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}

	if result.Login.Result != "Success" {
		return &AuthError{Result: result.Login.Result, Reason: result.Login.Reason}
	}

	csrf, err := c.fetchToken(ctx, "csrf")
	if err != nil {
		return fmt.Errorf("failed to fetch csrf token: %w", err)
	}
	c.csrfToken = csrf

	return nil
}

// Upload submits the file and its description page as one action=upload
// call. When the page name is already taken the upload succeeds only with
// overwrite set; otherwise it fails with ErrFileExists. Failures are never
// retried here.
func (c *Client) Upload(ctx context.Context, localPath, pageName, pageText, comment string, overwrite bool) error {
	if !c.LoggedIn() {
		return ErrNotLoggedIn
	}

	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"action":   "upload",
		"format":   "json",
		"filename": pageName,
		"text":     pageText,
		"comment":  comment,
		"token":    c.csrfToken,
	}
	if overwrite {
		fields["ignorewarnings"] = "1"
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write form field: %w", err)
		}
	}

	part, err := writer.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, truncate(body))
	}

	return parseUploadResponse(body, pageName)
}

func parseUploadResponse(body []byte, pageName string) error {
	var result struct {
		Error *struct {
			Code string `json:"code"`
			Info string `json:"info"`
		} `json:"error"`
		Upload *struct {
			Result   string                     `json:"result"`
			Warnings map[string]json.RawMessage `json:"warnings"`
		} `json:"upload"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse upload response: %w", err)
	}

	if result.Error != nil {
		return fmt.Errorf("upload rejected: %s (%s)", result.Error.Info, result.Error.Code)
	}
	if result.Upload == nil {
		return fmt.Errorf("unexpected upload response: %s", truncate(body))
	}

	switch result.Upload.Result {
	case "Success":
		return nil
	case "Warning":
		if _, exists := result.Upload.Warnings["exists"]; exists {
			return fmt.Errorf("%q: %w", pageName, ErrFileExists)
		}
		return fmt.Errorf("upload blocked by warnings: %s", warningKeys(result.Upload.Warnings))
	default:
		return fmt.Errorf("upload failed with result %q", result.Upload.Result)
	}
}

// fetchToken requests a token of the given type (login or csrf) from the
// action API.
func (c *Client) fetchToken(ctx context.Context, tokenType string) (string, error) {
	query := url.Values{
		"action": {"query"},
		"meta":   {"tokens"},
		"type":   {tokenType},
		"format": {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, truncate(body))
	}

	var result struct {
		Query struct {
			Tokens map[string]string `json:"tokens"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}

	token := result.Query.Tokens[tokenType+"token"]
	if token == "" {
		return "", fmt.Errorf("no %s token in response", tokenType)
	}
	return token, nil
}

func (c *Client) postForm(ctx context.Context, values url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, truncate(body))
	}

	return body, nil
}

func warningKeys(warnings map[string]json.RawMessage) string {
	keys := make([]string, 0, len(warnings))
	for k := range warnings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func truncate(body []byte) string {
	s := string(body)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
