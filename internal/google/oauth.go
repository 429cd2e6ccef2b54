package google

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
)

// OAuthScopes are the Google scopes the assistant needs. Calendar access
// covers both the free/busy query and event creation.
var OAuthScopes = []string{
	calendar.CalendarScope,
}

// GetOAuthConfig returns the OAuth2 configuration for the Google Calendar
// web flow. Client credentials and the redirect URI come from the
// GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URI environment
// variables.
func GetOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Endpoint:     google.Endpoint,
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
		Scopes:       OAuthScopes,
	}
}

// ValidateOAuthConfig checks that the OAuth environment is complete enough
// to run the authorization flow.
func ValidateOAuthConfig() error {
	conf := GetOAuthConfig()
	if conf.ClientID == "" || conf.ClientSecret == "" || conf.RedirectURL == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URI must be set")
	}
	return nil
}

// AuthCodeURL returns the Google consent URL for the given CSRF state.
// Offline access with forced consent guarantees a refresh token on first
// authorization.
func AuthCodeURL(state string) string {
	conf := GetOAuthConfig()
	return conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// ExchangeAndSaveToken exchanges an authorization code and persists the
// resulting token for the identity.
func ExchangeAndSaveToken(ctx context.Context, identity, authCode string) error {
	conf := GetOAuthConfig()

	token, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	return SaveToken(identity, token)
}

// identityPattern restricts identities to filesystem-safe names; identities
// become token file names.
var identityPattern = regexp.MustCompile(`^[a-zA-Z0-9._@-]+$`)

func validateIdentity(identity string) error {
	if identity == "" {
		return fmt.Errorf("identity cannot be empty")
	}
	if !identityPattern.MatchString(identity) {
		return fmt.Errorf("invalid identity %q: only letters, digits, '.', '_', '@' and '-' are allowed", identity)
	}
	return nil
}

// tokenDir returns the directory token files are stored in, creating is
// deferred to SaveToken. Overridable via SCHEDBOT_TOKEN_DIR for tests and
// containerized deployments.
func tokenDir() string {
	if dir := os.Getenv("SCHEDBOT_TOKEN_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(userCacheDir(), "schedbot", "tokens")
}

func tokenFilePath(identity string) string {
	return filepath.Join(tokenDir(), identity+".json")
}

// SaveToken persists an OAuth token for the identity as JSON on disk.
func SaveToken(identity string, token *oauth2.Token) error {
	if err := validateIdentity(identity); err != nil {
		return err
	}

	if err := os.MkdirAll(tokenDir(), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	if err := os.WriteFile(tokenFilePath(identity), data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// LoadToken reads the stored OAuth token for the identity.
func LoadToken(identity string) (*oauth2.Token, error) {
	if err := validateIdentity(identity); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(tokenFilePath(identity))
	if err != nil {
		return nil, fmt.Errorf("no Google token for identity %s: %w", identity, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token file for identity %s: %w", identity, err)
	}

	return &token, nil
}

// HasTokenForIdentity reports whether a stored token exists for the identity.
func HasTokenForIdentity(identity string) bool {
	if validateIdentity(identity) != nil {
		return false
	}
	_, err := os.Stat(tokenFilePath(identity))
	return err == nil
}

// GetTokenSourceForIdentity returns a refreshing token source backed by the
// stored token. Refreshed tokens are not written back; Google keeps the
// refresh token stable across refreshes.
func GetTokenSourceForIdentity(ctx context.Context, identity string) (oauth2.TokenSource, error) {
	token, err := LoadToken(identity)
	if err != nil {
		return nil, err
	}

	conf := GetOAuthConfig()
	return conf.TokenSource(ctx, token), nil
}

func userCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches")
	case "windows":
		for _, ev := range []string{"TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return v
			}
		}
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".cache")
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
