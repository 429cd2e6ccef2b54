package google

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestValidateIdentity(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		wantErr  bool
	}{
		{"plain name", "demo", false},
		{"email address", "alice@example.com", false},
		{"with hyphen", "work-account", false},
		{"with underscore", "personal_cal", false},
		{"empty", "", true},
		{"with spaces", "my account", true},
		{"with slash", "work/personal", true},
		{"path traversal", "../etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateIdentity(tt.identity)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateIdentity(%q) error = %v, wantErr %v", tt.identity, err, tt.wantErr)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("SCHEDBOT_TOKEN_DIR", t.TempDir())

	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}

	if err := SaveToken("demo", token); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}

	if !HasTokenForIdentity("demo") {
		t.Error("expected token to exist after save")
	}
	if HasTokenForIdentity("other") {
		t.Error("expected no token for unknown identity")
	}

	loaded, err := LoadToken("demo")
	if err != nil {
		t.Fatalf("LoadToken() error = %v", err)
	}
	if loaded.AccessToken != token.AccessToken || loaded.RefreshToken != token.RefreshToken {
		t.Errorf("loaded token = %+v, expected %+v", loaded, token)
	}
}

func TestLoadTokenMissing(t *testing.T) {
	t.Setenv("SCHEDBOT_TOKEN_DIR", t.TempDir())

	if _, err := LoadToken("nobody"); err == nil {
		t.Error("expected error for missing token")
	}
}

func TestLoadTokenCorrupt(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SCHEDBOT_TOKEN_DIR", dir)

	if err := os.WriteFile(filepath.Join(dir, "demo.json"), []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadToken("demo"); err == nil {
		t.Error("expected error for corrupt token file")
	}
}

func TestValidateOAuthConfig(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_REDIRECT_URI", "")
	if err := ValidateOAuthConfig(); err == nil {
		t.Error("expected error with empty OAuth env")
	}

	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_REDIRECT_URI", "http://localhost:8000/auth/google/callback")
	if err := ValidateOAuthConfig(); err != nil {
		t.Errorf("ValidateOAuthConfig() error = %v", err)
	}
}

func TestStaticTokenProvider(t *testing.T) {
	provider := &StaticTokenProvider{Token: &oauth2.Token{AccessToken: "x"}}
	if !provider.HasTokenForIdentity("anyone") {
		t.Error("expected static provider to report a token")
	}

	empty := &StaticTokenProvider{}
	if empty.HasTokenForIdentity("anyone") {
		t.Error("expected empty static provider to report no token")
	}
}
