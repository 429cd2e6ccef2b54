package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// TokenProvider supplies OAuth tokens for organizer identities. The file
// implementation is the default; tests substitute static providers.
type TokenProvider interface {
	// GetTokenForIdentity retrieves a valid OAuth token for the identity,
	// refreshing it if necessary.
	GetTokenForIdentity(ctx context.Context, identity string) (*oauth2.Token, error)

	// HasTokenForIdentity reports whether credentials exist for the identity.
	HasTokenForIdentity(identity string) bool
}

// FileTokenProvider reads tokens persisted by the OAuth callback handler.
type FileTokenProvider struct{}

// NewFileTokenProvider creates the default file-backed token provider.
func NewFileTokenProvider() *FileTokenProvider {
	return &FileTokenProvider{}
}

func (p *FileTokenProvider) GetTokenForIdentity(ctx context.Context, identity string) (*oauth2.Token, error) {
	ts, err := GetTokenSourceForIdentity(ctx, identity)
	if err != nil {
		return nil, err
	}

	token, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token for identity %s: %w", identity, err)
	}

	return token, nil
}

func (p *FileTokenProvider) HasTokenForIdentity(identity string) bool {
	return HasTokenForIdentity(identity)
}

// StaticTokenProvider serves a fixed token for every identity. Test helper.
type StaticTokenProvider struct {
	Token *oauth2.Token
}

func (p *StaticTokenProvider) GetTokenForIdentity(ctx context.Context, identity string) (*oauth2.Token, error) {
	if p.Token == nil {
		return nil, fmt.Errorf("no token configured for identity %s", identity)
	}
	return p.Token, nil
}

func (p *StaticTokenProvider) HasTokenForIdentity(identity string) bool {
	return p.Token != nil
}
