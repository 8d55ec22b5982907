package providers

import (
	"fmt"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"git.home.luguber.info/inful/wikimigrate/internal/config"
)

// TokenUsername is sent alongside a personal access token. Both GitLab and GitHub
// ignore the username when the password is a token.
const TokenUsername = "token"

// TokenProvider handles personal access token authentication over HTTPS.
type TokenProvider struct{}

// NewTokenProvider creates a new token authentication provider.
func NewTokenProvider() *TokenProvider {
	return &TokenProvider{}
}

// Type returns the authentication type this provider handles.
func (p *TokenProvider) Type() config.AuthType {
	return config.AuthTypeToken
}

// CreateAuth creates token authentication from the configuration.
func (p *TokenProvider) CreateAuth(authConfig *config.AuthConfig) (transport.AuthMethod, error) {
	if err := p.ValidateConfig(authConfig); err != nil {
		return nil, err
	}

	username := authConfig.Username
	if username == "" {
		username = TokenUsername
	}
	return &http.BasicAuth{
		Username: username,
		Password: authConfig.Token,
	}, nil
}

// ValidateConfig validates the token authentication configuration.
func (p *TokenProvider) ValidateConfig(authConfig *config.AuthConfig) error {
	if authConfig.Token == "" {
		return fmt.Errorf("token authentication requires a token")
	}
	return nil
}

// Name returns a human-readable name for this provider.
func (p *TokenProvider) Name() string {
	return "TokenProvider"
}
