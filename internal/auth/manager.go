// Package auth turns credential configuration into go-git transport authentication.
package auth

import (
	"log/slog"

	"github.com/go-git/go-git/v5/plumbing/transport"

	"git.home.luguber.info/inful/wikimigrate/internal/auth/providers"
	"git.home.luguber.info/inful/wikimigrate/internal/config"
)

// Manager provides a high-level interface for authentication operations.
type Manager struct {
	registry *providers.AuthProviderRegistry
}

// NewManager creates a new authentication manager with the standard providers.
func NewManager() *Manager {
	return &Manager{
		registry: providers.NewAuthProviderRegistry(),
	}
}

// CreateAuth creates authentication for the given configuration. The result is nil
// for anonymous access.
func (m *Manager) CreateAuth(authCfg *config.AuthConfig) (transport.AuthMethod, error) {
	res, err := m.registry.CreateAuth(authCfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("Created authentication", slog.String("provider", res.Provider), slog.String("type", string(res.Type)))
	return res.Auth, nil
}

// DefaultManager is a package-level instance for convenience.
var DefaultManager = NewManager()

// CreateAuth is a convenience function that uses the default manager.
func CreateAuth(authCfg *config.AuthConfig) (transport.AuthMethod, error) {
	return DefaultManager.CreateAuth(authCfg)
}
