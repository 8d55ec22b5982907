package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"git.home.luguber.info/inful/wikimigrate/internal/config"
)

// SSHProvider handles SSH key authentication for git@host:group/project.wiki.git remotes.
type SSHProvider struct{}

// NewSSHProvider creates a new SSH authentication provider.
func NewSSHProvider() *SSHProvider {
	return &SSHProvider{}
}

// Type returns the authentication type this provider handles.
func (p *SSHProvider) Type() config.AuthType {
	return config.AuthTypeSSH
}

// CreateAuth loads the private key. Password, when set, decrypts the key.
func (p *SSHProvider) CreateAuth(authConfig *config.AuthConfig) (transport.AuthMethod, error) {
	keyPath := sshKeyPath(authConfig)

	publicKeys, err := ssh.NewPublicKeysFromFile("git", keyPath, authConfig.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to load SSH key from %s: %w", keyPath, err)
	}
	return publicKeys, nil
}

// ValidateConfig checks that the key file exists.
func (p *SSHProvider) ValidateConfig(authConfig *config.AuthConfig) error {
	keyPath := sshKeyPath(authConfig)
	if _, err := os.Stat(keyPath); os.IsNotExist(err) {
		return fmt.Errorf("SSH key file does not exist: %s", keyPath)
	}
	return nil
}

// Name returns a human-readable name for this provider.
func (p *SSHProvider) Name() string {
	return "SSHProvider"
}

func sshKeyPath(authConfig *config.AuthConfig) string {
	if authConfig.KeyPath != "" {
		return authConfig.KeyPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".ssh", "id_rsa")
}
