package config

import "git.home.luguber.info/inful/wikimigrate/internal/foundation/normalization"

// AuthType enumerates supported authentication methods (stringly for YAML compatibility)
type AuthType string

const (
	AuthTypeNone  AuthType = "none"
	AuthTypeSSH   AuthType = "ssh"
	AuthTypeToken AuthType = "token"
	AuthTypeBasic AuthType = "basic"
)

// AuthConfig represents authentication configuration for both remotes.
type AuthConfig struct {
	Type     AuthType `yaml:"type"` // ssh|token|basic|none
	Username string   `yaml:"username,omitempty"`
	Password string   `yaml:"password,omitempty"`
	Token    string   `yaml:"token,omitempty"`
	KeyPath  string   `yaml:"key_path,omitempty"`
}

// IsZero reports whether no auth method specified.
func (a *AuthConfig) IsZero() bool { return a == nil || a.Type == "" || a.Type == AuthTypeNone }

var authTypeNormalizer = normalization.NewNormalizer(map[string]AuthType{
	string(AuthTypeNone):  AuthTypeNone,
	string(AuthTypeSSH):   AuthTypeSSH,
	string(AuthTypeToken): AuthTypeToken,
	string(AuthTypeBasic): AuthTypeBasic,
}, "")
