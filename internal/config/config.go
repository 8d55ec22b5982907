package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/wikimigrate/internal/foundation/errors"
)

// Config represents the configuration of a single wiki migration run.
type Config struct {
	Source        string          `yaml:"source"`
	Destination   string          `yaml:"destination"`
	Auth          *AuthConfig     `yaml:"auth,omitempty"`
	Remote        string          `yaml:"remote"`
	Branch        string          `yaml:"branch"`
	CommitMessage string          `yaml:"commit_message"`
	InitMessage   string          `yaml:"init_message"`
	Author        AuthorConfig    `yaml:"author"`
	Rewrite       RewriteConfig   `yaml:"rewrite"`
	Workspace     WorkspaceConfig `yaml:"workspace"`
	Retry         RetryConfig     `yaml:"retry"`
	DryRun        bool            `yaml:"dry_run"`
	MetricsFile   string          `yaml:"metrics_file,omitempty"`
}

// AuthorConfig is the signature used for commits created by the migration.
type AuthorConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// RewriteConfig controls the link rewriting pass.
type RewriteConfig struct {
	Extensions []string `yaml:"extensions"`
}

// WorkspaceConfig controls the temporary working copy.
type WorkspaceConfig struct {
	BaseDir string `yaml:"base_dir,omitempty"` // defaults to os.TempDir()
	Keep    bool   `yaml:"keep"`               // keep the working copy after the run (debugging)
}

// Default values applied when neither file, environment nor flags set them.
const (
	DefaultRemote        = "origin"
	DefaultBranch        = "master"
	DefaultCommitMessage = "chore: rewrite GitLab-style relative wiki links for GitHub"
	DefaultInitMessage   = "Initialize wiki"
	DefaultAuthorName    = "wikimigrate"
	DefaultAuthorEmail   = "wikimigrate@localhost"
)

// DefaultExtensions lists the markdown-family suffixes rewritten by default.
var DefaultExtensions = []string{".md", ".markdown"}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads an optional YAML configuration file, then applies environment overrides and defaults.
// An empty path skips the file.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if configPath != "" {
		// #nosec G304 - path is operator supplied
		data, err := os.ReadFile(configPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.ConfigError(fmt.Sprintf("configuration file not found: %s", configPath)).Build()
			}
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
				Fatal().
				WithContext("path", configPath).
				Build()
		}

		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").
				Fatal().
				WithContext("path", configPath).
				Build()
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

// SetToken installs token authentication unless the token is empty. A username
// already configured (e.g. oauth2 for GitLab OAuth tokens) is kept.
func (c *Config) SetToken(token string) {
	if token == "" {
		return
	}
	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	c.Auth.Type = AuthTypeToken
	c.Auth.Token = token
}

func applyDefaults(cfg *Config) {
	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}
	if cfg.Branch == "" {
		cfg.Branch = DefaultBranch
	}
	if cfg.CommitMessage == "" {
		cfg.CommitMessage = DefaultCommitMessage
	}
	if cfg.InitMessage == "" {
		cfg.InitMessage = DefaultInitMessage
	}
	if cfg.Author.Name == "" {
		cfg.Author.Name = DefaultAuthorName
	}
	if cfg.Author.Email == "" {
		cfg.Author.Email = DefaultAuthorEmail
	}
	if len(cfg.Rewrite.Extensions) == 0 {
		cfg.Rewrite.Extensions = append([]string(nil), DefaultExtensions...)
	}
	cfg.Retry.applyDefaults()
}
