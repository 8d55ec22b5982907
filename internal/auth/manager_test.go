package auth

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikimigrate/internal/config"
	"git.home.luguber.info/inful/wikimigrate/internal/foundation/errors"
)

func TestManager_CreateAuth(t *testing.T) {
	manager := NewManager()

	tests := []struct {
		name        string
		authConfig  *config.AuthConfig
		expectNil   bool
		expectError bool
		wantUser    string
		wantPass    string
	}{
		{
			name:      "nil config",
			expectNil: true,
		},
		{
			name:       "empty type",
			authConfig: &config.AuthConfig{},
			expectNil:  true,
		},
		{
			name:       "none auth",
			authConfig: &config.AuthConfig{Type: config.AuthTypeNone},
			expectNil:  true,
		},
		{
			name:       "token auth",
			authConfig: &config.AuthConfig{Type: config.AuthTypeToken, Token: "glpat-123"},
			wantUser:   "token",
			wantPass:   "glpat-123",
		},
		{
			name:       "token auth with explicit username",
			authConfig: &config.AuthConfig{Type: config.AuthTypeToken, Token: "glpat-123", Username: "oauth2"},
			wantUser:   "oauth2",
			wantPass:   "glpat-123",
		},
		{
			name:        "token auth missing token",
			authConfig:  &config.AuthConfig{Type: config.AuthTypeToken},
			expectNil:   true,
			expectError: true,
		},
		{
			name:       "basic auth",
			authConfig: &config.AuthConfig{Type: config.AuthTypeBasic, Username: "alice", Password: "secret"},
			wantUser:   "alice",
			wantPass:   "secret",
		},
		{
			name:        "basic auth missing username",
			authConfig:  &config.AuthConfig{Type: config.AuthTypeBasic, Password: "secret"},
			expectNil:   true,
			expectError: true,
		},
		{
			name:        "basic auth missing password",
			authConfig:  &config.AuthConfig{Type: config.AuthTypeBasic, Username: "alice"},
			expectNil:   true,
			expectError: true,
		},
		{
			name:        "ssh key missing",
			authConfig:  &config.AuthConfig{Type: config.AuthTypeSSH, KeyPath: filepath.Join(t.TempDir(), "id_missing")},
			expectNil:   true,
			expectError: true,
		},
		{
			name:        "unsupported auth type",
			authConfig:  &config.AuthConfig{Type: "kerberos"},
			expectNil:   true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, err := manager.CreateAuth(tt.authConfig)
			if tt.expectError {
				require.Error(t, err)
				require.True(t, errors.HasCategory(err, errors.CategoryAuth), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			if tt.expectNil {
				require.Nil(t, auth)
				return
			}

			basic, ok := auth.(*http.BasicAuth)
			require.True(t, ok, "expected *http.BasicAuth, got %T", auth)
			require.Equal(t, tt.wantUser, basic.Username)
			require.Equal(t, tt.wantPass, basic.Password)
		})
	}
}

func TestCreateAuth_DefaultManager(t *testing.T) {
	auth, err := CreateAuth(&config.AuthConfig{Type: config.AuthTypeToken, Token: "t"})
	require.NoError(t, err)
	require.NotNil(t, auth)
	require.Equal(t, "http-basic-auth", auth.Name())
}
