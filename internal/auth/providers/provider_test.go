package providers

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/wikimigrate/internal/config"
)

type staticProvider struct{}

func (staticProvider) Type() config.AuthType { return config.AuthTypeToken }
func (staticProvider) CreateAuth(*config.AuthConfig) (transport.AuthMethod, error) {
	return &http.BasicAuth{Username: "static", Password: "static"}, nil
}
func (staticProvider) ValidateConfig(*config.AuthConfig) error { return nil }
func (staticProvider) Name() string                            { return "StaticProvider" }

func TestRegistry_StandardProviders(t *testing.T) {
	registry := NewAuthProviderRegistry()
	for _, typ := range []config.AuthType{config.AuthTypeNone, config.AuthTypeSSH, config.AuthTypeToken, config.AuthTypeBasic} {
		_, ok := registry.GetProvider(typ)
		require.True(t, ok, "missing provider for %s", typ)
	}
	_, ok := registry.GetProvider("kerberos")
	require.False(t, ok)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	registry := NewAuthProviderRegistry()
	registry.Register(staticProvider{})

	res, err := registry.CreateAuth(&config.AuthConfig{Type: config.AuthTypeToken})
	require.NoError(t, err)
	require.Equal(t, "StaticProvider", res.Provider)
	require.Equal(t, config.AuthTypeToken, res.Type)
}

func TestRegistry_ZeroConfigIsAnonymous(t *testing.T) {
	res, err := NewAuthProviderRegistry().CreateAuth(nil)
	require.NoError(t, err)
	require.Nil(t, res.Auth)
	require.Equal(t, "NoneProvider", res.Provider)
}
