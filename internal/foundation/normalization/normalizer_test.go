package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type backoff string

const (
	backoffFixed  backoff = "fixed"
	backoffLinear backoff = "linear"
)

func newBackoffNormalizer() *Normalizer[backoff] {
	return NewNormalizer(map[string]backoff{
		"fixed":  backoffFixed,
		"Linear": backoffLinear,
	}, "")
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newBackoffNormalizer()

	tests := []struct {
		name     string
		input    string
		expected backoff
	}{
		{"exact match", "fixed", backoffFixed},
		{"case insensitive", "FIXED", backoffFixed},
		{"key normalized", "linear", backoffLinear},
		{"with spaces", "  linear  ", backoffLinear},
		{"invalid input", "random", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_NormalizeWithError(t *testing.T) {
	n := newBackoffNormalizer()

	v, err := n.NormalizeWithError(" Fixed")
	require.NoError(t, err)
	require.Equal(t, backoffFixed, v)

	_, err = n.NormalizeWithError("jitter")
	require.EqualError(t, err, `invalid value "jitter", valid options: fixed, linear`)
}

func TestNormalizer_ValidKeysIsACopy(t *testing.T) {
	n := newBackoffNormalizer()
	keys := n.ValidKeys()
	require.Equal(t, []string{"fixed", "linear"}, keys)
	keys[0] = "mutated"
	require.Equal(t, []string{"fixed", "linear"}, n.ValidKeys())
}
