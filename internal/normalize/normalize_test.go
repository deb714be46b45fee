package normalize_test

import (
	"testing"

	"github.com/coldharbor-labs/suppression-screen/internal/normalize"
	"github.com/coldharbor-labs/suppression-screen/pkg/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_DefaultsToHTTPS(t *testing.T) {
	u, err := normalize.Normalize("example.com")
	require.Nil(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "example.com", u.Host)
	assert.Equal(t, "/", u.Path)
}

func TestNormalize_ClearsQueryAndFragment(t *testing.T) {
	u, err := normalize.Normalize("https://example.com/docs/page?x=1#section")
	require.Nil(t, err)
	assert.Equal(t, "/", u.Path)
	assert.Empty(t, u.RawQuery)
	assert.Empty(t, u.Fragment)
}

func TestNormalize_RejectsEmptyInput(t *testing.T) {
	_, err := normalize.Normalize("   ")
	require.NotNil(t, err)
	assert.Equal(t, failure.SeverityFatal, err.Severity())
}

func TestNormalize_RejectsUnsupportedScheme(t *testing.T) {
	_, err := normalize.Normalize("ftp://example.com")
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "unsupported scheme")
}

func TestNormalize_RejectsHostless(t *testing.T) {
	_, err := normalize.Normalize("https:///path")
	require.NotNil(t, err)
}

func TestNormalize_LowercasesSchemeAndHost(t *testing.T) {
	u, err := normalize.Normalize("HTTPS://Example.com")
	require.Nil(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "example.com", u.Host)
}

func TestNormalize_StripsDefaultPort(t *testing.T) {
	u, err := normalize.Normalize("https://example.com:443")
	require.Nil(t, err)
	assert.Equal(t, "example.com", u.Host)
}
