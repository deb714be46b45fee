package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coldharbor-labs/suppression-screen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefault_BuildsCleanly(t *testing.T) {
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)
	assert.Equal(t, 12*time.Second, cfg.FetchTimeout())
	assert.Equal(t, 30*time.Second, cfg.OverallDeadline())
	assert.Equal(t, 5, cfg.RedirectCap())
	assert.Equal(t, 120_000, cfg.BodyCapBytes())
	assert.NotEmpty(t, cfg.UserAgent())
}

func TestBuild_RejectsOverallDeadlineBelowFetchTimeout(t *testing.T) {
	_, err := config.WithDefault().
		WithFetchTimeout(20 * time.Second).
		WithOverallDeadline(5 * time.Second).
		Build()
	require.Error(t, err)
}

func TestBuild_RejectsEmptyUserAgent(t *testing.T) {
	_, err := config.WithDefault().WithUserAgent("").Build()
	require.Error(t, err)
}

func TestWithConfigFile_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"redirectCap":2,"userAgent":"custom-agent/2.0"}`), 0o600))

	cfg, err := config.WithConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.RedirectCap())
	assert.Equal(t, "custom-agent/2.0", cfg.UserAgent())
	// Unspecified fields keep defaults.
	assert.Equal(t, 12*time.Second, cfg.FetchTimeout())
}

func TestWithConfigFile_MissingFile(t *testing.T) {
	_, err := config.WithConfigFile(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, config.ErrFileDoesNotExist)
}
