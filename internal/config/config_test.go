package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
search:
  provider: google
  max_results: 25
filters:
  remote_ok: false
  locations_allow: ["New York", "Boston"]
track:
  name: cyber
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "google", cfg.Search.Provider)
	assert.Equal(t, 25, cfg.Search.MaxResults)
	assert.False(t, cfg.Filters.RemoteOK)
	assert.Equal(t, []string{"New York", "Boston"}, cfg.Filters.LocationsAllow)
	assert.Equal(t, "cyber", cfg.Track.Name)

	// Untouched fields keep their defaults.
	assert.Equal(t, 3, cfg.Track.MinScore)
	assert.Equal(t, 8, cfg.Liveness.TimeoutSeconds)
}

func TestDefaultsValidate(t *testing.T) {
	cfg, res := NormalizeAndValidate(Default())
	assert.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, "brave", cfg.Search.Provider)
}

func TestValidateRejectsBadProvider(t *testing.T) {
	cfg := Default()
	cfg.Search.Provider = "bing"

	_, res := NormalizeAndValidate(cfg)
	require.False(t, res.OK())
	assert.Contains(t, res.Errors[0], "bing")
}

func TestNormalizeTrimsAndDedupesLocations(t *testing.T) {
	cfg := Default()
	cfg.Filters.LocationsAllow = []string{" New York ", "", "new york", "Boston"}

	out, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK())
	assert.Equal(t, []string{"New York", "Boston"}, out.Filters.LocationsAllow)
}

func TestWarnWhenNothingCanMatch(t *testing.T) {
	cfg := Default()
	cfg.Filters.RemoteOK = false
	cfg.Filters.LocationsAllow = nil

	_, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK())
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "remote_ok is false")
}

func TestEnsureUserConfigCopiesDefault(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "default.yml")
	require.NoError(t, os.WriteFile(def, []byte("track:\n  name: swe\n"), 0o644))

	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))

	path, err := EnsureUserConfig(dataDir, def)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "config.yml"), path)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "swe", cfg.Track.Name)

	// Second call leaves the existing file alone.
	path2, err := EnsureUserConfig(dataDir, def)
	require.NoError(t, err)
	assert.Equal(t, path, path2)
}
