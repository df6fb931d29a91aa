package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, 0, cfg.Log.Verbosity)
	assert.Equal(t, "paramspace.yaml", cfg.Definitions.Path)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  json: true
  verbosity: 2
definitions:
  path: types/family.yaml
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.Equal(t, "types/family.yaml", cfg.Definitions.Path)
	// Unset values keep their defaults.
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
}

func TestEnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("PARAMSPACE_LOG_VERBOSITY", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Log.Verbosity)
}

func TestLoadIsCached(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}
