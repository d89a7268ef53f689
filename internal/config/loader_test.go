package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes content to a config.yaml in a temporary directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func memConfig(t *testing.T, content string) (afero.Fs, string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	path := "/etc/capri/config.yaml"
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	return fs, path
}

func TestLoaderLoad(t *testing.T) {
	t.Run("all keys", func(t *testing.T) {
		fs, path := memConfig(t, `
root: /srv/modules
extension: .mjs
async: true
maxFetches: 8
log:
  timestamps: false
`)
		cfg, err := NewLoader(WithFs(fs)).Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/modules", cfg.Root)
		assert.Equal(t, ".mjs", cfg.Extension)
		assert.True(t, cfg.Async)
		assert.Equal(t, 8, cfg.MaxFetches)
		require.NotNil(t, cfg.Log.Timestamps)
		assert.False(t, *cfg.Log.Timestamps)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg, err := NewLoader(WithFs(afero.NewMemMapFs())).Load("/nowhere/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, &Config{}, cfg)
	})

	t.Run("environment is not read", func(t *testing.T) {
		t.Setenv(EnvExtension, ".cjs")
		cfg, err := NewLoader().Load(writeConfig(t, "extension: .mjs\n"))
		require.NoError(t, err)
		assert.Equal(t, ".mjs", cfg.Extension)
	})

	t.Run("malformed file", func(t *testing.T) {
		fs, path := memConfig(t, "root: [unterminated\n")
		_, err := NewLoader(WithFs(fs)).Load(path)
		assert.Error(t, err)
	})

	t.Run("empty path follows CAPRI_CONFIG", func(t *testing.T) {
		fs, path := memConfig(t, "root: lib\n")
		t.Setenv(EnvConfig, path)
		cfg, err := NewLoader(WithFs(fs)).Load("")
		require.NoError(t, err)
		assert.Equal(t, "lib", cfg.Root)
	})
}

func TestLoadWithDefaults(t *testing.T) {
	fs, path := memConfig(t, "root: lib\n")
	cfg, err := NewLoader(WithFs(fs)).LoadWithDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, "lib", cfg.Root)
	assert.Equal(t, DefaultExtension, cfg.Extension)
	assert.Equal(t, DefaultMaxFetches, cfg.MaxFetches)
}

func TestConfigFileExists(t *testing.T) {
	exists, err := ConfigFileExists(writeConfig(t, ""))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = ConfigFileExists(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.False(t, exists)

	fs, path := memConfig(t, "")
	exists, err = NewLoader(WithFs(fs)).Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}
