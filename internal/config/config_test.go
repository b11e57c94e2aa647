package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "Datasets", cfg.DataDir)
	assert.Equal(t, "preloaded_data.db", cfg.CachePath)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, 1, cfg.HeaderSkip)
	assert.Equal(t, 549, cfg.MaxRows)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Wyoming.Enabled)
	assert.Equal(t, 10*time.Second, cfg.WyomingTimeout)
	assert.Equal(t, 100, cfg.Wyoming.CacheSize)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wxplot.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir = "/srv/model-output"
workers = 4
max_rows = 100
log_level = "debug"

[wyoming]
enabled = true
timeout = "30s"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/model-output", cfg.DataDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 100, cfg.MaxRows)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Wyoming.Enabled)
	assert.Equal(t, 30*time.Second, cfg.WyomingTimeout)
	// Unset keys keep their defaults.
	assert.Equal(t, "preloaded_data.db", cfg.CachePath)
	assert.Equal(t, 1, cfg.HeaderSkip)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wxplot.toml")
	require.NoError(t, os.WriteFile(path, []byte(`data_dir = "/from/file"`), 0o644))

	t.Setenv("WXPLOT_DATA_DIR", "/from/env")
	t.Setenv("WXPLOT_WORKERS", "8")
	t.Setenv("WXPLOT_WYOMING_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.DataDir)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Wyoming.Enabled)
}

func TestLoadValidation(t *testing.T) {
	write := func(t *testing.T, body string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "wxplot.toml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	t.Run("empty data_dir", func(t *testing.T) {
		_, err := Load(write(t, `data_dir = ""`))
		assert.Error(t, err)
	})

	t.Run("negative header_skip", func(t *testing.T) {
		_, err := Load(write(t, `header_skip = -1`))
		assert.Error(t, err)
	})

	t.Run("bad wyoming timeout", func(t *testing.T) {
		_, err := Load(write(t, "[wyoming]\ntimeout = \"soon\""))
		assert.Error(t, err)
	})

	t.Run("zero wyoming cache size", func(t *testing.T) {
		_, err := Load(write(t, "[wyoming]\ncache_size = 0"))
		assert.Error(t, err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		_, err := Load(write(t, "data_dir = "))
		assert.Error(t, err)
	})
}
