package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader("/path/to/config.json")
	assert.NotNil(t, loader)
	assert.Equal(t, "/path/to/config.json", loader.configPath)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("load default config when file doesn't exist", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nonexistent.json")

		cfg, err := NewLoader(configPath).Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("load config from file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")

		testConfig := `{
			"root_path": "/srv/notes",
			"logging": {
				"level": "debug",
				"pretty": false
			},
			"watch": {
				"ignore_hidden": true
			}
		}`
		require.NoError(t, os.WriteFile(configPath, []byte(testConfig), 0644))

		cfg, err := NewLoader(configPath).Load()

		require.NoError(t, err)
		assert.Equal(t, "/srv/notes", cfg.RootPath)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.False(t, cfg.Logging.Pretty)
		assert.True(t, cfg.Logging.Console)
		assert.True(t, cfg.Watch.IgnoreHidden)
		assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
	})

	t.Run("environment overrides", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{"root_path": "/from/file"}`), 0644))

		t.Setenv("NOTIZ_ROOT_PATH", "/from/env")
		t.Setenv("NOTIZ_LOGGING_LEVEL", "warn")
		t.Setenv("NOTIZ_WATCH_IGNORE_HIDDEN", "true")

		cfg, err := NewLoader(configPath).Load()

		require.NoError(t, err)
		assert.Equal(t, "/from/env", cfg.RootPath)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.True(t, cfg.Watch.IgnoreHidden)
	})

	t.Run("environment applies without a file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "missing.json")
		t.Setenv("NOTIZ_METRICS_ENABLED", "true")

		cfg, err := NewLoader(configPath).Load()

		require.NoError(t, err)
		assert.True(t, cfg.Metrics.Enabled)
	})

	t.Run("expands home in paths", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		configPath := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{"root_path": "~/notes"}`), 0644))

		cfg, err := NewLoader(configPath).Load()

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "notes"), cfg.RootPath)
	})

	t.Run("invalid json", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(configPath, []byte(`{invalid`), 0644))

		_, err := NewLoader(configPath).Load()
		assert.Error(t, err)
	})
}

func TestLoaderSave(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.json")
	loader := NewLoader(configPath)

	cfg := DefaultConfig()
	cfg.RootPath = "/srv/notes"
	cfg.Watch.IgnoreHidden = true
	cfg.Metrics.Enabled = true
	cfg.Metrics.Addr = ":9000"

	require.NoError(t, loader.Save(cfg))

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetConfigPath(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		assert.Equal(t, "/tmp/notiz.json", NewLoader("/tmp/notiz.json").GetConfigPath())
	})

	t.Run("default path", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		assert.Equal(t, filepath.Join(home, ".notiz", "notiz.json"), NewLoader("").GetConfigPath())
	})
}
