package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("console output goes to the console writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := newWithConsole(Config{Level: "info", Console: true}, &buf)
		require.NoError(t, err)
		defer logger.Close()

		zl := logger.GetZerolog()
		zl.Info().Str("path", "a.md").Msg("Note saved")

		assert.Contains(t, buf.String(), `"message":"Note saved"`)
		assert.Contains(t, buf.String(), `"path":"a.md"`)
	})

	t.Run("file output", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "logs", "test.log")

		logger, err := New(Config{Level: "debug", File: logFile})
		require.NoError(t, err)

		zl := logger.GetZerolog()
		zl.Debug().Msg("test message")
		require.NoError(t, logger.Close())

		data, err := os.ReadFile(logFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "test message")
	})

	t.Run("level filters messages", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := newWithConsole(Config{Level: "warn", Console: true}, &buf)
		require.NoError(t, err)
		defer logger.Close()

		zl := logger.GetZerolog()
		zl.Info().Msg("hidden")
		zl.Warn().Msg("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		logger, err := New(Config{Level: "loud"})
		require.NoError(t, err)
		defer logger.Close()

		assert.Equal(t, zerolog.InfoLevel, logger.GetZerolog().GetLevel())
	})

	t.Run("unwritable log file", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))

		_, err := New(Config{File: filepath.Join(blocker, "test.log")})
		assert.Error(t, err)
	})
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newWithConsole(Config{Level: "info", Console: true}, &buf)
	require.NoError(t, err)
	defer logger.Close()

	child := logger.Component("notes")
	child.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"notes"`)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.True(t, cfg.Console)
	assert.True(t, cfg.Pretty)
	assert.Empty(t, cfg.File)
}
