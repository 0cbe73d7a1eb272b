package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// testEnv runs commands against a private config file
type testEnv struct {
	configPath string
	stdin      io.Reader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{configPath: filepath.Join(t.TempDir(), "notiz.json")}
}

// execute runs one command and returns its stdout
func (e *testEnv) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(io.Discard)
	if e.stdin != nil {
		cmd.SetIn(e.stdin)
		e.stdin = nil
	}
	cmd.SetArgs(append([]string{"--config", e.configPath, "--log-level", "disabled"}, args...))

	err := cmd.Execute()
	return output.String(), err
}

func (e *testEnv) mustExecute(t *testing.T, args ...string) string {
	t.Helper()

	out, err := e.execute(t, args...)
	require.NoError(t, err, "notiz %s", strings.Join(args, " "))
	return out
}

func TestRootCommand(t *testing.T) {
	t.Run("version flag", func(t *testing.T) {
		cmd := NewRootCmd()
		cmd.SetArgs([]string{"--version"})

		output := &bytes.Buffer{}
		cmd.SetOut(output)

		err := cmd.Execute()
		require.NoError(t, err)

		assert.Contains(t, output.String(), "notiz version")
		assert.Contains(t, output.String(), GetVersion())
	})

	t.Run("help flag", func(t *testing.T) {
		cmd := NewRootCmd()
		cmd.SetArgs([]string{"--help"})

		output := &bytes.Buffer{}
		cmd.SetOut(output)

		err := cmd.Execute()
		require.NoError(t, err)

		helpText := output.String()
		assert.Contains(t, helpText, "Notiz")
		assert.Contains(t, helpText, "markdown notes")
		for _, sub := range []string{"notes", "folders", "metadata", "watch", "configure", "version"} {
			assert.Contains(t, helpText, sub)
		}
	})

	t.Run("global flags", func(t *testing.T) {
		cmd := GetRootCmd()

		configFlag := cmd.PersistentFlags().Lookup("config")
		require.NotNil(t, configFlag)
		assert.Equal(t, "", configFlag.DefValue)

		logLevelFlag := cmd.PersistentFlags().Lookup("log-level")
		require.NotNil(t, logLevelFlag)
		assert.Equal(t, "info", logLevelFlag.DefValue)

		rootFlag := cmd.PersistentFlags().Lookup("root")
		require.NotNil(t, rootFlag)
		assert.Equal(t, "", rootFlag.DefValue)
	})
}

func TestMissingRoot(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, "notes", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--root")
}

func TestInvalidLogLevel(t *testing.T) {
	env := newTestEnv(t)

	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--config", env.configPath, "--log-level", "loud", "--root", t.TempDir(), "notes", "list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestGetVersion(t *testing.T) {
	version := GetVersion()
	assert.NotEmpty(t, version)
	assert.True(t, strings.HasPrefix(version, "0."))
}
