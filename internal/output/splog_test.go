package output

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimpleHandler(t *testing.T) {
	t.Run("writes bare messages", func(t *testing.T) {
		var buf bytes.Buffer
		quiet := false
		handler := &simpleHandler{writer: &buf, quiet: &quiet}
		logger := slog.New(handler)

		logger.Info("hello")
		require.Equal(t, "hello\n", buf.String())
	})

	t.Run("quiet suppresses output", func(t *testing.T) {
		var buf bytes.Buffer
		quiet := true
		handler := &simpleHandler{writer: &buf, quiet: &quiet}
		logger := slog.New(handler)

		logger.Info("hello")
		require.Empty(t, buf.String())
	})

	t.Run("debug disabled by default", func(t *testing.T) {
		quiet := false
		handler := &simpleHandler{writer: &bytes.Buffer{}, quiet: &quiet}

		require.False(t, handler.Enabled(context.Background(), slog.LevelDebug))
		require.True(t, handler.Enabled(context.Background(), slog.LevelInfo))

		handler.debugMode = true
		require.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
	})
}

func TestNewSplogWithFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "repolens.log")

	splog, err := NewSplogWithFile(logPath)
	require.NoError(t, err)
	defer splog.Close()

	splog.Info("file logging works")
	require.NoError(t, splog.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(content), "file logging works")
}

func TestLumberjackConfigFromEnv(t *testing.T) {
	t.Setenv("REPOLENS_LOG_MAX_SIZE", "5")
	t.Setenv("REPOLENS_LOG_MAX_BACKUPS", "7")
	t.Setenv("REPOLENS_LOG_MAX_AGE", "14")

	config := createLumberjackLogger("/tmp/x.log")
	require.Equal(t, 5, config.MaxSize)
	require.Equal(t, 7, config.MaxBackups)
	require.Equal(t, 14, config.MaxAge)
}

func TestLumberjackConfigDefaults(t *testing.T) {
	config := createLumberjackLogger("/tmp/x.log")
	require.Equal(t, 1, config.MaxSize)
	require.Equal(t, 2, config.MaxBackups)
	require.Equal(t, 30, config.MaxAge)
}
