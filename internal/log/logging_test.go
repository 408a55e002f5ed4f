package log_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esengine/eht/internal/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, log.ParseLevel(tt.in), "input %q", tt.in)
	}
}

func TestSetupLoggerWithFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "eht.log")

	logger, closers, err := log.SetupLogger("debug", file)
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info("hello", "key", "value")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello")
	assert.Contains(t, string(content), "key=value")
}

func TestSetupLoggerBadFile(t *testing.T) {
	_, _, err := log.SetupLogger("info", filepath.Join(t.TempDir(), "missing", "eht.log"))
	assert.Error(t, err)
}
