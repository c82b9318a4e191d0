package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/config"
	"github.com/startuplens/entres/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}

	err := Init(dir, cfg)
	require.NoError(t, err)

	slog.Info("resolution started", "records", 3)
	bs, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"msg":"resolution started"`)
	assert.Contains(t, string(bs), `"records":3`)
}

func TestInitLevel(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "text", Level: "warn", Destination: "file"}

	require.NoError(t, Init(dir, cfg))
	slog.Info("hidden")
	slog.Warn("shown")

	bs, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.NotContains(t, string(bs), "hidden")
	assert.Contains(t, string(bs), "shown")
}

func TestInitBadDir(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := filepath.Join(t.TempDir(), "missing")
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}

	err := Init(dir, cfg)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.OpenLogError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "open log "+filepath.Join(dir, LogFile))
}
