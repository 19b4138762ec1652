package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-dashboard/internal/infra/config"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel(" warn "))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestNewHonoursFormat(t *testing.T) {
	jsonLogger := New(&config.Config{Log: config.LogConfig{Level: "info", Format: "json"}})
	require.NotNil(t, jsonLogger)
	_, isJSON := jsonLogger.Handler().(*slog.JSONHandler)
	require.True(t, isJSON)

	textLogger := New(&config.Config{Log: config.LogConfig{Level: "debug", Format: "text"}})
	_, isJSON = textLogger.Handler().(*slog.JSONHandler)
	require.False(t, isJSON)
}
