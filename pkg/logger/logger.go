package logger

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/yanqian/weather-dashboard/internal/infra/config"
)

// New constructs the process logger. JSON by default, colourised text for local development.
func New(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Log.Level)
	if strings.EqualFold(cfg.Log.Format, "text") {
		handler := tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.Kitchen,
		})
		return slog.New(handler).With("service", "weather-dashboard")
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("service", "weather-dashboard")
}

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
