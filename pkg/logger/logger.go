package logger

import (
	"log/slog"
	"strings"
)

func New(level string, handler func(level slog.Level) slog.Handler) *slog.Logger {
	h := handler(ParseLevel(level))
	return slog.New(h)
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
