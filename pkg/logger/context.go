package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerKey contextKey = "logger"

func ToContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the request logger, or slog.Default outside a
// request. It never returns nil.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

// With adds args to the context logger and stores the result back:
//
//	_, ctx = logger.With(ctx, "flight_id", flightID)
func With(ctx context.Context, args ...any) (*slog.Logger, context.Context) {
	log := FromContext(ctx).With(args...)
	return log, ToContext(ctx, log)
}

// IsDebugEnabled guards debug logging that is costly to prepare.
func IsDebugEnabled(ctx context.Context) bool {
	return FromContext(ctx).Enabled(ctx, slog.LevelDebug)
}
