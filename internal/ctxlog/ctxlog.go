// Package ctxlog carries a *slog.Logger through context.Context.
package ctxlog

import (
	"context"
	"log/slog"
)

type key struct{}

var loggerKey = key{}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the embedded logger, or slog.Default when there is none.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
