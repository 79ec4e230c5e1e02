package common

import (
	"context"

	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

// Context keys for passing request-scoped values
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger logging.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) logging.Logger {
	if logger, ok := ctx.Value(loggerKey).(logging.Logger); ok {
		return logger
	}
	return nopLogger
}

var nopLogger = logging.NewNop()
