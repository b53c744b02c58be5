// Package logging defines the structured-logging contract used across the
// service. The variadic args are key-value pairs, e.g.
//
//	log.Warn(ctx, "delivery failed", "purpose", purpose, "err", err)
package logging

import "context"

// Logger is a context-aware, structured logger.
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value pairs.
	With(args ...any) Logger
}
