package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/aretw0/cmdloop/pkg/domain"
)

// Middleware wraps a handler, e.g. to add logging or fault isolation.
type Middleware func(next domain.HandlerFunc) domain.HandlerFunc

// Chain composes middlewares; the first one is the outermost.
func Chain(mws ...Middleware) Middleware {
	return func(next domain.HandlerFunc) domain.HandlerFunc {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

// RecoverMiddleware turns a handler panic into an ordinary error so a
// misbehaving command cannot take the loop down.
func RecoverMiddleware(logger *slog.Logger) Middleware {
	return func(next domain.HandlerFunc) domain.HandlerFunc {
		return func(ctx context.Context, out io.Writer, args []string) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Debug("handler panicked", "panic", r, "stack", string(debug.Stack()))
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return next(ctx, out, args)
		}
	}
}

// LoggingMiddleware logs every invocation at debug level.
func LoggingMiddleware(logger *slog.Logger, name string) Middleware {
	return func(next domain.HandlerFunc) domain.HandlerFunc {
		return func(ctx context.Context, out io.Writer, args []string) error {
			start := time.Now()
			err := next(ctx, out, args)
			logger.Debug("handler returned",
				"command", name,
				"args", args,
				"duration", time.Since(start),
				"error", err,
			)
			return err
		}
	}
}
