// Package logx contains slog handler middleware to enrich diagnostics.
package logx

import (
	"context"

	"golang.org/x/exp/slog"
)

// HandleFunc is a function that handles a record.
type HandleFunc func(context.Context, slog.Record) error

// Middleware wraps a HandleFunc with additional behavior.
type Middleware func(HandleFunc) HandleFunc

// Chain wraps the handler with the given middlewares, the first listed
// sees the record first.
func Chain(h slog.Handler, mws ...Middleware) slog.Handler {
	return chained{Handler: h, mws: mws}
}

type chained struct {
	slog.Handler
	mws []Middleware
}

// Handle runs the chain of middleware and the handler.
func (c chained) Handle(ctx context.Context, rec slog.Record) error {
	h := c.Handler.Handle
	for i := len(c.mws) - 1; i >= 0; i-- {
		h = c.mws[i](h)
	}
	return h(ctx, rec)
}

// WithGroup returns a new chained handler with the given group.
func (c chained) WithGroup(group string) slog.Handler {
	return chained{Handler: c.Handler.WithGroup(group), mws: c.mws}
}

// WithAttrs returns a new chained handler with the given attributes.
func (c chained) WithAttrs(attrs []slog.Attr) slog.Handler {
	return chained{Handler: c.Handler.WithAttrs(attrs), mws: c.mws}
}
