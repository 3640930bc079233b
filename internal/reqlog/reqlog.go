// Package reqlog carries a request scoped zap logger through the handler context.
package reqlog

import (
	"context"

	"github.com/advdv/labhttp"
	"go.uber.org/zap"
)

// ctxKey type scopes middleware values.
type ctxKey string

// Middleware adds a logger annotated with the connection id, method and path to the context.
func Middleware(logs *zap.Logger) labhttp.Middleware {
	return func(n labhttp.Handler) labhttp.Handler {
		return labhttp.HandlerFunc(func(c context.Context, w labhttp.ResponseWriter, r *labhttp.Request) error {
			logs := logs.With(
				zap.String("conn_id", r.ConnID),
				zap.String("method", r.Method),
				zap.String("path", r.Path))

			return n.ServeLab(WithLogger(c, logs), w, r)
		})
	}
}

// WithLogger returns a context that carries logs.
func WithLogger(ctx context.Context, logs *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey("zap"), logs)
}

// Log returns the request logger, or a no-op logger outside of the middleware.
func Log(ctx context.Context) *zap.Logger {
	if v, ok := ctx.Value(ctxKey("zap")).(*zap.Logger); ok {
		return v
	}

	return zap.NewNop()
}
