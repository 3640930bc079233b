package labhttp

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Handler serves one request into a buffered writer and may return an error instead of
// writing an error response itself.
type Handler interface {
	ServeLab(ctx context.Context, w ResponseWriter, r *Request) error
}

// HandlerFunc allow casting a function to imple [Handler].
type HandlerFunc func(context.Context, ResponseWriter, *Request) error

// ServeLab implements the [Handler] interface.
func (f HandlerFunc) ServeLab(ctx context.Context, w ResponseWriter, r *Request) error {
	return f(ctx, w, r)
}

// Respond runs h with a fresh buffer and returns the framed result. When h fails or panics
// the buffer is discarded and the error is turned into a response with [ErrorResponse].
func Respond(ctx context.Context, h Handler, r *Request, bufLimit int, logs Logger) Response {
	buf := NewResponseBuffer(bufLimit)
	defer buf.Free()

	if err := invoke(ctx, h, buf, r); err != nil {
		buf.Reset()

		if code := CodeOf(err); code == CodeUnknown || code >= CodeInternalServerError {
			logs.LogHandlerFailure(r, err)
		}

		return ErrorResponse(err)
	}

	return buf.Response()
}

func invoke(ctx context.Context, h Handler, w ResponseWriter, r *Request) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.Newf("panic: %v", rec)
		}
	}()

	return h.ServeLab(ctx, w, r)
}
