package labapp

import (
	intervals "github.com/MawKKe/integer-interval-expressions-go"
	"github.com/advdv/labhttp"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a zap logger configured from the environment.
// Uses JSON encoding with ISO8601 timestamps.
func NewLogger(env Env) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.LogLevel)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

type zapLogger struct {
	*zap.Logger
	warn intervals.Expression
}

func requestFields(r *labhttp.Request) []zap.Field {
	return []zap.Field{
		zap.String("conn_id", r.ConnID),
		zap.String("method", r.Method),
		zap.String("path", r.Path),
		zap.String("remote_addr", r.RemoteAddr),
	}
}

func (l zapLogger) LogAcceptError(err error) {
	l.Logger.Error("accept failed", zap.Error(err))
}

func (l zapLogger) LogMalformedRequest(connID string, err error) {
	l.Logger.Debug("malformed request", zap.String("conn_id", connID), zap.Error(err))
}

func (l zapLogger) LogHandlerFailure(r *labhttp.Request, err error) {
	l.Logger.Error("handler failed", append(requestFields(r), zap.Error(err))...)
}

func (l zapLogger) LogWriteError(connID string, err error) {
	l.Logger.Warn("failed to write response", zap.String("conn_id", connID), zap.Error(err))
}

func (l zapLogger) LogServed(r *labhttp.Request, code labhttp.Code) {
	fields := append(requestFields(r), zap.Int("status", int(code)))
	if l.warn.Matches(int(code)) {
		l.Logger.Warn("served request", fields...)
		return
	}

	l.Logger.Debug("served request", fields...)
}

// NewServerLogger adapts l to the [labhttp.Logger] interface. Served requests are logged at
// debug level unless their status matches warnCodes.
func NewServerLogger(l *zap.Logger, warnCodes string) (labhttp.Logger, error) {
	expr, err := intervals.ParseExpression(warnCodes)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse warn status codes %q", warnCodes)
	}

	return zapLogger{Logger: l.Named("labhttp"), warn: expr}, nil
}
