package labhttp

import (
	"log"
	"sync/atomic"
	"testing"
)

// Logger can be implemented to get informed about important states of the server.
type Logger interface {
	LogAcceptError(err error)
	LogMalformedRequest(connID string, err error)
	LogHandlerFailure(r *Request, err error)
	LogWriteError(connID string, err error)
	LogServed(r *Request, code Code)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogAcceptError(err error) {
	l.Logger.Printf("labhttp: accept error: %s", err)
}

func (l stdLogger) LogMalformedRequest(connID string, err error) {
	l.Logger.Printf("labhttp: [%s] malformed request: %s", connID, err)
}

func (l stdLogger) LogHandlerFailure(r *Request, err error) {
	l.Logger.Printf("labhttp: [%s] %s %s failed: %s", r.ConnID, r.Method, r.Target, err)
}

func (l stdLogger) LogWriteError(connID string, err error) {
	l.Logger.Printf("labhttp: [%s] error while writing response: %s", connID, err)
}

func (l stdLogger) LogServed(r *Request, code Code) {
	l.Logger.Printf("labhttp: [%s] %s %s -> %d", r.ConnID, r.Method, r.Target, code)
}

func NewStdLogger(l *log.Logger) Logger {
	return stdLogger{l}
}

// TestLogger counts every log call and forwards them to the test output.
type TestLogger struct {
	tb testing.TB

	NumLogAcceptError      int64
	NumLogMalformedRequest int64
	NumLogHandlerFailure   int64
	NumLogWriteError       int64
	NumLogServed           int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogAcceptError(err error) {
	atomic.AddInt64(&l.NumLogAcceptError, 1)
	l.tb.Logf("labhttp: accept error: %s", err)
}

func (l *TestLogger) LogMalformedRequest(connID string, err error) {
	atomic.AddInt64(&l.NumLogMalformedRequest, 1)
	l.tb.Logf("labhttp: [%s] malformed request: %s", connID, err)
}

func (l *TestLogger) LogHandlerFailure(r *Request, err error) {
	atomic.AddInt64(&l.NumLogHandlerFailure, 1)
	l.tb.Logf("labhttp: [%s] %s %s failed: %s", r.ConnID, r.Method, r.Target, err)
}

func (l *TestLogger) LogWriteError(connID string, err error) {
	atomic.AddInt64(&l.NumLogWriteError, 1)
	l.tb.Logf("labhttp: [%s] error while writing response: %s", connID, err)
}

func (l *TestLogger) LogServed(r *Request, code Code) {
	atomic.AddInt64(&l.NumLogServed, 1)
	l.tb.Logf("labhttp: [%s] %s %s -> %d", r.ConnID, r.Method, r.Target, code)
}

var _ Logger = &TestLogger{}
