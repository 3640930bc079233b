package labhttp

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Code is an error code that mirrors the http status codes. Handlers return it wrapped in an
// [*Error] to choose the status of the framed response.
type Code int

const (
	CodeUnknown             Code = 0
	CodeOK                  Code = http.StatusOK                  // RFC 9110, 15.3.1
	CodeBadRequest          Code = http.StatusBadRequest          // RFC 9110, 15.5.1
	CodeNotFound            Code = http.StatusNotFound            // RFC 9110, 15.5.5
	CodeMethodNotAllowed    Code = http.StatusMethodNotAllowed    // RFC 9110, 15.5.6
	CodeInternalServerError Code = http.StatusInternalServerError // RFC 9110, 15.6.1
	CodeServiceUnavailable  Code = http.StatusServiceUnavailable  // RFC 9110, 15.6.4
)

// Reason returns the reason phrase of the status line. Unknown codes get "Unknown".
func (c Code) Reason() string {
	if s := http.StatusText(int(c)); s != "" {
		return s
	}

	return "Unknown"
}

// ErrMalformedRequest is returned when the request line is missing or has fewer than two
// tokens. The connection is closed without writing a response.
var ErrMalformedRequest = errors.New("malformed request")

// Error describes a failure that should be framed with a specific status code.
type Error struct {
	code Code
	err  error
}

// NewError inits a new error given the error code.
func NewError(c Code, underlying error) *Error {
	return &Error{c, underlying}
}

func (e *Error) Code() Code    { return e.code }
func (e *Error) Unwrap() error { return e.err }
func (e *Error) Error() string {
	if e.err == nil {
		return e.code.Reason()
	}

	return e.code.Reason() + ": " + e.err.Error()
}

// CodeOf returns the error's status code if it is or wraps an [*Error] and
// [CodeUnknown] otherwise.
func CodeOf(err error) Code {
	if herr, ok := asError(err); ok {
		return herr.Code()
	}
	return CodeUnknown
}

func asError(err error) (*Error, bool) {
	var herr *Error
	ok := errors.As(err, &herr)
	return herr, ok
}
