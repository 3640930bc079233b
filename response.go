package labhttp

import (
	"bytes"
	"io"
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"
)

// Content types the server frames. The charset parameter is appended when writing.
const (
	ContentTypeHTML = "text/html"
	ContentTypeCSS  = "text/css"
	ContentTypeJSON = "application/json"
)

// ErrBufferFull is returned by the response writer when a handler writes past the limit.
var ErrBufferFull = errors.New("response buffer is full")

// Response is a fully buffered response. It is framed with exactly two headers.
type Response struct {
	Code        Code
	ContentType string
	Body        []byte
}

// Bytes frames the response: status line, Content-Type, Content-Length, blank line, body.
func (r Response) Bytes() []byte {
	ct := r.ContentType
	if ct == "" {
		ct = ContentTypeHTML
	}

	var b bytes.Buffer
	b.Grow(len(r.Body) + 128)
	b.WriteString("HTTP/1.1 ")
	b.WriteString(strconv.Itoa(int(r.Code)))
	b.WriteByte(' ')
	b.WriteString(r.Code.Reason())
	b.WriteString("\r\nContent-Type: ")
	b.WriteString(ct)
	b.WriteString("; charset=UTF-8\r\nContent-Length: ")
	b.WriteString(strconv.Itoa(len(r.Body)))
	b.WriteString("\r\n\r\n")
	b.Write(r.Body)

	return b.Bytes()
}

// WriteTo writes the framed response to w.
func (r Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Bytes())
	return int64(n), err
}

// NotFoundResponse is the generic 404 page.
func NotFoundResponse() Response {
	return Response{
		Code: CodeNotFound,
		Body: []byte(`<html><body><h1>404 - Página no encontrada</h1><a href="/">Volver al inicio</a></body></html>`),
	}
}

// MethodNotAllowedResponse is the generic 405 page.
func MethodNotAllowedResponse() Response {
	return Response{
		Code: CodeMethodNotAllowed,
		Body: []byte(`<html><body><h1>405 - Método no permitido</h1><a href="/">Volver al inicio</a></body></html>`),
	}
}

// InternalErrorResponse is the 500 page carrying the escaped failure message.
func InternalErrorResponse(msg string) Response {
	return errorPage(CodeInternalServerError, "Error del servidor", msg)
}

func errorPage(code Code, heading, msg string) Response {
	return Response{
		Code: code,
		Body: []byte(`<html><body><h1>` + strconv.Itoa(int(code)) + ` - ` + html.EscapeString(heading) +
			`</h1><p>` + html.EscapeString(msg) + `</p><a href="/">Volver al inicio</a></body></html>`),
	}
}

// ErrorResponse frames err: a 404 or 405 [*Error] gets its generic page, another [*Error] a
// page headed by its own status, anything else is a 500 with the error message.
func ErrorResponse(err error) Response {
	switch CodeOf(err) {
	case CodeNotFound:
		return NotFoundResponse()
	case CodeMethodNotAllowed:
		return MethodNotAllowedResponse()
	case CodeUnknown, CodeInternalServerError:
		return InternalErrorResponse(err.Error())
	default:
		herr, _ := asError(err)
		return errorPage(herr.Code(), herr.Code().Reason(), err.Error())
	}
}

// ResponseWriter buffers what a handler writes. Nothing reaches the connection until the
// handler returned, so middleware can reset the writer and formulate a new response.
type ResponseWriter interface {
	io.Writer
	io.StringWriter

	// SetStatus sets the status code, 200 by default.
	SetStatus(c Code)
	// SetContentType sets the media type without charset, text/html by default.
	SetContentType(ct string)
	// Reset discards the body and restores the defaults.
	Reset()
}

var bufPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// ResponseBuffer is the pooled [ResponseWriter] the server hands to handlers.
type ResponseBuffer struct {
	code  Code
	ctype string
	limit int
	buf   *bytes.Buffer
}

// NewResponseBuffer inits a buffer that accepts at most limit bytes, a negative limit means
// no limit.
func NewResponseBuffer(limit int) *ResponseBuffer {
	buf, _ := bufPool.Get().(*bytes.Buffer)
	buf.Reset()

	return &ResponseBuffer{code: CodeOK, ctype: ContentTypeHTML, limit: limit, buf: buf}
}

func (b *ResponseBuffer) Write(p []byte) (int, error) {
	if b.limit >= 0 && b.buf.Len()+len(p) > b.limit {
		return 0, errors.Wrapf(ErrBufferFull, "limit of %d bytes", b.limit)
	}

	return b.buf.Write(p)
}

func (b *ResponseBuffer) WriteString(s string) (int, error) {
	if b.limit >= 0 && b.buf.Len()+len(s) > b.limit {
		return 0, errors.Wrapf(ErrBufferFull, "limit of %d bytes", b.limit)
	}

	return b.buf.WriteString(s)
}

func (b *ResponseBuffer) SetStatus(c Code)         { b.code = c }
func (b *ResponseBuffer) SetContentType(ct string) { b.ctype = ct }

func (b *ResponseBuffer) Reset() {
	b.code, b.ctype = CodeOK, ContentTypeHTML
	b.buf.Reset()
}

// Response copies the buffered state into a [Response].
func (b *ResponseBuffer) Response() Response {
	return Response{Code: b.code, ContentType: b.ctype, Body: bytes.Clone(b.buf.Bytes())}
}

// Free returns the underlying buffer to the pool. The ResponseBuffer must not be used after.
func (b *ResponseBuffer) Free() {
	bufPool.Put(b.buf)
	b.buf = nil
}

var _ ResponseWriter = &ResponseBuffer{}
