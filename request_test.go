package labhttp_test

import (
	"strings"
	"testing"

	"github.com/advdv/labhttp"
	"github.com/stretchr/testify/require"
)

func read(t *testing.T, raw string) (*labhttp.Request, error) {
	t.Helper()
	return labhttp.ReadRequest(labhttp.NewReader(strings.NewReader(raw)))
}

func TestReadRequest(t *testing.T) {
	for _, tt := range []struct {
		name   string
		raw    string
		method string
		target string
		path   string
		proto  string
	}{
		{"crlf with headers", "GET /equipos HTTP/1.1\r\nHost: x\r\nAccept: */*\r\n\r\n", "GET", "/equipos", "/equipos", "HTTP/1.1"},
		{"bare lf", "GET /ordenar HTTP/1.0\nHost: x\n\n", "GET", "/ordenar", "/ordenar", "HTTP/1.0"},
		{"no version", "GET /\r\n\r\n", "GET", "/", "/", ""},
		{"no header terminator", "GET /styles.css HTTP/1.1\r\nHost: x\r\n", "GET", "/styles.css", "/styles.css", "HTTP/1.1"},
		{"unterminated line", "GET /x", "GET", "/x", "/x", ""},
		{"query stripped", "GET /equipos?page=2 HTTP/1.1\r\n\r\n", "GET", "/equipos?page=2", "/equipos", "HTTP/1.1"},
		{"method kept as sent", "post /equipos HTTP/1.1\r\n\r\n", "post", "/equipos", "/equipos", "HTTP/1.1"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			req, err := read(t, tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.method, req.Method)
			require.Equal(t, tt.target, req.Target)
			require.Equal(t, tt.path, req.Path)
			require.Equal(t, tt.proto, req.Proto)
		})
	}
}

func TestReadRequestMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"BOGUS\r\n",
		"BOGUS\r\n\r\n",
		"\r\n",
		"GET\r\n",
		"GET \r\n",
		"GET /" + strings.Repeat("a", labhttp.MaxLineLength) + " HTTP/1.1\r\n\r\n",
	} {
		_, err := read(t, raw)
		require.ErrorIs(t, err, labhttp.ErrMalformedRequest, "%.40q", raw)
	}
}

func TestPathValueWithoutRoute(t *testing.T) {
	req, err := read(t, "GET /detalles/X HTTP/1.1\r\n\r\n")
	require.NoError(t, err)
	require.Empty(t, req.PathValue("id"))
}
