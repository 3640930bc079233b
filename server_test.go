package labhttp_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/advdv/labhttp"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func startServer(t *testing.T, mux *labhttp.ServeMux, cfg labhttp.ServerConfig) *labhttp.Server {
	t.Helper()

	cfg.Addr = "127.0.0.1:0"
	srv := labhttp.NewServer(mux, cfg)
	require.NoError(t, srv.Listen())

	go func() { _ = srv.Serve() }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, srv.Stop(ctx))
	})

	return srv
}

func exchange(t *testing.T, addr net.Addr, raw string) string {
	t.Helper()

	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = io.WriteString(conn, raw)
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	out, err := io.ReadAll(conn)
	require.NoError(t, err)

	return string(out)
}

func parseResponse(t *testing.T, raw string) (status string, headers []string, body string) {
	t.Helper()

	head, body, ok := strings.Cut(raw, "\r\n\r\n")
	require.True(t, ok, "no header terminator in %q", raw)

	lines := strings.Split(head, "\r\n")
	return lines[0], lines[1:], body
}

func catalogMux(t *testing.T) (*labhttp.ServeMux, *labhttp.TestLogger) {
	logs := labhttp.NewTestLogger(t)
	mux := labhttp.NewServeMuxWith(-1, logs, labhttp.NewReverser())
	mux.HandleFunc("GET /", func(_ context.Context, w labhttp.ResponseWriter, _ *labhttp.Request) error {
		_, err := w.WriteString("<h1>Catálogo</h1>")
		return err
	})
	mux.HandleFunc("GET /detalles/{id...}", func(_ context.Context, w labhttp.ResponseWriter, r *labhttp.Request) error {
		_, err := fmt.Fprintf(w, "id=%s", r.PathValue("id"))
		return err
	})

	return mux, logs
}

func TestServerExchange(t *testing.T) {
	mux, logs := catalogMux(t)
	srv := startServer(t, mux, labhttp.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second})

	t.Run("ok with exact framing", func(t *testing.T) {
		status, headers, body := parseResponse(t, exchange(t, srv.Addr(), "GET / HTTP/1.1\r\nHost: x\r\n\r\n"))
		require.Equal(t, "HTTP/1.1 200 OK", status)
		require.Equal(t, []string{
			"Content-Type: text/html; charset=UTF-8",
			"Content-Length: " + strconv.Itoa(len("<h1>Catálogo</h1>")),
		}, headers)
		require.Equal(t, "<h1>Catálogo</h1>", body)
	})

	t.Run("prefix parameter", func(t *testing.T) {
		_, _, body := parseResponse(t, exchange(t, srv.Addr(), "GET /detalles/OSC001?x=1 HTTP/1.1\r\n\r\n"))
		require.Equal(t, "id=OSC001", body)
	})

	t.Run("non-get is 405", func(t *testing.T) {
		status, _, _ := parseResponse(t, exchange(t, srv.Addr(), "POST /equipos HTTP/1.1\r\n\r\n"))
		require.Equal(t, "HTTP/1.1 405 Method Not Allowed", status)
	})

	t.Run("unknown path is 404", func(t *testing.T) {
		status, _, _ := parseResponse(t, exchange(t, srv.Addr(), "GET /nope HTTP/1.1\r\n\r\n"))
		require.Equal(t, "HTTP/1.1 404 Not Found", status)
	})

	t.Run("malformed request gets no bytes", func(t *testing.T) {
		require.Empty(t, exchange(t, srv.Addr(), "BOGUS\r\n\r\n"))
	})

	t.Run("connect and close is harmless", func(t *testing.T) {
		conn, err := net.Dial("tcp", srv.Addr().String())
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		status, _, _ := parseResponse(t, exchange(t, srv.Addr(), "GET / HTTP/1.1\r\n\r\n"))
		require.Equal(t, "HTTP/1.1 200 OK", status)
	})

	require.Eventually(t, func() bool {
		return atomic.LoadInt64(&logs.NumLogMalformedRequest) >= 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestServerBoundedWorkers(t *testing.T) {
	const workers = 3

	var inflight, peak atomic.Int64
	release := make(chan struct{})

	mux := labhttp.NewServeMuxWith(-1, labhttp.NewTestLogger(t), labhttp.NewReverser())
	mux.HandleFunc("GET /slow", func(_ context.Context, w labhttp.ResponseWriter, _ *labhttp.Request) error {
		cur := inflight.Add(1)
		defer inflight.Add(-1)

		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}

		<-release
		_, err := w.WriteString("done")
		return err
	})

	srv := startServer(t, mux, labhttp.ServerConfig{Workers: workers})

	const clients = 12
	var wg sync.WaitGroup
	bodies := make([]string, clients)
	for i := range clients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, bodies[i] = parseResponse(t, exchange(t, srv.Addr(), "GET /slow HTTP/1.1\r\n\r\n"))
		}()
	}

	require.Eventually(t, func() bool { return inflight.Load() == workers }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.EqualValues(t, workers, inflight.Load())

	close(release)
	wg.Wait()

	require.EqualValues(t, workers, peak.Load())
	for _, b := range bodies {
		require.Equal(t, "done", b)
	}
}

func TestServerLifecycle(t *testing.T) {
	t.Run("serve before listen", func(t *testing.T) {
		srv := labhttp.NewServer(labhttp.NewServeMux(), labhttp.ServerConfig{})
		require.ErrorIs(t, srv.Serve(), labhttp.ErrNotListening)
		require.Nil(t, srv.Addr())
	})

	t.Run("stop is idempotent and ends serve", func(t *testing.T) {
		mux, _ := catalogMux(t)
		srv := labhttp.NewServer(mux, labhttp.ServerConfig{Addr: "127.0.0.1:0"})
		require.NoError(t, srv.Listen())

		served := make(chan error, 1)
		go func() { served <- srv.Serve() }()

		status, _, _ := parseResponse(t, exchange(t, srv.Addr(), "GET / HTTP/1.1\r\n\r\n"))
		require.Equal(t, "HTTP/1.1 200 OK", status)

		ctx := context.Background()
		require.NoError(t, srv.Stop(ctx))
		require.NoError(t, srv.Stop(ctx))
		require.NoError(t, <-served)

		_, err := net.DialTimeout("tcp", srv.Addr().String(), time.Second)
		require.Error(t, err)

		require.ErrorIs(t, srv.Listen(), labhttp.ErrServerStopped)
	})

	t.Run("stop without serve", func(t *testing.T) {
		srv := labhttp.NewServer(labhttp.NewServeMux(), labhttp.ServerConfig{Addr: "127.0.0.1:0"})
		require.NoError(t, srv.Listen())
		require.NoError(t, srv.Stop(context.Background()))
	})

	t.Run("handle after listen panics", func(t *testing.T) {
		mux, _ := catalogMux(t)
		srv := labhttp.NewServer(mux, labhttp.ServerConfig{Addr: "127.0.0.1:0"})
		require.NoError(t, srv.Listen())
		t.Cleanup(func() { _ = srv.Stop(context.Background()) })

		require.Panics(t, func() {
			mux.HandleFunc("GET /late", echoHandler("late"))
		})
	})

	t.Run("listen error", func(t *testing.T) {
		srv := labhttp.NewServer(labhttp.NewServeMux(), labhttp.ServerConfig{Addr: "256.0.0.1:99999"})
		require.Error(t, srv.Listen())
	})
}

func TestServerSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	mux, _ := catalogMux(t)
	mux.HandleFunc("GET /fail", func(context.Context, labhttp.ResponseWriter, *labhttp.Request) error {
		panic("broken instrument")
	})

	srv := startServer(t, mux, labhttp.ServerConfig{TracerProvider: tp})

	status, _, body := parseResponse(t, exchange(t, srv.Addr(), "GET /fail HTTP/1.1\r\n\r\n"))
	require.Equal(t, "HTTP/1.1 500 Internal Server Error", status)
	require.Contains(t, body, "broken instrument")

	require.Eventually(t, func() bool { return len(rec.Ended()) == 1 }, 5*time.Second, 10*time.Millisecond)

	span := rec.Ended()[0]
	require.Equal(t, "GET /fail", span.Name())
	require.Equal(t, "Error", span.Status().Code.String())

	attrs := map[string]string{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}

	require.Equal(t, "GET", attrs["http.request.method"])
	require.Equal(t, "/fail", attrs["url.path"])
	require.Equal(t, "500", attrs["http.response.status_code"])
	require.NotEmpty(t, attrs["labhttp.connection_id"])
}
