package labhttp

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the size of the worker pool when none is configured.
const DefaultWorkers = 10

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

var (
	// ErrNotListening is returned by Serve when Listen was not called first.
	ErrNotListening = errors.New("server is not listening")
	// ErrServerStopped is returned when the server is used after Stop.
	ErrServerStopped = errors.New("server is stopped")
)

// ServerConfig configures a [Server].
type ServerConfig struct {
	// Addr to listen on, e.g. ":8080" or "127.0.0.1:0".
	Addr string
	// Workers bounds the number of connections served concurrently. Defaults to [DefaultWorkers].
	Workers int
	// ReadTimeout bounds reading the request head, zero disables the deadline.
	ReadTimeout time.Duration
	// WriteTimeout bounds writing the response, zero disables the deadline.
	WriteTimeout time.Duration
	// Logger receives the server events. Defaults to the logger of the mux.
	Logger Logger
	// TracerProvider creates one span per request. Defaults to a noop provider.
	TracerProvider trace.TracerProvider
}

// Server accepts TCP connections and serves exactly one request per connection. Each accepted
// connection is handed to a bounded pool of workers. When every worker is busy the accept loop
// blocks until one frees up.
type Server struct {
	cfg    ServerConfig
	mux    *ServeMux
	logs   Logger
	tracer trace.Tracer

	mu       sync.Mutex
	listener net.Listener
	serving  bool
	stopped  bool
	loopDone chan struct{}

	stopping atomic.Bool
	stopOnce sync.Once
	stopErr  error
	workers  errgroup.Group
}

// NewServer inits a server that dispatches to mux.
func NewServer(mux *ServeMux, cfg ServerConfig) *Server {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	if cfg.Logger == nil {
		cfg.Logger = mux.logs
	}

	if cfg.TracerProvider == nil {
		cfg.TracerProvider = noop.NewTracerProvider()
	}

	srv := &Server{
		cfg:      cfg,
		mux:      mux,
		logs:     cfg.Logger,
		tracer:   cfg.TracerProvider.Tracer("github.com/advdv/labhttp"),
		loopDone: make(chan struct{}),
	}
	srv.workers.SetLimit(cfg.Workers)

	return srv
}

// Listen binds the listening socket and seals the route table.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.stopped:
		return ErrServerStopped
	case s.listener != nil:
		return errors.New("server is already listening")
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %q", s.cfg.Addr)
	}

	s.mux.Seal()
	s.listener = ln

	return nil
}

// Addr returns the bound address, nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// ListenAndServe binds and then runs the accept loop until Stop is called.
func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}

	return s.Serve()
}

// Serve runs the accept loop. It returns nil once the server is stopped.
func (s *Server) Serve() error {
	s.mu.Lock()
	switch {
	case s.stopped:
		s.mu.Unlock()
		return ErrServerStopped
	case s.listener == nil:
		s.mu.Unlock()
		return ErrNotListening
	case s.serving:
		s.mu.Unlock()
		return errors.New("server is already serving")
	}

	s.serving = true
	ln := s.listener
	s.mu.Unlock()

	defer close(s.loopDone)

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.stopping.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}

			s.logs.LogAcceptError(err)
			backoff = min(max(backoff*2, minAcceptBackoff), maxAcceptBackoff)
			time.Sleep(backoff)

			continue
		}

		backoff = 0
		s.workers.Go(func() error {
			s.serveConn(conn)
			return nil
		})
	}
}

// Stop closes the listener and waits for the accept loop and the in-flight connections, or
// until ctx is done. Calling it more than once is safe, later calls return the first result.
func (s *Server) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() {
		s.stopErr = s.stop(ctx)
	})

	return s.stopErr
}

func (s *Server) stop(ctx context.Context) error {
	s.stopping.Store(true)

	s.mu.Lock()
	s.stopped = true
	ln, serving := s.listener, s.serving
	s.mu.Unlock()

	if ln != nil {
		if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return errors.Wrap(err, "close listener")
		}
	}

	if serving {
		select {
		case <-s.loopDone:
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "wait for accept loop")
		}
	}

	drained := make(chan struct{})
	go func() {
		_ = s.workers.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait for in-flight connections")
	}
}

// serveConn reads one request, responds and closes the connection on every path.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	connID := uuid.NewString()

	if s.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	req, err := ReadRequest(NewReader(conn))
	if err != nil {
		s.logs.LogMalformedRequest(connID, err)
		return
	}

	req.ConnID, req.RemoteAddr = connID, conn.RemoteAddr().String()

	ctx, span := s.tracer.Start(context.Background(), req.Method+" "+req.Path,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(req.Method),
			semconv.URLPath(req.Path),
			semconv.ClientAddress(req.RemoteAddr),
			attribute.String("labhttp.connection_id", connID),
		))

	resp := s.mux.Respond(ctx, req)

	span.SetAttributes(semconv.HTTPResponseStatusCode(int(resp.Code)))
	if resp.Code >= CodeInternalServerError {
		span.SetStatus(codes.Error, resp.Code.Reason())
	}
	span.End()

	if s.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}

	if _, err := resp.WriteTo(conn); err != nil {
		s.logs.LogWriteError(connID, errors.Wrap(err, "write response"))
		return
	}

	s.logs.LogServed(req, resp.Code)
}
