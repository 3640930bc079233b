package labapp

import (
	"context"

	"github.com/advdv/labhttp"
	"github.com/advdv/labhttp/internal/reqlog"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewMux creates the route table with the request logger installed as middleware.
func NewMux(logs labhttp.Logger, logger *zap.Logger) *labhttp.ServeMux {
	mux := labhttp.NewServeMuxWith(-1, logs, labhttp.NewReverser())
	mux.Use(reqlog.Middleware(logger.Named("web")))

	return mux
}

// ServerParams holds the dependencies for creating the server.
type ServerParams struct {
	fx.In

	Env        Env
	Mux        *labhttp.ServeMux
	Logs       labhttp.Logger
	TracerProv trace.TracerProvider
}

// NewServer creates the labhttp server configured from the environment.
func NewServer(params ServerParams) *labhttp.Server {
	return labhttp.NewServer(params.Mux, labhttp.ServerConfig{
		Addr:           params.Env.Addr,
		Workers:        params.Env.Workers,
		ReadTimeout:    params.Env.ReadTimeout,
		WriteTimeout:   params.Env.WriteTimeout,
		Logger:         params.Logs,
		TracerProvider: params.TracerProv,
	})
}

// startServerHook binds the listener on start, so a taken port fails the start, and serves
// in the background until stopped.
func startServerHook(lc fx.Lifecycle, server *labhttp.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := server.Listen(); err != nil {
				return err
			}

			logger.Info("starting server", zap.Stringer("addr", server.Addr()))
			go func() {
				if err := server.Serve(); err != nil {
					logger.Error("server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")
			return server.Stop(ctx)
		},
	})
}
