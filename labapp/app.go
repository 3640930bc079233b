package labapp

import (
	"context"
	"time"

	"github.com/advdv/labhttp"
	"github.com/advdv/labhttp/catalog"
	"github.com/advdv/labhttp/web"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	initTimeout      = 5 * time.Second
	awsConfigTimeout = 10 * time.Second
)

// App wraps an fx.App for lifecycle management.
type App struct {
	app *fx.App
}

// AppConfig holds configuration for the app.
type AppConfig struct {
	FxOptions []fx.Option
}

// Option configures the App.
type Option func(*AppConfig)

// WithFx adds fx options, for example fx.Decorate to swap a provided component.
func WithFx(fxOpts ...fx.Option) Option {
	return func(c *AppConfig) {
		c.FxOptions = append(c.FxOptions, fxOpts...)
	}
}

// FxOptions returns the options that make up the dependency graph of [NewApp].
func FxOptions(opts ...Option) []fx.Option {
	var cfg AppConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	baseOpts := make([]fx.Option, 0, 16+len(cfg.FxOptions))
	baseOpts = append(baseOpts, []fx.Option{
		fx.NopLogger,
		fx.Provide(ParseEnv),
		fx.Provide(NewLogger),
		fx.Provide(func(l *zap.Logger, env Env) (labhttp.Logger, error) {
			return NewServerLogger(l, env.WarnStatusCodes)
		}),
		fx.Provide(NewTracerProvider),
		fx.Provide(NewPropagator),
		fx.Provide(NewAWSConfigFunc),
		fx.Provide(catalog.NewRegistry),
		fx.Provide(NewCatalogSource),
		fx.Provide(NewMux),
		fx.Provide(web.NewHandlers),
		fx.Provide(NewServer),
		fx.Invoke(web.Routes),
		fx.Invoke(loadCatalogHook),
		fx.Invoke(startServerHook),
	}...)

	return append(baseOpts, cfg.FxOptions...)
}

// NewApp creates the catalog server: environment, logging, tracing, catalog loading, routes
// and the server lifecycle.
//
// Example:
//
//	labapp.NewApp().Run()
func NewApp(opts ...Option) *App {
	return &App{app: fx.New(FxOptions(opts...)...)}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() {
	a.app.Run()
}

// Err returns an error that occurred while building the dependency graph.
func (a *App) Err() error {
	return a.app.Err()
}

// Start starts the application and stops it once ctx is done.
func (a *App) Start(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), a.app.StopTimeout())
	defer cancel()

	return a.app.Stop(stopCtx)
}
