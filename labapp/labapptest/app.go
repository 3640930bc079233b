// Package labapptest provides test helpers for labapp applications.
//
// It constructs the identical DI graph as [labapp.NewApp] but uses
// [fxtest.App] which fails the test immediately on DI errors.
//
// Example:
//
//	labapptest.SetEnv(t).CatalogSource("file:///tmp/catalog.yaml")
//	app := labapptest.New(t)
//	app.RequireStart()
//	t.Cleanup(app.RequireStop)
//	resp, err := http.Get(app.URL("/equipos"))
package labapptest

import (
	"testing"

	"github.com/advdv/labhttp"
	"github.com/advdv/labhttp/catalog"
	"github.com/advdv/labhttp/labapp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// App embeds *fxtest.App and exposes the components tests usually need.
type App struct {
	*fxtest.App

	Server   *labhttp.Server
	Registry *catalog.Registry
}

// New creates a test app with the same DI graph as [labapp.NewApp].
func New(t testing.TB, opts ...labapp.Option) *App {
	a := &App{}
	opts = append(opts, labapp.WithFx(fx.Populate(&a.Server, &a.Registry)))
	a.App = fxtest.New(t, labapp.FxOptions(opts...)...)

	return a
}

// URL returns the absolute url of path on the started server.
func (a *App) URL(path string) string {
	return "http://" + a.Server.Addr().String() + path
}
