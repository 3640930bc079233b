// Package labapp assembles the catalog server with go.uber.org/fx.
//
// Configuration is read from LABHTTP_* environment variables (see [Env]). The graph provides
// the zap logger and its [labhttp.Logger] adapter, the OpenTelemetry tracer provider and
// propagator, a lazily loaded AWS configuration, the catalog registry and source, the web
// handlers, the route table and the server. On start the catalog is populated first and the
// server binds its port second, so a broken source or a taken port fails the start.
package labapp
