package labapptest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for setting [labapp.Env] env vars via t.Setenv. Create one
// with [SetEnv].
type Env struct {
	t testing.TB
}

// SetEnv sets the LABHTTP_* env vars to test defaults.
//
// Defaults:
//   - LABHTTP_ADDR: "127.0.0.1:0" (an ephemeral port)
//   - LABHTTP_WORKERS: "4"
//   - LABHTTP_READ_TIMEOUT: "5s"
//   - LABHTTP_WRITE_TIMEOUT: "5s"
//   - LABHTTP_SERVICE_NAME: "test"
//   - LABHTTP_LOG_LEVEL: "debug"
//   - LABHTTP_OTEL_EXPORTER: "none"
//   - LABHTTP_CATALOG_SOURCE: "builtin:"
//   - LABHTTP_WARN_STATUS_CODES: "500-599"
//   - AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY: "test"
//   - AWS_REGION: "us-east-1"
//
// Use the returned [Env] to override individual values:
//
//	labapptest.SetEnv(t).Workers(1).CatalogSource("sqlite:///tmp/lab.db")
func SetEnv(t testing.TB) *Env {
	t.Helper()
	t.Setenv("LABHTTP_ADDR", "127.0.0.1:0")
	t.Setenv("LABHTTP_WORKERS", "4")
	t.Setenv("LABHTTP_READ_TIMEOUT", "5s")
	t.Setenv("LABHTTP_WRITE_TIMEOUT", "5s")
	t.Setenv("LABHTTP_SERVICE_NAME", "test")
	t.Setenv("LABHTTP_LOG_LEVEL", "debug")
	t.Setenv("LABHTTP_OTEL_EXPORTER", "none")
	t.Setenv("LABHTTP_CATALOG_SOURCE", "builtin:")
	t.Setenv("LABHTTP_CATALOG_JSON_PATH", "equipment")
	t.Setenv("LABHTTP_WARN_STATUS_CODES", "500-599")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_REGION", "us-east-1")
	return &Env{t: t}
}

// Addr overrides LABHTTP_ADDR.
func (e *Env) Addr(addr string) *Env {
	e.t.Helper()
	e.t.Setenv("LABHTTP_ADDR", addr)
	return e
}

// Workers overrides LABHTTP_WORKERS.
func (e *Env) Workers(n int) *Env {
	e.t.Helper()
	e.t.Setenv("LABHTTP_WORKERS", strconv.Itoa(n))
	return e
}

// LogLevel overrides LABHTTP_LOG_LEVEL.
func (e *Env) LogLevel(level string) *Env {
	e.t.Helper()
	e.t.Setenv("LABHTTP_LOG_LEVEL", level)
	return e
}

// OtelExporter overrides LABHTTP_OTEL_EXPORTER.
func (e *Env) OtelExporter(exp string) *Env {
	e.t.Helper()
	e.t.Setenv("LABHTTP_OTEL_EXPORTER", exp)
	return e
}

// CatalogSource overrides LABHTTP_CATALOG_SOURCE.
func (e *Env) CatalogSource(uri string) *Env {
	e.t.Helper()
	e.t.Setenv("LABHTTP_CATALOG_SOURCE", uri)
	return e
}

// CatalogJSONPath overrides LABHTTP_CATALOG_JSON_PATH.
func (e *Env) CatalogJSONPath(path string) *Env {
	e.t.Helper()
	e.t.Setenv("LABHTTP_CATALOG_JSON_PATH", path)
	return e
}

// WarnStatusCodes overrides LABHTTP_WARN_STATUS_CODES.
func (e *Env) WarnStatusCodes(expr string) *Env {
	e.t.Helper()
	e.t.Setenv("LABHTTP_WARN_STATUS_CODES", expr)
	return e
}
