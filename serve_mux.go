package labhttp

import (
	"context"
	"log"
	"net/url"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

type route struct {
	pat     *pattern
	handler Handler
}

// ServeMux routes parsed requests to handlers. Exact paths win over prefix routes, the longest
// matching prefix wins among prefix routes. A method that no route accepts for the path yields
// a 405, a path no route covers yields a 404.
type ServeMux struct {
	logs     Logger
	bufLimit int
	reverser *Reverser

	exact    map[string][]route
	prefixes []route
	methods  map[string]struct{}
	sealed   atomic.Bool

	middlewares struct {
		captured bool
		buffered []Middleware
	}
}

// NewServeMux creates a new ServeMux with default settings.
func NewServeMux() *ServeMux {
	return NewServeMuxWith(-1, NewStdLogger(log.Default()), NewReverser())
}

// NewServeMuxWith creates a ServeMux with custom settings.
func NewServeMuxWith(bufLimit int, logger Logger, reverser *Reverser) *ServeMux {
	return &ServeMux{
		bufLimit: bufLimit,
		logs:     logger,
		reverser: reverser,
		exact:    make(map[string][]route),
		methods:  make(map[string]struct{}),
	}
}

// Reverse returns the url based on the name and parameter values.
func (m *ServeMux) Reverse(name string, vals ...string) (string, error) {
	return m.reverser.Reverse(name, vals...)
}

// Use allows providing of middleware.
func (m *ServeMux) Use(mw ...Middleware) {
	m.ensureNoUseAfterHandle()
	m.middlewares.buffered = append(m.middlewares.buffered, mw...)
}

// HandleFunc handles the request given the pattern using a function.
func (m *ServeMux) HandleFunc(pattern string, handler HandlerFunc, name ...string) {
	m.Handle(pattern, handler, name...)
}

// Handle registers handler for pattern, optionally under a name for [ServeMux.Reverse]. It
// panics on an invalid or duplicate pattern and once the mux is sealed.
func (m *ServeMux) Handle(pattern string, handler Handler, name ...string) {
	if m.sealed.Load() {
		panic("labhttp: cannot call Handle() after the server started listening")
	}

	m.middlewares.captured = true

	pat, err := parsePattern(pattern)
	if err != nil {
		panic("labhttp: " + err.Error())
	}

	if m.conflicts(pat) {
		panic("labhttp: pattern " + pattern + " is already registered")
	}

	if len(name) > 0 {
		m.reverser.Named(name[0], pattern)
	}

	rt := route{pat: pat, handler: Wrap(handler, m.middlewares.buffered...)}
	m.methods[pat.method] = struct{}{}

	if !pat.isPrefix() {
		m.exact[pat.path] = append(m.exact[pat.path], rt)
		return
	}

	m.prefixes = append(m.prefixes, rt)
	slices.SortStableFunc(m.prefixes, func(a, b route) int {
		return len(b.pat.path) - len(a.pat.path)
	})
}

// Seal freezes the route table. The server calls it when it starts listening.
func (m *ServeMux) Seal() { m.sealed.Store(true) }

// Respond resolves the request and runs the matched handler.
func (m *ServeMux) Respond(ctx context.Context, r *Request) Response {
	rt, rest, code := m.match(r.Method, r.Path)
	switch code {
	case CodeMethodNotAllowed:
		return MethodNotAllowedResponse()
	case CodeNotFound:
		return NotFoundResponse()
	}

	if rt.pat.isPrefix() {
		val, err := url.QueryUnescape(rest)
		if err != nil {
			err = errors.Wrapf(err, "decode path parameter %q", rt.pat.param)
			m.logs.LogHandlerFailure(r, err)

			return InternalErrorResponse(err.Error())
		}

		r.params = map[string]string{rt.pat.param: val}
	}

	return Respond(ctx, rt.handler, r, m.bufLimit, m.logs)
}

// match returns the route for the request together with the undecoded wildcard remainder. The
// code is CodeOK on a match, or the status to respond with otherwise.
func (m *ServeMux) match(method, path string) (route, string, Code) {
	if _, ok := m.methods[method]; !ok {
		return route{}, "", CodeMethodNotAllowed
	}

	var covered bool
	for _, rt := range m.exact[path] {
		covered = true
		if rt.pat.method == method {
			return rt, "", CodeOK
		}
	}

	var (
		best route
		rest string
	)

	for _, rt := range m.prefixes {
		if !strings.HasPrefix(path, rt.pat.path) {
			continue
		}

		covered = true
		if rt.pat.method == method && best.pat == nil {
			best, rest = rt, path[len(rt.pat.path):]
		}
	}

	switch {
	case best.pat != nil:
		return best, rest, CodeOK
	case covered:
		return route{}, "", CodeMethodNotAllowed
	default:
		return route{}, "", CodeNotFound
	}
}

func (m *ServeMux) conflicts(pat *pattern) bool {
	routes := m.exact[pat.path]
	if pat.isPrefix() {
		routes = m.prefixes
	}

	return slices.ContainsFunc(routes, func(rt route) bool {
		return rt.pat.method == pat.method && rt.pat.path == pat.path
	})
}

func (m *ServeMux) ensureNoUseAfterHandle() {
	if m.middlewares.captured {
		panic("labhttp: cannot call Use() after calling Handle")
	}
}
