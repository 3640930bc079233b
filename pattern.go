package labhttp

import (
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
)

// pattern is a parsed route pattern: "GET /equipos" matches exactly, "GET /detalles/{id...}"
// matches every path under "/detalles/" and binds the remainder to "id".
type pattern struct {
	str    string
	method string
	path   string
	param  string
}

func parsePattern(s string) (*pattern, error) {
	method, path, ok := strings.Cut(s, " ")
	if !ok || method == "" {
		return nil, errors.Newf("pattern %q must start with a method", s)
	}

	if !strings.HasPrefix(path, "/") {
		return nil, errors.Newf("pattern %q: path must start with a slash", s)
	}

	pat := &pattern{str: s, method: method, path: path}

	open := strings.IndexByte(path, '{')
	if open < 0 {
		return pat, nil
	}

	name, isWildcard := strings.CutSuffix(path[open+1:], "...}")
	switch {
	case !isWildcard || name == "" || strings.ContainsAny(name, "{}/"):
		return nil, errors.Newf("pattern %q: only a trailing {name...} wildcard is supported", s)
	case path[open-1] != '/':
		return nil, errors.Newf("pattern %q: wildcard must be a full segment", s)
	}

	pat.path, pat.param = path[:open], name

	return pat, nil
}

func (p *pattern) isPrefix() bool { return p.param != "" }

// build renders a concrete path, escaping the wildcard value so that it decodes back to vals[0].
func (p *pattern) build(vals ...string) (string, error) {
	if !p.isPrefix() {
		if len(vals) > 0 {
			return "", errors.Newf("pattern %q takes no values, got %d", p.str, len(vals))
		}

		return p.path, nil
	}

	if len(vals) != 1 {
		return "", errors.Newf("pattern %q takes exactly one value, got %d", p.str, len(vals))
	}

	return p.path + url.QueryEscape(vals[0]), nil
}
