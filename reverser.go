package labhttp

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Reverser maps route names to their patterns so pages can link to a route without
// repeating its path.
type Reverser struct {
	pats map[string]*pattern
}

// NewReverser inits the reverser.
func NewReverser() *Reverser {
	return &Reverser{pats: make(map[string]*pattern)}
}

// Reverse builds the path of the named route. A wildcard route takes exactly one value which
// is escaped so that the router decodes it back unchanged.
func (r *Reverser) Reverse(name string, vals ...string) (string, error) {
	pat, ok := r.pats[name]
	if !ok {
		return "", errors.Newf("no route named %q, known: %v", name, r.Names())
	}

	res, err := pat.build(vals...)
	if err != nil {
		return "", errors.Wrapf(err, "reverse %q", name)
	}

	return res, nil
}

// Names returns the registered route names in sorted order.
func (r *Reverser) Names() []string {
	names := lo.Keys(r.pats)
	slices.Sort(names)

	return names
}

// Named registers str under name and panics when that fails.
func (r *Reverser) Named(name, str string) string {
	if err := r.NamedPattern(name, str); err != nil {
		panic("labhttp: " + err.Error())
	}

	return str
}

// NamedPattern parses str as a route pattern and registers it under name.
func (r *Reverser) NamedPattern(name, str string) error {
	if _, exists := r.pats[name]; exists {
		return errors.Newf("route name %q is already taken", name)
	}

	pat, err := parsePattern(str)
	if err != nil {
		return errors.Wrapf(err, "name %q", name)
	}

	r.pats[name] = pat

	return nil
}
