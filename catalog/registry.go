package catalog

import (
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
)

// Registry is the ordered, id-unique set of equipment served by the catalog. Reads share the
// lock while Insert and SortByConsumption hold it exclusively, so a reader never observes a
// partially reordered sequence.
type Registry struct {
	mu    sync.RWMutex
	items []*Equipment
	byID  map[string]*Equipment
}

// Stats summarizes the power draw of the catalog.
type Stats struct {
	Count        int     `json:"totalEquipos"`
	TotalWatts   float64 `json:"consumoTotal"`
	AverageWatts float64 `json:"consumoPromedio"`
}

// NewRegistry inits an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Equipment)}
}

// fold normalizes a string for case-insensitive comparison. Casers are stateful so a new
// one is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Insert appends e unless it is nil or its id is already present. It reports whether the
// record was added.
func (r *Registry) Insert(e *Equipment) bool {
	if e == nil {
		return false
	}

	key := fold(e.ID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[key]; exists {
		return false
	}

	r.byID[key] = e
	r.items = append(r.items, e)

	return true
}

// All returns a copy of the records in their current order.
func (r *Registry) All() []*Equipment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.items)
}

// FindByID looks up a record by id, ignoring case.
func (r *Registry) FindByID(id string) (*Equipment, bool) {
	key := fold(id)

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[key]
	return e, ok
}

// FindByName returns the records whose name contains fragment, ignoring case, in registry
// order. A blank fragment matches nothing.
func (r *Registry) FindByName(fragment string) []*Equipment {
	needle := fold(strings.TrimSpace(fragment))
	if needle == "" {
		return []*Equipment{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Filter(r.items, func(e *Equipment, _ int) bool {
		return strings.Contains(fold(e.Name), needle)
	})
}

// SortByConsumption reorders the records in place by ascending power draw. Records with
// equal draw keep their relative order.
func (r *Registry) SortByConsumption() {
	r.mu.Lock()
	defer r.mu.Unlock()

	slices.SortStableFunc(r.items, func(a, b *Equipment) int {
		switch {
		case a.PowerDrawWatts < b.PowerDrawWatts:
			return -1
		case a.PowerDrawWatts > b.PowerDrawWatts:
			return 1
		default:
			return 0
		}
	})
}

// Count returns the number of records.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// Stats computes the total and average power draw.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := Stats{Count: len(r.items)}
	if st.Count == 0 {
		return st
	}

	st.TotalWatts = lo.SumBy(r.items, func(e *Equipment) float64 { return e.PowerDrawWatts })
	st.AverageWatts = st.TotalWatts / float64(st.Count)

	return st
}
