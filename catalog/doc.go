// Package catalog holds the laboratory equipment records and the in-memory registry that
// the web layer queries.
//
// Records are a tagged variant: the common fields live on [Equipment] and the kind specific
// payload is one of the [Spec] implementations. Records are created once by a loader and
// never mutated afterwards; only the order of the [Registry] changes.
//
// Invariants:
//   - no two records in a Registry share an id, compared with Unicode case folding
//   - inserting a nil record or an existing id leaves the Registry unchanged
//   - SortByConsumption is stable and persists for subsequent reads
package catalog
