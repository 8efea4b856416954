package resource

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"
)

// ID identifies a resource held by a Table. IDs are never reused.
type ID uint64

// ErrNotFound is the error class for every failed acquisition: the
// identifier is absent from the table or refers to a resource of an
// incompatible kind.
var ErrNotFound = errors.New("resource not found")

// Table is a shared registry of live resources keyed by ID. Acquisition has
// take semantics: an entry is removed when it is returned, so concurrent
// takes of the same ID race to exactly one success and never yield a
// duplicate handle.
type Table struct {
	nextID  atomic.Uint64
	mux     sync.Mutex
	entries map[ID]any
}

func NewTable() *Table {
	return &Table{entries: map[ID]any{}}
}

// Put registers v and returns its identifier.
func (t *Table) Put(v any) ID {
	id := ID(t.nextID.Inc())
	t.mux.Lock()
	t.entries[id] = v
	t.mux.Unlock()
	return id
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	t.mux.Lock()
	defer t.mux.Unlock()
	return len(t.entries)
}

// Take removes and returns the resource registered under id. A resource of
// a different dynamic type is left in the table untouched.
func Take[T any](t *Table, id ID) (T, error) {
	var zero T
	t.mux.Lock()
	defer t.mux.Unlock()

	v, ok := t.entries[id]
	if !ok {
		return zero, fmt.Errorf("resource %d: %w", id, ErrNotFound)
	}
	r, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("resource %d has kind %T: %w", id, v, ErrNotFound)
	}
	delete(t.entries, id)
	return r, nil
}
