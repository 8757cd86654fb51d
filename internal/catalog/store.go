// Package catalog holds the authoritative in-memory record collections.
// A Store owns one collection; there is no package-level singleton — each
// case gets its own store, seeded through the constructor.
package catalog

import (
	"errors"
	"sync"
)

var (
	// ErrDuplicateID reports an id collision on Add. IDs are generated
	// uuids, so hitting this indicates a caller bug.
	ErrDuplicateID = errors.New("duplicate record id")
	// ErrNotFound reports an absent id on Get or Update.
	ErrNotFound = errors.New("record not found")
)

// Record is anything the store can hold.
type Record interface {
	RecordID() string
}

// Store is an insertion-ordered, id-keyed collection. All mutations run to
// completion under one lock; reads hand out copies, never live references.
type Store[T Record] struct {
	mu    sync.Mutex
	byID  map[string]T
	order []string
}

// NewStore builds a store pre-populated with seed records. Seed entries with
// colliding ids are rejected the same way Add rejects them.
func NewStore[T Record](seed ...T) (*Store[T], error) {
	s := &Store[T]{byID: make(map[string]T, len(seed))}
	for _, rec := range seed {
		if err := s.Add(rec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts a record, preserving arrival order.
func (s *Store[T]) Add(rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.RecordID()
	if _, ok := s.byID[id]; ok {
		return ErrDuplicateID
	}
	s.byID[id] = rec
	s.order = append(s.order, id)
	return nil
}

// Remove deletes a record by id and reports whether it existed. Deleting an
// absent id is not an error: a UI delete action must be idempotent.
func (s *Store[T]) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Update applies mutate to a copy of the record and commits it atomically.
// If mutate returns an error nothing is committed. The mutate func must
// replace reference-typed fields (e.g. tag slices) rather than write through
// them, so previously taken snapshots stay stable.
func (s *Store[T]) Update(id string, mutate func(*T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	if err := mutate(&rec); err != nil {
		return err
	}
	s.byID[id] = rec
	return nil
}

// Get returns a copy of the record.
func (s *Store[T]) Get(id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.byID[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return rec, nil
}

// Snapshot returns a point-in-time copy of the collection in insertion order.
// Callers may iterate it freely while the store keeps mutating.
func (s *Store[T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Len returns the current record count.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
