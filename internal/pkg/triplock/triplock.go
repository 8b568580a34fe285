// Package triplock serializes read-check-write sequences per trip. Two
// concurrent bookings against the same trip must not both pass the
// availability check; holding the trip's lock across check and write keeps
// the derived seat count within capacity.
package triplock

import (
	"sync"

	"github.com/google/uuid"
)

// Registry hands out one mutex per trip id. Entries are reference counted
// and removed once the last holder releases, so the map stays bounded by
// the number of in-flight operations.
type Registry struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// NewRegistry creates an empty lock registry
func NewRegistry() *Registry {
	return &Registry{locks: make(map[uuid.UUID]*entry)}
}

// Lock acquires the mutex for the given trip, blocking until it is free
func (r *Registry) Lock(tripID uuid.UUID) {
	r.mu.Lock()
	e, ok := r.locks[tripID]
	if !ok {
		e = &entry{}
		r.locks[tripID] = e
	}
	e.refs++
	r.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for the given trip
func (r *Registry) Unlock(tripID uuid.UUID) {
	r.mu.Lock()
	e, ok := r.locks[tripID]
	if !ok {
		r.mu.Unlock()
		panic("triplock: unlock of unheld trip lock")
	}
	e.refs--
	if e.refs == 0 {
		delete(r.locks, tripID)
	}
	r.mu.Unlock()

	e.mu.Unlock()
}
