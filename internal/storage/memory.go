package storage

import (
	"sync"

	"github.com/getmockd/mockhttp/pkg/mock"
)

// InMemoryRegistry is a thread-safe in-memory implementation of Registry.
type InMemoryRegistry struct {
	mu      sync.RWMutex
	entries []*mock.Expectation
	byID    map[string]*mock.Expectation
	nextSeq int64
}

// NewInMemoryRegistry creates a new InMemoryRegistry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		byID:    make(map[string]*mock.Expectation),
		nextSeq: 1,
	}
}

// Append stores a copy of e with the next sequence number.
func (r *InMemoryRegistry) Append(e *mock.Expectation) *mock.Expectation {
	if e == nil {
		return nil
	}
	stored := e.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	stored.Sequence = r.nextSeq
	r.nextSeq++
	r.entries = append(r.entries, stored)
	if stored.ID != "" {
		r.byID[stored.ID] = stored
	}
	return stored.Clone()
}

// Get retrieves an expectation by ID. Returns nil if not found.
func (r *InMemoryRegistry) Get(id string) *mock.Expectation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.byID[id]; ok {
		return e.Clone()
	}
	return nil
}

// List returns copies of all expectations in registration order.
func (r *InMemoryRegistry) List() []*mock.Expectation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*mock.Expectation, len(r.entries))
	for i, e := range r.entries {
		result[i] = e.Clone()
	}
	return result
}

// Count returns the number of stored expectations.
func (r *InMemoryRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Clear removes all expectations and restarts sequence numbering.
func (r *InMemoryRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.byID = make(map[string]*mock.Expectation)
	r.nextSeq = 1
}

// Ensure InMemoryRegistry implements Registry.
var _ Registry = (*InMemoryRegistry)(nil)
