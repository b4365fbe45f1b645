package storage

import (
	"github.com/getmockd/mockhttp/pkg/mock"
)

// Registry defines the contract for storing registered expectations.
type Registry interface {
	// Append stores a copy of e, assigns it the next sequence number and
	// returns a copy of the stored expectation.
	Append(e *mock.Expectation) *mock.Expectation

	// Get retrieves an expectation by ID. Returns nil if not found.
	Get(id string) *mock.Expectation

	// List returns copies of all expectations in registration order.
	List() []*mock.Expectation

	// Count returns the number of stored expectations.
	Count() int

	// Clear removes all expectations and restarts sequence numbering.
	Clear()
}
