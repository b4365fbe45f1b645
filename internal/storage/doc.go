// Package storage provides the expectation registry.
//
// Key types:
//
//   - Registry: Interface for the ordered, append-only expectation store
//   - InMemoryRegistry: Thread-safe in-memory implementation of Registry
//
// The registry owns sequence numbering. Every Append assigns the next
// sequence number, so the most recently registered expectation always has
// the highest one. Clear empties the store and restarts numbering.
//
// Stored expectations are private copies. Callers never receive a pointer
// into the store, so mutating a returned expectation does not change what
// the matcher sees.
package storage
