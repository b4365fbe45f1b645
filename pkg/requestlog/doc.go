// Package requestlog records the requests a session has dispatched.
//
// The journal is what test assertions and the serve command's admin routes
// read: which requests came in, which expectation answered each one, and
// why unmatched requests were rejected. It is distinct from operational
// logging, which uses log/slog.
//
// # Core Types
//
// Entry is one dispatched request and its outcome. Store is the storage
// contract; MemoryStore is a bounded in-memory implementation that keeps the
// newest entries and supports live subscriptions.
//
// # Usage
//
//	store := requestlog.NewMemoryStore(1000)
//	store.Log(&requestlog.Entry{Method: "GET", URL: "/users", Matched: true})
//
//	matched := true
//	hits := store.List(&requestlog.Filter{URL: "/users", Matched: &matched})
package requestlog
