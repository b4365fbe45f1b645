// Package engine provides the mock session that adapters dispatch
// intercepted requests to.
//
// # Architecture
//
//	┌──────────────┐   mock.Request    ┌──────────────────────────────┐
//	│   adapter    │ ────────────────▶ │           Session            │
//	│ (Transport,  │                   │                              │
//	│  Handler,    │ ◀──────────────── │  registry ─▶ matching.Select │
//	│  Callback)   │  Response / error │  journal     mock.Render     │
//	└──────────────┘                   └──────────────────────────────┘
//
// A Session holds an append-only registry of expectations. Dispatch keeps
// only the expectations whose URL, method, header predicate and body
// predicate all accept the request, then answers with the survivor that was
// registered last. Predicate specificity plays no part: a catch-all rule
// registered after an exact one shadows it.
//
// When nothing survives, Dispatch returns a *mock.NoMatchError. Its message
// is always "Please mock endpoint: " followed by the URL; Detail() adds the
// near misses registered for that URL.
//
// # Lifecycle
//
//	Uninitialized ──Register / Activate──▶ Active ──Reset──▶ Uninitialized
//
// Reset is idempotent and also clears the request journal.
//
// # Usage
//
//	s := engine.New(engine.WithLogger(logger))
//	s.Register(&mock.Expectation{
//	    URL:      "https://api.example.com/users",
//	    Method:   "GET",
//	    Response: mock.ResponseTemplate{Body: mock.BodyOf([]any{"alice"})},
//	})
//	resp, err := s.Dispatch(mock.Request{URL: "https://api.example.com/users", Method: "get"})
package engine
