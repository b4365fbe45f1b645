// Package adapter connects Go HTTP clients and servers to an engine.Session.
//
// Each adapter turns one kind of intercepted call into a mock.Request,
// dispatches it, and converts the outcome back into what the caller
// expects:
//
//   - Transport is an http.RoundTripper. Install it on an http.Client (or
//     use NewClient) and every outbound call is answered by the session. An
//     unmocked call fails with the *mock.NoMatchError, wrapped by http.Client
//     in a *url.Error.
//   - Handler is an http.Handler for httptest servers and the serve command.
//     An unmocked call gets a 501 JSON error.
//   - Callback delivers the outcome asynchronously, invoking exactly one of
//     two callbacks on a separate goroutine.
//
// Request conversion is the same everywhere: the first value of each
// header, under its canonical name; the body parsed as JSON when it parses,
// the raw text when it does not, and absent when it is empty.
package adapter
