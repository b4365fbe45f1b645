// Package testing provides a testing SDK for declaring HTTP mocks in Go tests.
//
// A Mock wraps an engine.Session. Expectations are declared with a chained
// builder that registers exactly one rule per chain, and calls are answered
// through an *http.Client (Client), a RoundTripper (Transport) or an
// httptest server (Server).
//
// # Basic Usage
//
//	func TestFetchUser(t *testing.T) {
//	    m := mockhttp.New(t)
//
//	    m.WhenURL("https://api.example.com/users/123").
//	        WithMethod("GET").
//	        WithNoData().
//	        ThenRespond().
//	        WithStatusCode(200).
//	        WithData(map[string]any{"id": "123", "name": "Test User"}).
//	        Reply()
//
//	    user, err := NewAPI(m.Client()).FetchUser("123")
//	    // ...
//
//	    m.AssertCalled(t, "GET", "https://api.example.com/users/123")
//	}
//
// # Request Predicates
//
// Headers and body are matched independently:
//
//	WithHeaders(h)         exactly these headers
//	WithAnyHeaders()       any headers, including none (default)
//	WithNoHeaders()        no headers at all
//	WithData(v)            body JSON-equal to v
//	WithAnyData()          some body, even {} or 0
//	WithNoData()           no body at all
//	WithDataMatching(c)    body satisfying JSONPath conditions
//
// When no body predicate is declared the body is ignored.
//
// # Resolution
//
// When several expectations accept a request, the one registered last
// wins, however general it is. Register broad fallbacks first and specific
// cases after them.
//
// # Unmocked Calls
//
// A call no expectation accepts fails with "Please mock endpoint: <url>".
// Through Client it surfaces as the request error; through Server it is a
// 501 JSON response. AssertAllMatched reports every such call with its near
// misses.
package testing
