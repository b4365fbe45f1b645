package testing

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/getmockd/mockhttp/pkg/adapter"
	"github.com/getmockd/mockhttp/pkg/engine"
	"github.com/getmockd/mockhttp/pkg/requestlog"
)

// Mock is a test helper wrapping an engine.Session.
// The session is reset automatically when the test completes.
type Mock struct {
	t       testing.TB
	session *engine.Session

	mu      sync.Mutex
	client  *http.Client
	servers []*httptest.Server
}

// New creates a Mock for t with a fresh session.
func New(t testing.TB, opts ...engine.Option) *Mock {
	t.Helper()
	m := &Mock{t: t, session: engine.New(opts...)}
	t.Cleanup(m.close)
	return m
}

// Session returns the underlying session.
func (m *Mock) Session() *engine.Session {
	return m.session
}

// WhenURL starts an expectation for url. Finish it with
// ThenRespond()...Reply().
func (m *Mock) WhenURL(url string) *RequestBuilder {
	return newRequestBuilder(m.session, m.t, url)
}

// Client returns an *http.Client whose calls are answered by the session.
func (m *Mock) Client() *http.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		m.client = adapter.NewClient(m.session)
	}
	return m.client
}

// Transport returns a RoundTripper answered by the session, for code that
// builds its own client.
func (m *Mock) Transport() http.RoundTripper {
	return adapter.NewTransport(m.session)
}

// Server starts an httptest server answered by the session and returns its
// URL. Request URLs are baseURL plus the request URI, so expectations can
// keep using production URLs. The server is closed when the test completes.
func (m *Mock) Server(baseURL string) string {
	m.t.Helper()
	srv := httptest.NewServer(adapter.NewHandler(m.session, baseURL))
	m.mu.Lock()
	m.servers = append(m.servers, srv)
	m.mu.Unlock()
	return srv.URL
}

// Reset clears all expectations and recorded requests.
func (m *Mock) Reset() {
	m.session.Reset()
}

// Requests returns the recorded requests, oldest first.
func (m *Mock) Requests() []*requestlog.Entry {
	entries := m.session.Requests(nil)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

func (m *Mock) close() {
	m.mu.Lock()
	servers := m.servers
	m.servers = nil
	m.mu.Unlock()

	for _, srv := range servers {
		srv.Close()
	}
	m.session.Reset()
}
