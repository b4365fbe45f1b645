package testing

import (
	"strings"
	"testing"

	"github.com/getmockd/mockhttp/pkg/requestlog"
)

// Calls returns the recorded requests for method and url, oldest first.
// An empty method matches every method.
func (m *Mock) Calls(method, url string) []*requestlog.Entry {
	var out []*requestlog.Entry
	for _, e := range m.Requests() {
		if e.URL != url {
			continue
		}
		if method != "" && !strings.EqualFold(e.Method, method) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// LastCall returns the most recent request for method and url, or nil.
func (m *Mock) LastCall(method, url string) *requestlog.Entry {
	calls := m.Calls(method, url)
	if len(calls) == 0 {
		return nil
	}
	return calls[len(calls)-1]
}

// AssertCalled asserts that method and url were requested at least once.
func (m *Mock) AssertCalled(t testing.TB, method, url string) bool {
	t.Helper()

	if len(m.Calls(method, url)) == 0 {
		t.Errorf("expected %s %s to be called, but it was not\n%s", method, url, m.describeRequests())
		return false
	}
	return true
}

// AssertCalledTimes asserts that method and url were requested exactly n times.
func (m *Mock) AssertCalledTimes(t testing.TB, method, url string, n int) bool {
	t.Helper()

	if got := len(m.Calls(method, url)); got != n {
		t.Errorf("expected %s %s to be called %d times, but was called %d times", method, url, n, got)
		return false
	}
	return true
}

// AssertNotCalled asserts that method and url were never requested.
func (m *Mock) AssertNotCalled(t testing.TB, method, url string) bool {
	t.Helper()

	if got := len(m.Calls(method, url)); got > 0 {
		t.Errorf("expected %s %s not to be called, but it was called %d times", method, url, got)
		return false
	}
	return true
}

// AssertAllMatched asserts that no recorded request went unmatched.
func (m *Mock) AssertAllMatched(t testing.TB) bool {
	t.Helper()

	unmatched := false
	misses := m.session.Requests(&requestlog.Filter{Matched: &unmatched})
	if len(misses) == 0 {
		return true
	}
	var sb strings.Builder
	for _, e := range misses {
		sb.WriteString("\n  " + e.Method + " " + e.URL)
		for _, nm := range e.NearMisses {
			sb.WriteString("\n    near miss " + nm.Label + ": " + nm.Reason)
		}
	}
	t.Errorf("%d request(s) were not mocked:%s", len(misses), sb.String())
	return false
}

func (m *Mock) describeRequests() string {
	reqs := m.Requests()
	if len(reqs) == 0 {
		return "no requests were recorded"
	}
	var sb strings.Builder
	sb.WriteString("recorded requests:")
	for _, e := range reqs {
		sb.WriteString("\n  " + e.Method + " " + e.URL)
	}
	return sb.String()
}
