package matching

import (
	"github.com/getmockd/mockhttp/pkg/mock"
)

// MatchHeaders reports whether actual satisfies the header predicate.
// Exact comparison is case-sensitive on names and values because header
// sets are treated as plain string maps, not as HTTP header collections.
func MatchHeaders(p mock.HeaderPredicate, actual map[string]string) bool {
	switch p.Kind {
	case mock.HeaderAny:
		return true
	case mock.HeaderNone:
		return len(actual) == 0
	case mock.HeaderExact:
		return headersEqual(p.Headers, actual)
	default:
		return false
	}
}

func headersEqual(expected, actual map[string]string) bool {
	if len(expected) != len(actual) {
		return false
	}
	for name, want := range expected {
		got, ok := actual[name]
		if !ok || got != want {
			return false
		}
	}
	return true
}

// headerMismatches lists the names whose presence or value differs.
func headerMismatches(expected, actual map[string]string) []string {
	var out []string
	for name, want := range expected {
		if got, ok := actual[name]; !ok || got != want {
			out = append(out, name)
		}
	}
	for name := range actual {
		if _, ok := expected[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
