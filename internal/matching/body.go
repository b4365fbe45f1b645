package matching

import (
	"github.com/getmockd/mockhttp/pkg/mock"
)

// MatchBody reports whether actual satisfies the body predicate.
//
// Any only requires that a body was supplied, so {} and falsy scalars match
// while an absent body does not. None is the exact opposite. Exact compares
// JSON values with Equal.
func MatchBody(p mock.BodyPredicate, actual mock.Body) bool {
	switch p.Kind {
	case mock.BodyIgnore:
		return true
	case mock.BodyAny:
		return actual.Present()
	case mock.BodyNone:
		return !actual.Present()
	case mock.BodyExact:
		return actual.Present() && Equal(p.Value, actual.Value())
	case mock.BodyJSONPath:
		return actual.Present() && MatchJSONPath(p.Conditions, actual.Value())
	default:
		return false
	}
}
