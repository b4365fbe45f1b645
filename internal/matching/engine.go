package matching

import (
	"github.com/getmockd/mockhttp/pkg/mock"
)

// Survivors returns, in registration order, every expectation that accepts
// the request: same URL, same method (case-insensitive), header predicate
// satisfied, body predicate satisfied.
func Survivors(req mock.Request, expectations []*mock.Expectation) []*mock.Expectation {
	method := mock.NormalizeMethod(req.Method)

	var out []*mock.Expectation
	for _, e := range expectations {
		if e == nil {
			continue
		}
		if e.URL != req.URL || mock.NormalizeMethod(e.Method) != method {
			continue
		}
		if !MatchHeaders(e.Headers, req.Headers) {
			continue
		}
		if !MatchBody(e.Body, req.Body) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Select returns the surviving expectation with the highest sequence, i.e.
// the most recently registered rule that still accepts the request.
// Specificity plays no part. Returns false when nothing survives.
func Select(req mock.Request, expectations []*mock.Expectation) (*mock.Expectation, bool) {
	var best *mock.Expectation
	for _, e := range Survivors(req, expectations) {
		if best == nil || e.Sequence > best.Sequence {
			best = e
		}
	}
	return best, best != nil
}
