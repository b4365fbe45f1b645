package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/getmockd/mockhttp/pkg/mock"
)

// MaxNearMisses caps the number of near misses reported for one request.
const MaxNearMisses = 5

// Field names reported in mock.NearMiss.Failed.
const (
	FieldMethod  = "method"
	FieldHeaders = "headers"
	FieldBody    = "body"
)

// NearMisses explains why the expectations registered for the request URL
// rejected it. Every predicate is evaluated without short-circuiting. The
// result is ordered by sequence, most recent first, and capped at
// MaxNearMisses. Expectations for other URLs are never reported.
func NearMisses(req mock.Request, expectations []*mock.Expectation) []mock.NearMiss {
	method := mock.NormalizeMethod(req.Method)

	var out []mock.NearMiss
	for _, e := range expectations {
		if e == nil || e.URL != req.URL {
			continue
		}

		nm := mock.NearMiss{
			ExpectationID: e.ID,
			Label:         e.Label(),
			Sequence:      e.Sequence,
		}
		var reasons []string

		if em := mock.NormalizeMethod(e.Method); em != method {
			nm.Failed = append(nm.Failed, FieldMethod)
			reasons = append(reasons, fmt.Sprintf("method %s, got %s", em, method))
		}

		if !MatchHeaders(e.Headers, req.Headers) {
			nm.Failed = append(nm.Failed, FieldHeaders)
			reasons = append(reasons, describeHeaderMiss(e.Headers, req.Headers))
		}

		if !MatchBody(e.Body, req.Body) {
			nm.Failed = append(nm.Failed, FieldBody)
			reasons = append(reasons, describeBodyMiss(e.Body, req.Body))
			if e.Body.Kind == mock.BodyExact && req.Body.Present() {
				nm.BodyDiff = BodyDiff(e.Body.Value, req.Body.Value())
			}
		}

		if len(nm.Failed) == 0 {
			continue
		}
		nm.Reason = strings.Join(reasons, "; ")
		out = append(out, nm)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sequence > out[j].Sequence
	})
	if len(out) > MaxNearMisses {
		out = out[:MaxNearMisses]
	}
	return out
}

func describeHeaderMiss(p mock.HeaderPredicate, actual map[string]string) string {
	switch p.Kind {
	case mock.HeaderNone:
		return fmt.Sprintf("expected no headers, got %d", len(actual))
	case mock.HeaderExact:
		names := headerMismatches(p.Headers, actual)
		sort.Strings(names)
		return "headers differ: " + strings.Join(names, ", ")
	default:
		return "headers did not match " + p.String()
	}
}

func describeBodyMiss(p mock.BodyPredicate, actual mock.Body) string {
	switch {
	case p.Kind == mock.BodyNone:
		return "expected no body, got " + actual.String()
	case !actual.Present():
		return "expected a body (" + p.Kind.String() + "), got none"
	case p.Kind == mock.BodyJSONPath:
		return "body did not satisfy " + p.String()
	default:
		return "body differs"
	}
}

// BodyDiff renders a character diff between the JSON encodings of the
// expected and actual bodies. Deletions are shown as [-text-] and
// insertions as {+text+}. Keys are sorted so that ordering never shows up
// as a difference.
func BodyDiff(expected, actual any) string {
	want := canonicalJSON(expected)
	got := canonicalJSON(actual)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(want, got, false))

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

// diffOptions sorts object keys and keeps whole numbers out of exponent form.
var diffOptions = &oj.Options{Sort: true, FloatFormat: "%.16g"}

func canonicalJSON(v any) string {
	n, err := Normalize(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return oj.JSON(n, diffOptions)
}
