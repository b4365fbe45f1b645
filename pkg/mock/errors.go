package mock

import (
	"errors"
	"fmt"
	"strings"
)

// NoMatchMessagePrefix starts every NoMatchError message.
const NoMatchMessagePrefix = "Please mock endpoint: "

// Sentinel errors.
var (
	// ErrNoMatch is matched by errors.Is for every *NoMatchError.
	ErrNoMatch = errors.New("request not mocked")

	// ErrInvalidExpectation is matched by errors.Is for registration failures.
	ErrInvalidExpectation = errors.New("invalid expectation")

	// ErrInvalidRequest is matched by errors.Is for malformed dispatched requests.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrCyclicBody reports a body that contains itself.
	ErrCyclicBody = errors.New("body contains a reference cycle")

	// ErrUnsupportedBody reports a body that cannot be represented as JSON.
	ErrUnsupportedBody = errors.New("body is not representable as JSON")
)

// NoMatchError is returned by dispatch when no registered Expectation
// accepts the request. Its message is always NoMatchMessagePrefix + URL.
type NoMatchError struct {
	URL    string
	Method string

	// NearMisses lists expectations for the same URL that failed at least
	// one predicate, most recent first.
	NearMisses []NearMiss
}

func (e *NoMatchError) Error() string {
	return NoMatchMessagePrefix + e.URL
}

// Is lets errors.Is(err, ErrNoMatch) succeed.
func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoMatch
}

// Detail renders the message followed by the near-miss breakdown.
func (e *NoMatchError) Detail() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	if e.Method != "" {
		fmt.Fprintf(&sb, " (%s)", e.Method)
	}
	if len(e.NearMisses) == 0 {
		return sb.String()
	}
	sb.WriteString("\nNear misses:")
	for i, nm := range e.NearMisses {
		fmt.Fprintf(&sb, "\n%d. %s: %s", i+1, nm.Label, nm.Reason)
		if nm.BodyDiff != "" {
			fmt.Fprintf(&sb, "\n   body diff: %s", nm.BodyDiff)
		}
	}
	return sb.String()
}

// NearMiss describes an expectation that shares the request URL but was
// rejected by at least one predicate.
type NearMiss struct {
	ExpectationID string   `json:"expectationId"`
	Label         string   `json:"label"`
	Sequence      int64    `json:"sequence"`
	Failed        []string `json:"failed"`
	Reason        string   `json:"reason"`

	// BodyDiff is set when an exact body predicate failed on a present body.
	BodyDiff string `json:"bodyDiff,omitempty"`
}

// ValidationError represents a caller error with context.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

// Unwrap returns the sentinel classifying the failure.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
