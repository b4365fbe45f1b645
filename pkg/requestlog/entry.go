package requestlog

import (
	"time"

	"github.com/getmockd/mockhttp/pkg/mock"
)

// Entry captures one dispatched request and how the session resolved it.
type Entry struct {
	// ID is a unique identifier for the log entry.
	ID string `json:"id"`

	// Timestamp is when the request was dispatched.
	Timestamp time.Time `json:"timestamp"`

	// Method is the normalized (upper-case) HTTP method.
	Method string `json:"method"`

	// URL is the request URL exactly as the adapter captured it.
	URL string `json:"url"`

	// Headers are the request headers, one value per name.
	Headers map[string]string `json:"headers,omitempty"`

	// Body is the request body; absent bodies are omitted.
	Body mock.Body `json:"body,omitzero"`

	// Matched reports whether an expectation accepted the request.
	Matched bool `json:"matched"`

	// MatchedID is the ID of the winning expectation (empty if no match).
	MatchedID string `json:"matchedId,omitempty"`

	// StatusCode is the rendered status code (0 if no match).
	StatusCode int `json:"statusCode,omitempty"`

	// Error contains the failure message for unmatched or rejected requests.
	Error string `json:"error,omitempty"`

	// NearMisses summarizes the closest rejected expectations.
	NearMisses []NearMissInfo `json:"nearMisses,omitempty"`
}

// NearMissInfo is a log-friendly summary of a near-miss match.
// Stored on entries for unmatched requests.
type NearMissInfo struct {
	// ExpectationID is the ID of the expectation that partially matched.
	ExpectationID string `json:"expectationId"`

	// Label is the expectation name or "METHOD URL".
	Label string `json:"label"`

	// Failed lists the predicates that rejected the request.
	Failed []string `json:"failed"`

	// Reason is a human-readable explanation of why it didn't fully match.
	Reason string `json:"reason"`
}

// NearMissInfos converts engine near misses into journal summaries.
func NearMissInfos(misses []mock.NearMiss) []NearMissInfo {
	if len(misses) == 0 {
		return nil
	}
	out := make([]NearMissInfo, len(misses))
	for i, nm := range misses {
		out[i] = NearMissInfo{
			ExpectationID: nm.ExpectationID,
			Label:         nm.Label,
			Failed:        append([]string(nil), nm.Failed...),
			Reason:        nm.Reason,
		}
	}
	return out
}
