// Package matching decides which registered expectation answers an
// intercepted request.
//
// Matching is a pure filter pipeline over the registry snapshot:
//
//  1. URL (exact string) and method (case-insensitive)
//  2. header predicate (MatchHeaders)
//  3. body predicate (MatchBody)
//
// Among the survivors the expectation with the highest sequence wins. There
// is no specificity scoring: a later catch-all rule shadows an earlier exact
// rule for the same URL and method, and that is intended.
//
// Request and expected bodies are compared as JSON values. Normalize converts
// arbitrary Go values into the canonical form (nil, bool, float64, string,
// []any, map[string]any) and rejects cyclic structures, and Equal compares two
// values in that form.
//
// When nothing matches, NearMisses explains which predicates rejected the
// expectations registered for the same URL.
package matching
