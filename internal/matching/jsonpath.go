package matching

import (
	"github.com/ohler55/ojg/jp"
)

// MatchJSONPath evaluates JSONPath conditions against a JSON-like body.
// Every condition must hold. An expected value of {"exists": true} or
// {"exists": false} checks presence instead of value; for wildcard paths
// any one result equal to the expected value is enough.
func MatchJSONPath(conditions map[string]any, body any) bool {
	if len(conditions) == 0 {
		return false
	}

	data, err := Normalize(body)
	if err != nil {
		return false
	}

	for path, expected := range conditions {
		if !matchSingleJSONPath(path, expected, data) {
			return false
		}
	}
	return true
}

func matchSingleJSONPath(path string, expected, data any) bool {
	expr, err := jp.ParseString(path)
	if err != nil {
		return false
	}

	results := expr.Get(data)

	if exists, ok := existenceCheck(expected); ok {
		return exists == (len(results) > 0)
	}

	for _, result := range results {
		if Equal(result, expected) {
			return true
		}
	}
	return false
}

// existenceCheck recognizes {"exists": bool} and returns the flag.
func existenceCheck(expected any) (exists, ok bool) {
	m, isMap := expected.(map[string]any)
	if !isMap || len(m) != 1 {
		return false, false
	}
	v, has := m["exists"]
	if !has {
		return false, false
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, false
	}
	return b, true
}
