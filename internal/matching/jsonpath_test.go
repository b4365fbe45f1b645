package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchJSONPath(t *testing.T) {
	body := map[string]any{
		"user": map[string]any{
			"id":    42,
			"email": "a@example.com",
			"roles": []any{"admin", "dev"},
		},
		"items": []any{
			map[string]any{"sku": "A", "qty": 1},
			map[string]any{"sku": "B", "qty": 3},
		},
	}

	tests := []struct {
		name       string
		conditions map[string]any
		want       bool
	}{
		{"single value", map[string]any{"$.user.id": 42}, true},
		{"numeric kinds agree", map[string]any{"$.user.id": 42.0}, true},
		{"wrong value", map[string]any{"$.user.id": 41}, false},
		{"all conditions must hold", map[string]any{"$.user.id": 42, "$.user.email": "x"}, false},
		{"wildcard any result", map[string]any{"$.items[*].sku": "B"}, true},
		{"wildcard no result", map[string]any{"$.items[*].sku": "C"}, false},
		{"array index", map[string]any{"$.user.roles[1]": "dev"}, true},
		{"exists true", map[string]any{"$.user.email": map[string]any{"exists": true}}, true},
		{"exists false on missing", map[string]any{"$.user.phone": map[string]any{"exists": false}}, true},
		{"exists true on missing", map[string]any{"$.user.phone": map[string]any{"exists": true}}, false},
		{"object value", map[string]any{"$.items[0]": map[string]any{"sku": "A", "qty": 1}}, true},
		{"invalid path", map[string]any{"$[": 1}, false},
		{"no conditions", map[string]any{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchJSONPath(tt.conditions, body))
		})
	}
}

func TestMatchJSONPath_ScalarBody(t *testing.T) {
	assert.False(t, MatchJSONPath(map[string]any{"$.a": 1}, "plain"))
	assert.False(t, MatchJSONPath(map[string]any{"$.a": map[string]any{"exists": true}}, nil))
}
