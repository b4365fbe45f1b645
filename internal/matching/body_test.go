package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/mockhttp/pkg/mock"
)

func TestMatchBody(t *testing.T) {
	absent := mock.Body{}

	tests := []struct {
		name   string
		pred   mock.BodyPredicate
		actual mock.Body
		want   bool
	}{
		{name: "ignore absent", pred: mock.IgnoreBody(), actual: absent, want: true},
		{name: "ignore present", pred: mock.IgnoreBody(), actual: mock.BodyOf("x"), want: true},

		{name: "any present object", pred: mock.AnyBody(), actual: mock.BodyOf(map[string]any{"a": 1}), want: true},
		{name: "any empty object", pred: mock.AnyBody(), actual: mock.BodyOf(map[string]any{}), want: true},
		{name: "any false", pred: mock.AnyBody(), actual: mock.BodyOf(false), want: true},
		{name: "any zero", pred: mock.AnyBody(), actual: mock.BodyOf(0), want: true},
		{name: "any empty string", pred: mock.AnyBody(), actual: mock.BodyOf(""), want: true},
		{name: "any explicit null", pred: mock.AnyBody(), actual: mock.BodyOf(nil), want: true},
		{name: "any absent", pred: mock.AnyBody(), actual: absent, want: false},

		{name: "none absent", pred: mock.NoBody(), actual: absent, want: true},
		{name: "none empty object", pred: mock.NoBody(), actual: mock.BodyOf(map[string]any{}), want: false},
		{name: "none false", pred: mock.NoBody(), actual: mock.BodyOf(false), want: false},

		{
			name:   "exact equal with different key order",
			pred:   mock.ExactBody(map[string]any{"a": 1, "b": []any{1, 2}}),
			actual: mock.BodyOf(map[string]any{"b": []any{1.0, 2.0}, "a": 1.0}),
			want:   true,
		},
		{
			name:   "exact different value",
			pred:   mock.ExactBody(map[string]any{"a": 1}),
			actual: mock.BodyOf(map[string]any{"a": 2}),
			want:   false,
		},
		{
			name:   "exact absent",
			pred:   mock.ExactBody(map[string]any{"a": 1}),
			actual: absent,
			want:   false,
		},
		{
			name:   "exact null matches explicit null",
			pred:   mock.ExactBody(nil),
			actual: mock.BodyOf(nil),
			want:   true,
		},
		{
			name:   "exact null does not match absent",
			pred:   mock.ExactBody(nil),
			actual: absent,
			want:   false,
		},
		{
			name:   "exact array order matters",
			pred:   mock.ExactBody([]any{1, 2}),
			actual: mock.BodyOf([]any{2, 1}),
			want:   false,
		},

		{
			name:   "jsonpath satisfied",
			pred:   mock.JSONPathBody(map[string]any{"$.user.id": 7}),
			actual: mock.BodyOf(map[string]any{"user": map[string]any{"id": 7, "name": "x"}}),
			want:   true,
		},
		{
			name:   "jsonpath absent body",
			pred:   mock.JSONPathBody(map[string]any{"$.user.id": 7}),
			actual: absent,
			want:   false,
		},

		{name: "unknown kind", pred: mock.BodyPredicate{Kind: mock.BodyKind(99)}, actual: absent, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchBody(tt.pred, tt.actual))
		})
	}
}
