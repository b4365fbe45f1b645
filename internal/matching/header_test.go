package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/mockhttp/pkg/mock"
)

func TestMatchHeaders(t *testing.T) {
	tests := []struct {
		name   string
		pred   mock.HeaderPredicate
		actual map[string]string
		want   bool
	}{
		{
			name:   "any with headers",
			pred:   mock.AnyHeaders(),
			actual: map[string]string{"a": "1"},
			want:   true,
		},
		{
			name:   "any without headers",
			pred:   mock.AnyHeaders(),
			actual: nil,
			want:   true,
		},
		{
			name:   "zero value is any",
			pred:   mock.HeaderPredicate{},
			actual: map[string]string{"x": "y"},
			want:   true,
		},
		{
			name:   "none with nil map",
			pred:   mock.NoHeaders(),
			actual: nil,
			want:   true,
		},
		{
			name:   "none with empty map",
			pred:   mock.NoHeaders(),
			actual: map[string]string{},
			want:   true,
		},
		{
			name:   "none with headers",
			pred:   mock.NoHeaders(),
			actual: map[string]string{"a": "1"},
			want:   false,
		},
		{
			name:   "exact equal",
			pred:   mock.ExactHeaders(map[string]string{"a": "1", "b": "2"}),
			actual: map[string]string{"b": "2", "a": "1"},
			want:   true,
		},
		{
			name:   "exact extra header",
			pred:   mock.ExactHeaders(map[string]string{"a": "1"}),
			actual: map[string]string{"a": "1", "b": "2"},
			want:   false,
		},
		{
			name:   "exact missing header",
			pred:   mock.ExactHeaders(map[string]string{"a": "1", "b": "2"}),
			actual: map[string]string{"a": "1"},
			want:   false,
		},
		{
			name:   "exact different value",
			pred:   mock.ExactHeaders(map[string]string{"a": "1"}),
			actual: map[string]string{"a": "2"},
			want:   false,
		},
		{
			name:   "exact is case sensitive on names",
			pred:   mock.ExactHeaders(map[string]string{"Accept": "x"}),
			actual: map[string]string{"accept": "x"},
			want:   false,
		},
		{
			name:   "exact empty against nothing",
			pred:   mock.ExactHeaders(map[string]string{}),
			actual: nil,
			want:   true,
		},
		{
			name:   "unknown kind",
			pred:   mock.HeaderPredicate{Kind: mock.HeaderKind(42)},
			actual: nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchHeaders(tt.pred, tt.actual))
		})
	}
}

func TestHeaderMismatches(t *testing.T) {
	got := headerMismatches(
		map[string]string{"a": "1", "b": "2"},
		map[string]string{"a": "1", "b": "3", "c": "4"},
	)
	assert.ElementsMatch(t, []string{"b", "c"}, got)
}
