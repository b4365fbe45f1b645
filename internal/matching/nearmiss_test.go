package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockhttp/pkg/mock"
)

func TestNearMisses_ReportsFailedFields(t *testing.T) {
	e := exp(1, "/orders", "POST",
		mock.ExactHeaders(map[string]string{"Authorization": "token"}),
		mock.ExactBody(map[string]any{"qty": 1}))

	req := mock.Request{
		URL:     "/orders",
		Method:  "PUT",
		Headers: map[string]string{"Authorization": "other"},
		Body:    mock.BodyOf(map[string]any{"qty": 2}),
	}

	misses := NearMisses(req, []*mock.Expectation{e})
	require.Len(t, misses, 1)

	nm := misses[0]
	assert.Equal(t, e.ID, nm.ExpectationID)
	assert.Equal(t, []string{FieldMethod, FieldHeaders, FieldBody}, nm.Failed)
	assert.Contains(t, nm.Reason, "method POST, got PUT")
	assert.Contains(t, nm.Reason, "headers differ: Authorization")
	assert.Contains(t, nm.BodyDiff, "[-1-]")
	assert.Contains(t, nm.BodyDiff, "{+2+}")
}

func TestNearMisses_IgnoresOtherURLsAndMatches(t *testing.T) {
	other := exp(1, "/other", "GET", mock.AnyHeaders(), mock.IgnoreBody())
	hit := exp(2, "/a", "GET", mock.AnyHeaders(), mock.IgnoreBody())

	misses := NearMisses(mock.Request{URL: "/a", Method: "GET"}, []*mock.Expectation{other, hit})
	assert.Empty(t, misses)
}

func TestNearMisses_MostRecentFirstAndCapped(t *testing.T) {
	var exps []*mock.Expectation
	for i := 1; i <= MaxNearMisses+2; i++ {
		e := exp(int64(i), "/a", "POST", mock.AnyHeaders(), mock.IgnoreBody())
		e.ID = fmt.Sprintf("e%d", i)
		exps = append(exps, e)
	}

	misses := NearMisses(mock.Request{URL: "/a", Method: "GET"}, exps)
	require.Len(t, misses, MaxNearMisses)
	assert.Equal(t, "e7", misses[0].ExpectationID)
	assert.Equal(t, "e3", misses[len(misses)-1].ExpectationID)
}

func TestNearMisses_BodyReasons(t *testing.T) {
	none := exp(2, "/a", "GET", mock.AnyHeaders(), mock.NoBody())
	anyBody := exp(1, "/a", "GET", mock.AnyHeaders(), mock.AnyBody())

	misses := NearMisses(mock.Request{URL: "/a", Method: "GET", Body: mock.BodyOf("x")}, []*mock.Expectation{none, anyBody})
	require.Len(t, misses, 1)
	assert.Contains(t, misses[0].Reason, "expected no body")
	assert.Empty(t, misses[0].BodyDiff)

	misses = NearMisses(mock.Request{URL: "/a", Method: "GET"}, []*mock.Expectation{none, anyBody})
	require.Len(t, misses, 1)
	assert.Contains(t, misses[0].Reason, "got none")
}

func TestBodyDiff(t *testing.T) {
	diff := BodyDiff(map[string]any{"name": "alice"}, map[string]any{"name": "bob"})
	assert.Contains(t, diff, `{"name":"`)
	assert.Contains(t, diff, "[-")
	assert.Contains(t, diff, "{+")

	assert.Equal(t, `{"a":1,"b":2}`, BodyDiff(map[string]any{"b": 2, "a": 1}, map[string]any{"a": 1, "b": 2}))
	assert.Equal(t, `{"id":1234567,"ratio":0.5}`, BodyDiff(map[string]any{"id": 1234567, "ratio": 0.5}, map[string]any{"ratio": 0.5, "id": 1234567}))
}
