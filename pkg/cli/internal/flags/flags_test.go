package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Set("a.yaml"))
	require.NoError(t, s.Set("b.yaml, c.yaml"))

	assert.Equal(t, StringSlice{"a.yaml", "b.yaml", "c.yaml"}, s)
	assert.Equal(t, "a.yaml,b.yaml,c.yaml", s.String())
	assert.Equal(t, "stringSlice", s.Type())
}

func TestHeaders(t *testing.T) {
	var h Headers
	assert.Equal(t, "", h.String())

	require.NoError(t, h.Set("Authorization: Bearer a:b"))
	require.NoError(t, h.Set("X-Id:1"))
	require.NoError(t, h.Set("X-Id: 2"))

	assert.Equal(t, Headers{"Authorization": "Bearer a:b", "X-Id": "2"}, h)
	assert.Equal(t, "Authorization: Bearer a:b, X-Id: 2", h.String())

	assert.Error(t, h.Set("no-colon"))
	assert.Error(t, h.Set(": empty name"))
}
