package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockhttp/pkg/engine"
	"github.com/getmockd/mockhttp/pkg/mock"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MH_HOST", "example.com")
	t.Setenv("MH_EMPTY", "")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no variables", "hello world", "hello world"},
		{"simple variable", "host: ${MH_HOST}", "host: example.com"},
		{"default unused", "host: ${MH_HOST:-localhost}", "host: example.com"},
		{"default used", "port: ${MH_PORT_UNSET:-3000}", "port: 3000"},
		{"empty value uses default", "v: ${MH_EMPTY:-x}", "v: x"},
		{"empty default", "key: ${MH_KEY_UNSET:-}", "key: "},
		{"missing without default", "key: ${MH_KEY_UNSET}", "key: "},
		{"mixed", "url: ${MH_PROTO_UNSET:-http}://${MH_HOST}", "url: http://example.com"},
		{"not a reference", "$MH_HOST and ${1BAD}", "$MH_HOST and ${1BAD}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandEnvVars(tt.input))
		})
	}
}

func TestParse_FullFixture(t *testing.T) {
	t.Setenv("MH_TOKEN", "secret")

	f, err := Parse([]byte(`
version: "1"
expectations:
  - name: create user
    url: https://api.example.com/users
    method: post
    headers:
      mode: exact
      values:
        Authorization: Bearer ${MH_TOKEN}
    body:
      mode: exact
      value: {"name": "alice", "tags": ["a"]}
    response:
      status: 201
      headers:
        Location: /users/1
      body: {"id": 1}
`))
	require.NoError(t, err)
	require.Len(t, f.Expectations, 1)

	exps, err := f.ToExpectations()
	require.NoError(t, err)
	e := exps[0]

	assert.Equal(t, "create user", e.Name)
	assert.Equal(t, "post", e.Method)
	assert.Equal(t, mock.HeaderExact, e.Headers.Kind)
	assert.Equal(t, map[string]string{"Authorization": "Bearer secret"}, e.Headers.Headers)
	assert.Equal(t, mock.BodyExact, e.Body.Kind)
	assert.Equal(t, map[string]any{"name": "alice", "tags": []any{"a"}}, e.Body.Value)
	assert.Equal(t, 201, e.Response.StatusCode)
	assert.Equal(t, "/users/1", e.Response.Headers["Location"])
	assert.Equal(t, map[string]any{"id": 1}, e.Response.Body.Value())
}

func TestParse_Defaults(t *testing.T) {
	f, err := Parse([]byte(`
expectations:
  - url: /health
`))
	require.NoError(t, err)
	exps, err := f.ToExpectations()
	require.NoError(t, err)

	e := exps[0]
	assert.Equal(t, "GET", e.Method)
	assert.Equal(t, mock.HeaderAny, e.Headers.Kind)
	assert.Equal(t, mock.BodyIgnore, e.Body.Kind)
	assert.False(t, e.Response.Body.Present())
	assert.Zero(t, e.Response.StatusCode)
}

func TestParse_Modes(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		header mock.HeaderKind
		body   mock.BodyKind
	}{
		{"headers any", "headers: {mode: any}", mock.HeaderAny, mock.BodyIgnore},
		{"headers none", "headers: {mode: none}", mock.HeaderNone, mock.BodyIgnore},
		{"body any", "body: {mode: any}", mock.HeaderAny, mock.BodyAny},
		{"body none", "body: {mode: none}", mock.HeaderAny, mock.BodyNone},
		{"body ignore", "body: {mode: ignore}", mock.HeaderAny, mock.BodyIgnore},
		{"body jsonpath", "body: {mode: jsonpath, conditions: {\"$.id\": 1}}", mock.HeaderAny, mock.BodyJSONPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte("expectations:\n  - url: /x\n    " + tt.yaml + "\n"))
			require.NoError(t, err)
			exps, err := f.ToExpectations()
			require.NoError(t, err)
			assert.Equal(t, tt.header, exps[0].Headers.Kind)
			assert.Equal(t, tt.body, exps[0].Body.Kind)
		})
	}
}

func TestParse_ExplicitNullIsPresent(t *testing.T) {
	f, err := Parse([]byte(`
expectations:
  - url: /null
    body:
      mode: exact
      value: null
    response:
      body: null
`))
	require.NoError(t, err)
	exps, err := f.ToExpectations()
	require.NoError(t, err)

	e := exps[0]
	assert.Equal(t, mock.BodyExact, e.Body.Kind)
	assert.Nil(t, e.Body.Value)
	assert.True(t, e.Response.Body.Present())
	assert.Nil(t, e.Response.Body.Value())
}

func TestParse_JSONInput(t *testing.T) {
	f, err := Parse([]byte(`{"expectations": [{"url": "/j", "method": "PUT", "body": {"mode": "any"}}]}`))
	require.NoError(t, err)
	exps, err := f.ToExpectations()
	require.NoError(t, err)
	assert.Equal(t, "PUT", exps[0].Method)
	assert.Equal(t, mock.BodyAny, exps[0].Body.Kind)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		schema bool
		msg    string
	}{
		{"empty", "   \n", false, "file is empty"},
		{"bad yaml", "expectations: [", false, "parsing YAML"},
		{"missing expectations", "version: 1\n", true, ""},
		{"missing url", "expectations:\n  - method: GET\n", true, ""},
		{"unknown field", "expectations:\n  - url: /x\n    matcher: {}\n", true, ""},
		{"bad header mode", "expectations:\n  - url: /x\n    headers: {mode: some}\n", true, ""},
		{"bad body mode", "expectations:\n  - url: /x\n    body: {mode: partial}\n", true, ""},
		{"missing mode", "expectations:\n  - url: /x\n    body: {value: 1}\n", true, ""},
		{"non-string header", "expectations:\n  - url: /x\n    headers: {mode: exact, values: {X-N: 5}}\n", true, ""},
		{"status range", "expectations:\n  - url: /x\n    response: {status: 1000}\n", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, -1, le.Index)

			var se *SchemaError
			assert.Equal(t, tt.schema, errors.As(err, &se))
			if tt.schema {
				assert.NotEmpty(t, se.Problems)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestToExpectations_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"exact without value", "body: {mode: exact}", "requires a value"},
		{"jsonpath without conditions", "body: {mode: jsonpath}", "requires conditions"},
		{"none with values", "headers: {mode: none, values: {A: b}}", "takes no values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte("expectations:\n  - url: /ok\n  - url: /x\n    " + tt.yaml + "\n"))
			require.NoError(t, err)

			_, err = f.ToExpectations()
			require.Error(t, err)
			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, 1, le.Index)
			assert.Contains(t, err.Error(), "expectations[1]")
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestSchemaError_Locations(t *testing.T) {
	_, err := Parse([]byte("expectations:\n  - url: /x\n    body: {mode: partial}\n"))
	var se *SchemaError
	require.ErrorAs(t, err, &se)

	var found bool
	for _, p := range se.Problems {
		if p.Location == "/expectations/0/body/mode" {
			found = true
		}
	}
	assert.True(t, found, "problems: %v", se.Problems)
}

// ============================================================================
// Files and globs
// ============================================================================

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.yaml", "expectations:\n  - url: /a\n")

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.yaml", "expectations: []\n")
	a := writeFile(t, dir, "a.yaml", "expectations: []\n")
	nested := writeFile(t, dir, "nested/deep/c.yaml", "expectations: []\n")
	writeFile(t, dir, "notes.txt", "ignored")

	paths, err := Resolve(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths)

	paths, err = Resolve(filepath.Join(dir, "**", "*.yaml"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b, nested}, paths)

	paths, err = Resolve(b, "", filepath.Join(dir, "none", "*.yaml"), a)
	require.NoError(t, err)
	assert.Equal(t, []string{b, a}, paths, "literal paths keep their order")
}

func TestLoadExpectations_Order(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01-base.yaml", `
expectations:
  - url: http://svc/users
    response: {body: "base"}
`)
	writeFile(t, dir, "02-override.yaml", `
expectations:
  - url: http://svc/users
    response: {body: "override"}
  - url: http://svc/other
`)

	exps, err := LoadExpectations(filepath.Join(dir, "*.yaml"))
	require.NoError(t, err)
	require.Len(t, exps, 3)
	assert.Equal(t, "base", exps[0].Response.Body.Value())
	assert.Equal(t, "override", exps[1].Response.Body.Value())

	s := engine.New()
	stored, err := RegisterAll(s, exps)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	resp, err := s.Dispatch(mock.Request{URL: "http://svc/users", Method: "GET"})
	require.NoError(t, err)
	assert.Equal(t, "override", resp.Body, "later files win")
}

func TestLoadExpectations_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "expectations:\n  - url: /x\n    body: {mode: exact}\n")

	_, err := LoadExpectations(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)

	_, err = LoadExpectations(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRegisterAll_StopsAtFirstFailure(t *testing.T) {
	s := engine.New()
	exps := []*mock.Expectation{
		{URL: "/a", Method: "GET"},
		{URL: "", Method: "GET"},
		{URL: "/c", Method: "GET"},
	}

	stored, err := RegisterAll(s, exps)
	require.Error(t, err)
	assert.ErrorIs(t, err, mock.ErrInvalidExpectation)
	assert.Contains(t, err.Error(), "registering expectation 1")
	assert.Len(t, stored, 1)
	assert.Len(t, s.Expectations(), 1)
}

func TestCheckAll_RegistersNothing(t *testing.T) {
	s := engine.New()
	exps := []*mock.Expectation{
		{URL: "/a", Method: "GET"},
		{URL: "/b", Method: "GET", Headers: mock.ExactHeaders(map[string]string{"bad name": "x"})},
	}

	err := CheckAll(s, exps)
	require.Error(t, err)
	assert.ErrorIs(t, err, mock.ErrInvalidExpectation)
	assert.Contains(t, err.Error(), "registering expectation 1 (GET /b)")
	assert.Empty(t, s.Expectations())

	require.NoError(t, CheckAll(s, exps[:1]))
	assert.Empty(t, s.Expectations())
}
