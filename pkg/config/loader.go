package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockhttp/pkg/mock"
)

// LoadError reports a failure tied to one fixture file.
type LoadError struct {
	Path string
	// Index is the position of the offending expectation, or -1 when the
	// failure concerns the whole file.
	Index   int
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Index >= 0 {
		where = fmt.Sprintf("%s: expectations[%d]", where, e.Index)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", where, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnvVars expands ${VAR_NAME} and ${VAR_NAME:-default} references.
// Unset variables without a default expand to the empty string.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		if val := os.Getenv(submatch[1]); val != "" {
			return val
		}
		if len(submatch) >= 3 {
			return submatch[2]
		}
		return ""
	})
}

// Parse expands environment references in data, validates the result
// against Schema and decodes it. JSON input is accepted as YAML.
func Parse(data []byte) (*File, error) {
	return parse(data, "")
}

func parse(data []byte, path string) (*File, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, &LoadError{Path: path, Index: -1, Message: "file is empty"}
	}

	expanded := []byte(ExpandEnvVars(string(data)))

	var doc any
	if err := yaml.Unmarshal(expanded, &doc); err != nil {
		return nil, &LoadError{Path: path, Index: -1, Message: "parsing YAML", Err: err}
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, &LoadError{Path: path, Index: -1, Message: "invalid fixture file", Err: err}
	}

	var f File
	if err := yaml.Unmarshal(expanded, &f); err != nil {
		return nil, &LoadError{Path: path, Index: -1, Message: "decoding fixtures", Err: err}
	}
	f.Path = path
	return &f, nil
}

// LoadFile reads and parses one fixture file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Path: path, Index: -1, Message: "file not found"}
		}
		return nil, &LoadError{Path: path, Index: -1, Message: "reading file", Err: err}
	}
	return parse(data, path)
}

// Resolve expands patterns into file paths. Patterns containing glob
// metacharacters are expanded with doublestar (so ** recurses) and sorted;
// a glob with no matches contributes nothing. Other patterns are kept as
// literal paths. Order across patterns is preserved.
func Resolve(patterns ...string) ([]string, error) {
	var out []string
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if !isGlob(p) {
			out = append(out, p)
			continue
		}
		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding glob pattern %q: %w", p, err)
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

// Load resolves patterns and parses every file, in order.
func Load(patterns ...string) ([]*File, error) {
	paths, err := Resolve(patterns...)
	if err != nil {
		return nil, err
	}
	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		f, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// LoadExpectations loads patterns and converts every fixture to an
// expectation, preserving file order and the order within each file.
func LoadExpectations(patterns ...string) ([]*mock.Expectation, error) {
	files, err := Load(patterns...)
	if err != nil {
		return nil, err
	}
	var out []*mock.Expectation
	for _, f := range files {
		exps, err := f.ToExpectations()
		if err != nil {
			return nil, err
		}
		out = append(out, exps...)
	}
	return out, nil
}

// Registrar accepts expectations. *engine.Session implements it.
type Registrar interface {
	Register(e *mock.Expectation) (*mock.Expectation, error)
}

// RegisterAll registers exps on r in order and returns the stored copies.
// It stops at the first failure.
func RegisterAll(r Registrar, exps []*mock.Expectation) ([]*mock.Expectation, error) {
	out := make([]*mock.Expectation, 0, len(exps))
	for i, e := range exps {
		stored, err := r.Register(e)
		if err != nil {
			return out, fmt.Errorf("registering expectation %d (%s): %w", i, e.Label(), err)
		}
		out = append(out, stored)
	}
	return out, nil
}

// Checker validates expectations without storing them. *engine.Session
// implements it.
type Checker interface {
	Check(e *mock.Expectation) error
}

// CheckAll runs c.Check over every expectation and returns the first
// failure, worded like RegisterAll's. Call it before RegisterAll to make a
// batch all-or-nothing.
func CheckAll(c Checker, exps []*mock.Expectation) error {
	for i, e := range exps {
		if err := c.Check(e); err != nil {
			return fmt.Errorf("registering expectation %d (%s): %w", i, e.Label(), err)
		}
	}
	return nil
}
