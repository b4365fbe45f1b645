package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/getmockd/mockhttp/pkg/mock"
)

// Header predicate modes.
const (
	HeaderModeAny   = "any"
	HeaderModeExact = "exact"
	HeaderModeNone  = "none"
)

// Body predicate modes.
const (
	BodyModeIgnore   = "ignore"
	BodyModeAny      = "any"
	BodyModeExact    = "exact"
	BodyModeNone     = "none"
	BodyModeJSONPath = "jsonpath"
)

// File is the top-level structure of a fixture file.
type File struct {
	Version      string    `yaml:"version,omitempty"`
	Expectations []Fixture `yaml:"expectations"`

	// Path is the file the fixtures were read from, if any.
	Path string `yaml:"-"`
}

// Fixture declares one expectation.
type Fixture struct {
	ID       string       `yaml:"id,omitempty"`
	Name     string       `yaml:"name,omitempty"`
	URL      string       `yaml:"url"`
	Method   string       `yaml:"method,omitempty"`
	Headers  *HeaderSpec  `yaml:"headers,omitempty"`
	Body     *BodySpec    `yaml:"body,omitempty"`
	Response ResponseSpec `yaml:"response"`
}

// HeaderSpec selects the header predicate.
type HeaderSpec struct {
	Mode   string            `yaml:"mode"`
	Values map[string]string `yaml:"values,omitempty"`
}

// BodySpec selects the body predicate. Value is kept as a node so that an
// explicit null can be told apart from a missing key.
type BodySpec struct {
	Mode       string         `yaml:"mode"`
	Value      yaml.Node      `yaml:"value,omitempty"`
	Conditions map[string]any `yaml:"conditions,omitempty"`
}

// ResponseSpec declares the canned response.
type ResponseSpec struct {
	Status  int               `yaml:"status,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Body    yaml.Node         `yaml:"body,omitempty"`
}

// ToExpectation converts the fixture into an unregistered expectation.
func (f *Fixture) ToExpectation() (*mock.Expectation, error) {
	e := &mock.Expectation{
		ID:     f.ID,
		Name:   f.Name,
		URL:    f.URL,
		Method: f.Method,
		Response: mock.ResponseTemplate{
			StatusCode: f.Response.Status,
			Headers:    f.Response.Headers,
		},
	}
	if e.Method == "" {
		e.Method = "GET"
	}

	headers, err := f.Headers.predicate()
	if err != nil {
		return nil, err
	}
	e.Headers = headers

	body, err := f.Body.predicate()
	if err != nil {
		return nil, err
	}
	e.Body = body

	respBody, err := nodeBody(&f.Response.Body)
	if err != nil {
		return nil, fmt.Errorf("response.body: %w", err)
	}
	e.Response.Body = respBody

	return e, nil
}

func (h *HeaderSpec) predicate() (mock.HeaderPredicate, error) {
	if h == nil {
		return mock.AnyHeaders(), nil
	}
	switch h.Mode {
	case HeaderModeAny:
		return mock.AnyHeaders(), nil
	case HeaderModeExact:
		return mock.ExactHeaders(h.Values), nil
	case HeaderModeNone:
		if len(h.Values) > 0 {
			return mock.HeaderPredicate{}, fmt.Errorf("headers: mode %q takes no values", h.Mode)
		}
		return mock.NoHeaders(), nil
	default:
		return mock.HeaderPredicate{}, fmt.Errorf("headers: unknown mode %q", h.Mode)
	}
}

func (b *BodySpec) predicate() (mock.BodyPredicate, error) {
	if b == nil {
		return mock.IgnoreBody(), nil
	}
	switch b.Mode {
	case BodyModeIgnore:
		return mock.IgnoreBody(), nil
	case BodyModeAny:
		return mock.AnyBody(), nil
	case BodyModeNone:
		return mock.NoBody(), nil
	case BodyModeExact:
		v, err := nodeBody(&b.Value)
		if err != nil {
			return mock.BodyPredicate{}, fmt.Errorf("body.value: %w", err)
		}
		if !v.Present() {
			return mock.BodyPredicate{}, fmt.Errorf("body: mode %q requires a value", b.Mode)
		}
		return mock.ExactBody(v.Value()), nil
	case BodyModeJSONPath:
		if len(b.Conditions) == 0 {
			return mock.BodyPredicate{}, fmt.Errorf("body: mode %q requires conditions", b.Mode)
		}
		return mock.JSONPathBody(b.Conditions), nil
	default:
		return mock.BodyPredicate{}, fmt.Errorf("body: unknown mode %q", b.Mode)
	}
}

// nodeBody decodes n. A zero node is an absent body.
func nodeBody(n *yaml.Node) (mock.Body, error) {
	if n.Kind == 0 {
		return mock.Body{}, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return mock.Body{}, err
	}
	return mock.BodyOf(v), nil
}

// ToExpectations converts every fixture in the file, in order.
func (f *File) ToExpectations() ([]*mock.Expectation, error) {
	out := make([]*mock.Expectation, 0, len(f.Expectations))
	for i := range f.Expectations {
		e, err := f.Expectations[i].ToExpectation()
		if err != nil {
			return nil, &LoadError{Path: f.Path, Index: i, Message: "invalid expectation", Err: err}
		}
		out = append(out, e)
	}
	return out, nil
}
