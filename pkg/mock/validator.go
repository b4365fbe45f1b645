package mock

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"golang.org/x/net/http/httpguts"
)

// Validate reports caller errors that would make the expectation impossible
// to match or to render. It is run on registration so that a typo fails
// while the test is being written instead of at dispatch time.
func (e *Expectation) Validate() error {
	if strings.TrimSpace(e.URL) == "" {
		return invalid("url", "url is required")
	}
	if e.URL != strings.TrimSpace(e.URL) {
		return invalid("url", fmt.Sprintf("url %q has surrounding whitespace", e.URL))
	}
	if err := ValidateMethod(e.Method); err != nil {
		return err
	}
	if err := e.Headers.Validate(); err != nil {
		return err
	}
	if err := e.Body.Validate(); err != nil {
		return err
	}
	return e.Response.Validate()
}

// ValidateMethod checks that method is a non-empty HTTP token.
func ValidateMethod(method string) error {
	if method == "" {
		return invalid("method", "method is required")
	}
	if strings.IndexFunc(method, func(r rune) bool { return !httpguts.IsTokenRune(r) }) != -1 {
		return invalid("method", fmt.Sprintf("method %q is not a valid HTTP token", method))
	}
	return nil
}

// Validate checks the predicate kind and, for HeaderExact, every header.
func (p HeaderPredicate) Validate() error {
	switch p.Kind {
	case HeaderAny, HeaderNone:
		if len(p.Headers) > 0 {
			return invalid("headers", fmt.Sprintf("%s predicate does not take headers", p.Kind))
		}
		return nil
	case HeaderExact:
		return validateHeaderMap("headers", p.Headers)
	default:
		return invalid("headers", fmt.Sprintf("unknown header predicate kind %d", p.Kind))
	}
}

// Validate checks the predicate kind and its JSONPath expressions.
func (p BodyPredicate) Validate() error {
	switch p.Kind {
	case BodyIgnore, BodyAny, BodyNone:
		if p.Value != nil || len(p.Conditions) > 0 {
			return invalid("body", fmt.Sprintf("%s predicate does not take a value", p.Kind))
		}
		return nil
	case BodyExact:
		return nil
	case BodyJSONPath:
		if len(p.Conditions) == 0 {
			return invalid("body.conditions", "at least one JSONPath condition is required")
		}
		for path := range p.Conditions {
			if _, err := jp.ParseString(path); err != nil {
				return invalid("body.conditions", fmt.Sprintf("invalid JSONPath %q: %v", path, err))
			}
		}
		return nil
	default:
		return invalid("body", fmt.Sprintf("unknown body predicate kind %d", p.Kind))
	}
}

// Validate checks the response headers. The status code is not
// range-checked.
func (t ResponseTemplate) Validate() error {
	return validateHeaderMap("response.headers", t.Headers)
}

func validateHeaderMap(field string, headers map[string]string) error {
	for name, value := range headers {
		if !httpguts.ValidHeaderFieldName(name) {
			return invalid(field, fmt.Sprintf("invalid header name %q", name))
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			return invalid(field, fmt.Sprintf("invalid value for header %q", name))
		}
	}
	return nil
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg, Err: ErrInvalidExpectation}
}
