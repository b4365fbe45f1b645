package mock

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"strings"
	"time"
)

// Body is an optional JSON-like payload. The zero value is an absent body,
// which is distinct from a present body holding nil, "", 0, [] or {}.
type Body struct {
	value   any
	present bool
}

// BodyOf returns a present body holding v. BodyOf(nil) is a present JSON null.
func BodyOf(v any) Body {
	return Body{value: v, present: true}
}

// Present reports whether a body was supplied.
func (b Body) Present() bool {
	return b.present
}

// Value returns the payload, or nil when the body is absent.
func (b Body) Value() any {
	return b.value
}

// Clone returns a body whose maps and slices are not shared with b.
func (b Body) Clone() Body {
	if !b.present {
		return Body{}
	}
	return Body{value: CloneValue(b.value), present: true}
}

// IsZero reports whether b is absent. Body fields are tagged omitzero, so
// an absent body is left out of JSON output while a present null is kept.
func (b Body) IsZero() bool {
	return !b.present
}

// MarshalJSON encodes the payload. An absent body encodes as null.
func (b Body) MarshalJSON() ([]byte, error) {
	if !b.present {
		return []byte("null"), nil
	}
	return json.Marshal(b.value)
}

// UnmarshalJSON decodes any JSON value, null included, as a present body.
func (b *Body) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = BodyOf(v)
	return nil
}

func (b Body) String() string {
	if !b.present {
		return "(absent)"
	}
	data, err := json.Marshal(b.value)
	if err != nil {
		return "(unencodable)"
	}
	return string(data)
}

// Request is the normalized form of an intercepted outbound call.
type Request struct {
	// URL is compared verbatim against Expectation.URL.
	URL string `json:"url"`

	// Method is case-insensitive; Normalize upper-cases it.
	Method string `json:"method"`

	// Headers holds one value per header name. May be nil.
	Headers map[string]string `json:"headers,omitempty"`

	// Body is absent when the caller supplied no payload at all.
	Body Body `json:"body,omitzero"`
}

// Normalize returns a copy of r with an upper-cased method and a non-nil
// header map.
func (r Request) Normalize() Request {
	out := r
	out.Method = NormalizeMethod(r.Method)
	out.Headers = make(map[string]string, len(r.Headers))
	maps.Copy(out.Headers, r.Headers)
	return out
}

// NormalizeMethod upper-cases and trims an HTTP method.
func NormalizeMethod(method string) string {
	return strings.ToUpper(strings.TrimSpace(method))
}

// ============================================================================
// Predicates
// ============================================================================

// HeaderKind selects how a HeaderPredicate is evaluated.
type HeaderKind int

const (
	// HeaderAny matches any header set, including an empty one.
	HeaderAny HeaderKind = iota
	// HeaderExact matches only an identical header set.
	HeaderExact
	// HeaderNone matches only an empty header set.
	HeaderNone
)

func (k HeaderKind) String() string {
	switch k {
	case HeaderAny:
		return "any"
	case HeaderExact:
		return "exact"
	case HeaderNone:
		return "none"
	default:
		return "unknown"
	}
}

func (k HeaderKind) MarshalText() ([]byte, error) {
	if k < HeaderAny || k > HeaderNone {
		return nil, fmt.Errorf("unknown header kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *HeaderKind) UnmarshalText(text []byte) error {
	for c := HeaderAny; c <= HeaderNone; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown header kind %q", text)
}

// HeaderPredicate describes the headers an Expectation accepts.
// The zero value is HeaderAny.
type HeaderPredicate struct {
	Kind    HeaderKind        `json:"kind"`
	Headers map[string]string `json:"headers,omitempty"`
}

// ExactHeaders requires the request headers to equal h exactly.
// Names and values are compared case-sensitively.
func ExactHeaders(h map[string]string) HeaderPredicate {
	cp := make(map[string]string, len(h))
	maps.Copy(cp, h)
	return HeaderPredicate{Kind: HeaderExact, Headers: cp}
}

// AnyHeaders accepts every header set.
func AnyHeaders() HeaderPredicate {
	return HeaderPredicate{Kind: HeaderAny}
}

// NoHeaders accepts only requests without headers.
func NoHeaders() HeaderPredicate {
	return HeaderPredicate{Kind: HeaderNone}
}

func (p HeaderPredicate) String() string {
	if p.Kind != HeaderExact {
		return p.Kind.String()
	}
	data, _ := json.Marshal(p.Headers)
	return "exact " + string(data)
}

// BodyKind selects how a BodyPredicate is evaluated.
type BodyKind int

const (
	// BodyIgnore matches whether or not a body is present. It is the
	// default for rules that never mention the body.
	BodyIgnore BodyKind = iota
	// BodyAny matches any present body, including falsy values.
	BodyAny
	// BodyExact matches a present body that is JSON-deep-equal to Value.
	BodyExact
	// BodyNone matches only an absent body.
	BodyNone
	// BodyJSONPath matches a present body satisfying every condition.
	BodyJSONPath
)

func (k BodyKind) String() string {
	switch k {
	case BodyIgnore:
		return "ignore"
	case BodyAny:
		return "any"
	case BodyExact:
		return "exact"
	case BodyNone:
		return "none"
	case BodyJSONPath:
		return "jsonpath"
	default:
		return "unknown"
	}
}

func (k BodyKind) MarshalText() ([]byte, error) {
	if k < BodyIgnore || k > BodyJSONPath {
		return nil, fmt.Errorf("unknown body kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *BodyKind) UnmarshalText(text []byte) error {
	for c := BodyIgnore; c <= BodyJSONPath; c++ {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown body kind %q", text)
}

// BodyPredicate describes the request body an Expectation accepts.
// The zero value is BodyIgnore.
type BodyPredicate struct {
	Kind BodyKind `json:"kind"`

	// Value is the expected payload for BodyExact.
	Value any `json:"value,omitempty"`

	// Conditions maps JSONPath expressions to expected values for
	// BodyJSONPath. An expected value of {"exists": bool} checks presence.
	Conditions map[string]any `json:"conditions,omitempty"`
}

// ExactBody requires a present body deep-equal to v.
func ExactBody(v any) BodyPredicate {
	return BodyPredicate{Kind: BodyExact, Value: CloneValue(v)}
}

// AnyBody requires that some body was supplied.
func AnyBody() BodyPredicate {
	return BodyPredicate{Kind: BodyAny}
}

// NoBody requires that no body was supplied.
func NoBody() BodyPredicate {
	return BodyPredicate{Kind: BodyNone}
}

// IgnoreBody accepts requests with or without a body.
func IgnoreBody() BodyPredicate {
	return BodyPredicate{Kind: BodyIgnore}
}

// JSONPathBody requires a present body satisfying every JSONPath condition.
func JSONPathBody(conditions map[string]any) BodyPredicate {
	cp := make(map[string]any, len(conditions))
	for k, v := range conditions {
		cp[k] = CloneValue(v)
	}
	return BodyPredicate{Kind: BodyJSONPath, Conditions: cp}
}

func (p BodyPredicate) String() string {
	switch p.Kind {
	case BodyExact:
		return "exact " + BodyOf(p.Value).String()
	case BodyJSONPath:
		data, _ := json.Marshal(p.Conditions)
		return "jsonpath " + string(data)
	default:
		return p.Kind.String()
	}
}

// ============================================================================
// Expectation and response
// ============================================================================

// ResponseTemplate is the canned response of an Expectation.
type ResponseTemplate struct {
	// StatusCode is copied verbatim on render and is not range-checked.
	// Zero means unset and renders as DefaultStatusCode, so a rendered
	// Response never carries status 0.
	StatusCode int `json:"statusCode"`

	Headers map[string]string `json:"headers,omitempty"`

	// Body renders as "" when absent.
	Body Body `json:"body,omitzero"`
}

// DefaultStatusCode is used when a template leaves StatusCode unset.
const DefaultStatusCode = 200

// Clone returns a deep copy of t.
func (t ResponseTemplate) Clone() ResponseTemplate {
	out := ResponseTemplate{StatusCode: t.StatusCode, Body: t.Body.Clone()}
	if t.Headers != nil {
		out.Headers = make(map[string]string, len(t.Headers))
		maps.Copy(out.Headers, t.Headers)
	}
	return out
}

// Expectation is a registered rule mapping a request pattern to a response
// template. The session treats a registered Expectation as immutable and
// only ever hands out copies.
type Expectation struct {
	// ID is assigned on registration when empty.
	ID string `json:"id"`

	// Name is an optional label shown in diagnostics.
	Name string `json:"name,omitempty"`

	URL      string           `json:"url"`
	Method   string           `json:"method"`
	Headers  HeaderPredicate  `json:"headers"`
	Body     BodyPredicate    `json:"body"`
	Response ResponseTemplate `json:"response"`

	// Sequence is the registration order. The highest matching sequence wins.
	Sequence int64 `json:"sequence"`

	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy of e.
func (e *Expectation) Clone() *Expectation {
	if e == nil {
		return nil
	}
	out := *e
	if e.Headers.Headers != nil {
		out.Headers.Headers = make(map[string]string, len(e.Headers.Headers))
		maps.Copy(out.Headers.Headers, e.Headers.Headers)
	}
	out.Body.Value = CloneValue(e.Body.Value)
	if e.Body.Conditions != nil {
		out.Body.Conditions = make(map[string]any, len(e.Body.Conditions))
		for k, v := range e.Body.Conditions {
			out.Body.Conditions[k] = CloneValue(v)
		}
	}
	out.Response = e.Response.Clone()
	return &out
}

// Label returns the name of the expectation, or "METHOD URL" when unnamed.
func (e *Expectation) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Method + " " + e.URL
}

// Response is the rendered result of a successful dispatch.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`

	// Body is the template payload as-is, or "" when the template had none.
	Body any `json:"body"`
}

// Header returns the value of a single response header.
func (r *Response) Header(name string) (string, bool) {
	v, ok := r.Headers[name]
	return v, ok
}

// AllHeaders returns a copy of every response header.
func (r *Response) AllHeaders() map[string]string {
	out := make(map[string]string, len(r.Headers))
	maps.Copy(out, r.Headers)
	return out
}

// JSON encodes the body. String bodies are returned unchanged so that an
// already-serialized payload is not quoted twice.
func (r *Response) JSON() ([]byte, error) {
	switch v := r.Body.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return json.Marshal(v)
	}
}

// CloneValue deep-copies the maps and slices of a JSON-like value. Scalars
// and other types are returned unchanged. A container that contains itself
// is copied once; the inner reference is left pointing at the original so
// that later validation can still detect the cycle.
func CloneValue(v any) any {
	return cloneValue(v, make(map[uintptr]bool))
}

func cloneValue(v any, visiting map[uintptr]bool) any {
	switch x := v.(type) {
	case map[string]any:
		if x == nil {
			return x
		}
		ptr := reflect.ValueOf(x).Pointer()
		if visiting[ptr] {
			return x
		}
		visiting[ptr] = true
		defer delete(visiting, ptr)
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = cloneValue(e, visiting)
		}
		return out
	case []any:
		if x == nil {
			return x
		}
		if len(x) > 0 {
			ptr := reflect.ValueOf(x).Pointer()
			if visiting[ptr] {
				return x
			}
			visiting[ptr] = true
			defer delete(visiting, ptr)
		}
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e, visiting)
		}
		return out
	case map[string]string:
		if x == nil {
			return x
		}
		out := make(map[string]string, len(x))
		maps.Copy(out, x)
		return out
	case []byte:
		if x == nil {
			return x
		}
		return append([]byte(nil), x...)
	default:
		return v
	}
}
