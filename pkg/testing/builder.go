package testing

import (
	"fmt"
	"maps"
	"net/http"

	"github.com/getmockd/mockhttp/pkg/mock"
)

// Registrar accepts finished expectations. *engine.Session implements it.
type Registrar interface {
	Register(e *mock.Expectation) (*mock.Expectation, error)
}

// RequestBuilder declares the request side of one expectation.
// Undeclared predicates default to any headers and an ignored body; the
// method defaults to GET.
type RequestBuilder struct {
	reg  Registrar
	t    failer
	exp  mock.Expectation
	resp *ResponseBuilder
}

// ResponseBuilder declares the response side of one expectation and
// registers it.
type ResponseBuilder struct {
	req        *RequestBuilder
	registered *mock.Expectation
	err        error
}

// failer is the part of testing.TB the builder needs.
type failer interface {
	Helper()
	Fatalf(format string, args ...any)
}

// WhenURL starts an expectation for url on r. Use Reply or Register on the
// response side to finish it.
func WhenURL(r Registrar, url string) *RequestBuilder {
	return newRequestBuilder(r, nil, url)
}

func newRequestBuilder(r Registrar, t failer, url string) *RequestBuilder {
	return &RequestBuilder{
		reg: r,
		t:   t,
		exp: mock.Expectation{
			URL:     url,
			Method:  http.MethodGet,
			Headers: mock.AnyHeaders(),
			Body:    mock.IgnoreBody(),
		},
	}
}

// WithMethod sets the HTTP method (case-insensitive).
func (b *RequestBuilder) WithMethod(method string) *RequestBuilder {
	b.exp.Method = method
	return b
}

// Named sets a human-readable name shown in near-miss diagnostics.
func (b *RequestBuilder) Named(name string) *RequestBuilder {
	b.exp.Name = name
	return b
}

// WithHeaders requires exactly these headers, no more and no fewer.
func (b *RequestBuilder) WithHeaders(headers map[string]string) *RequestBuilder {
	b.exp.Headers = mock.ExactHeaders(headers)
	return b
}

// WithAnyHeaders accepts any header set, including none.
func (b *RequestBuilder) WithAnyHeaders() *RequestBuilder {
	b.exp.Headers = mock.AnyHeaders()
	return b
}

// WithNoHeaders requires that the request carries no headers.
func (b *RequestBuilder) WithNoHeaders() *RequestBuilder {
	b.exp.Headers = mock.NoHeaders()
	return b
}

// WithData requires a body JSON-equal to data.
func (b *RequestBuilder) WithData(data any) *RequestBuilder {
	b.exp.Body = mock.ExactBody(data)
	return b
}

// WithAnyData requires that a body is present, whatever it holds.
func (b *RequestBuilder) WithAnyData() *RequestBuilder {
	b.exp.Body = mock.AnyBody()
	return b
}

// WithNoData requires that no body is present.
func (b *RequestBuilder) WithNoData() *RequestBuilder {
	b.exp.Body = mock.NoBody()
	return b
}

// WithDataMatching requires a body satisfying every JSONPath condition.
// A condition value of {"exists": true|false} checks presence only.
func (b *RequestBuilder) WithDataMatching(conditions map[string]any) *RequestBuilder {
	b.exp.Body = mock.JSONPathBody(conditions)
	return b
}

// ThenRespond switches to the response side. Calling it again returns the
// same ResponseBuilder.
func (b *RequestBuilder) ThenRespond() *ResponseBuilder {
	if b.resp == nil {
		b.resp = &ResponseBuilder{req: b}
	}
	return b.resp
}

// WithStatusCode sets the response status. Zero renders as 200.
func (r *ResponseBuilder) WithStatusCode(code int) *ResponseBuilder {
	r.req.exp.Response.StatusCode = code
	return r
}

// WithHeaders merges headers into the response headers.
func (r *ResponseBuilder) WithHeaders(headers map[string]string) *ResponseBuilder {
	if r.req.exp.Response.Headers == nil {
		r.req.exp.Response.Headers = make(map[string]string, len(headers))
	}
	maps.Copy(r.req.exp.Response.Headers, headers)
	return r
}

// WithHeader sets one response header.
func (r *ResponseBuilder) WithHeader(name, value string) *ResponseBuilder {
	return r.WithHeaders(map[string]string{name: value})
}

// WithData sets the response body. Strings are sent verbatim; other values
// are JSON-encoded by the adapters.
func (r *ResponseBuilder) WithData(data any) *ResponseBuilder {
	r.req.exp.Response.Body = mock.BodyOf(data)
	return r
}

// RespondWith is a shorthand for setting status and body together.
func (r *ResponseBuilder) RespondWith(status int, data any) *ResponseBuilder {
	return r.WithStatusCode(status).WithData(data)
}

// Register registers the expectation exactly once. Later calls return the
// first result without registering again.
func (r *ResponseBuilder) Register() (*mock.Expectation, error) {
	if r.registered != nil || r.err != nil {
		return r.registered, r.err
	}
	if r.req.reg == nil {
		r.err = fmt.Errorf("register %s %s: no registrar", r.req.exp.Method, r.req.exp.URL)
		return nil, r.err
	}
	e := r.req.exp
	r.registered, r.err = r.req.reg.Register(&e)
	return r.registered, r.err
}

// Reply is Register for tests: a registration error fails the test when the
// builder came from a Mock, and panics otherwise.
func (r *ResponseBuilder) Reply() *mock.Expectation {
	e, err := r.Register()
	if err != nil {
		if r.req.t != nil {
			r.req.t.Helper()
			r.req.t.Fatalf("mockhttp: %v", err)
			return nil
		}
		panic(fmt.Sprintf("mockhttp: %v", err))
	}
	return e
}
