package adapter

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/getmockd/mockhttp/pkg/httputil"
	"github.com/getmockd/mockhttp/pkg/logging"
	"github.com/getmockd/mockhttp/pkg/mock"
)

// ProfileTransport is the profile name NewTransport activates.
const ProfileTransport = "http.RoundTripper"

// Option configures an adapter.
type Option func(*options)

type options struct {
	log         *slog.Logger
	skipHeaders map[string]bool
}

func newOptions(opts []Option, skip ...string) *options {
	o := &options{log: logging.Nop(), skipHeaders: make(map[string]bool)}
	for _, name := range skip {
		o.skipHeaders[http.CanonicalHeaderKey(name)] = true
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the operational logger for the adapter.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithSkipHeaders excludes the named headers from captured requests.
func WithSkipHeaders(names ...string) Option {
	return func(o *options) {
		for _, name := range names {
			o.skipHeaders[http.CanonicalHeaderKey(name)] = true
		}
	}
}

// WithCaptureAllHeaders clears the skip list, including the defaults.
func WithCaptureAllHeaders() Option {
	return func(o *options) {
		o.skipHeaders = make(map[string]bool)
	}
}

// Transport is an http.RoundTripper that answers every request from a
// Dispatcher instead of the network.
type Transport struct {
	dispatcher Dispatcher
	opts       *options
}

// NewTransport creates a Transport for d and activates the
// "http.RoundTripper" profile when d supports profiles.
func NewTransport(d Dispatcher, opts ...Option) *Transport {
	activate(d, ProfileTransport)
	return &Transport{dispatcher: d, opts: newOptions(opts)}
}

// NewClient returns an *http.Client whose requests are all answered by d.
func NewClient(d Dispatcher, opts ...Option) *http.Client {
	return &http.Client{Transport: NewTransport(d, opts...)}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, err
	}

	mreq, err := ToRequest(req, req.URL.String(), t.opts.skipHeaders)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}

	resp, err := t.dispatcher.Dispatch(mreq)
	if err != nil {
		t.opts.log.Debug("round trip failed", "method", mreq.Method, "url", mreq.URL, "error", err)
		return nil, err
	}

	return toHTTPResponse(req, resp)
}

func toHTTPResponse(req *http.Request, resp *mock.Response) (*http.Response, error) {
	data, isJSON, err := httputil.EncodeBody(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding mock response body: %w", err)
	}

	header := make(http.Header, len(resp.Headers)+2)
	for name, value := range resp.Headers {
		header.Set(name, value)
	}
	if isJSON && header.Get("Content-Type") == "" {
		header.Set("Content-Type", "application/json")
	}
	header.Set("Content-Length", strconv.Itoa(len(data)))

	status := fmt.Sprintf("%d", resp.StatusCode)
	if text := http.StatusText(resp.StatusCode); text != "" {
		status += " " + text
	}

	return &http.Response{
		Status:        status,
		StatusCode:    resp.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: int64(len(data)),
		Request:       req,
	}, nil
}

var _ http.RoundTripper = (*Transport)(nil)
