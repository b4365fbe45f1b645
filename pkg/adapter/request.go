package adapter

import (
	"io"
	"net/http"

	"github.com/ohler55/ojg/oj"

	"github.com/getmockd/mockhttp/pkg/mock"
)

// Dispatcher resolves normalized requests. *engine.Session implements it.
type Dispatcher interface {
	Dispatch(req mock.Request) (*mock.Response, error)
}

// activator is implemented by dispatchers that track interception profiles.
type activator interface {
	Activate(profile string)
}

func activate(d Dispatcher, profile string) {
	if a, ok := d.(activator); ok {
		a.Activate(profile)
	}
}

// ToRequest converts an *http.Request into a mock.Request using rawURL as
// the request URL. The request body is consumed and closed.
func ToRequest(r *http.Request, rawURL string, skipHeaders map[string]bool) (mock.Request, error) {
	body, err := readBody(r.Body)
	if err != nil {
		return mock.Request{}, err
	}
	return mock.Request{
		URL:     rawURL,
		Method:  r.Method,
		Headers: captureHeaders(r.Header, skipHeaders),
		Body:    body,
	}, nil
}

// captureHeaders keeps the first value of each header not in skip.
func captureHeaders(h http.Header, skip map[string]bool) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		if len(values) == 0 || skip[http.CanonicalHeaderKey(name)] {
			continue
		}
		out[name] = values[0]
	}
	return out
}

// readBody returns an absent body for nil or empty payloads, the parsed
// JSON value when the payload parses, and the raw text otherwise.
func readBody(rc io.ReadCloser) (mock.Body, error) {
	if rc == nil || rc == http.NoBody {
		return mock.Body{}, nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return mock.Body{}, err
	}
	return ParseBody(data), nil
}

// ParseBody applies the body conversion rule to raw bytes.
func ParseBody(data []byte) mock.Body {
	if len(data) == 0 {
		return mock.Body{}
	}
	v, err := oj.Parse(data)
	if err != nil {
		return mock.BodyOf(string(data))
	}
	return mock.BodyOf(v)
}
