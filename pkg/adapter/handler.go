package adapter

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getmockd/mockhttp/pkg/httputil"
	"github.com/getmockd/mockhttp/pkg/mock"
)

// ProfileHandler is the profile name NewHandler activates.
const ProfileHandler = "http.Handler"

// DefaultHandlerSkipHeaders are headers net/http clients add on their own.
// Handler leaves them out of captured requests so that header predicates
// only see what the calling code set.
var DefaultHandlerSkipHeaders = []string{"User-Agent", "Accept-Encoding", "Connection"}

// Handler is an http.Handler that answers every request from a Dispatcher.
//
// The request URL is BaseURL followed by the request URI (path and query),
// so an expectation registered for "https://api.example.com/users" is hit by
// a call to an httptest server created with that BaseURL.
type Handler struct {
	dispatcher Dispatcher
	baseURL    string
	opts       *options
}

// NewHandler creates a Handler for d. baseURL may be empty, in which case
// request URLs are just the request URI.
func NewHandler(d Dispatcher, baseURL string, opts ...Option) *Handler {
	activate(d, ProfileHandler)
	return &Handler{
		dispatcher: d,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		opts:       newOptions(opts, DefaultHandlerSkipHeaders...),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	mreq, err := ToRequest(r, h.baseURL+r.URL.RequestURI(), h.opts.skipHeaders)
	if err != nil {
		httputil.WriteBadRequest(w, httputil.ErrCodeInvalidRequest, err.Error())
		return
	}

	resp, err := h.dispatcher.Dispatch(mreq)
	if err != nil {
		var nm *mock.NoMatchError
		var verr *mock.ValidationError
		switch {
		case errors.As(err, &nm):
			httputil.WriteNotMocked(w, nm)
		case errors.As(err, &verr):
			httputil.WriteErrorWithDetails(w, http.StatusBadRequest, httputil.ErrCodeInvalidRequest, verr.Error(), map[string]string{"field": verr.Field})
		default:
			httputil.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error())
		}
		return
	}

	if err := httputil.WriteMockResponse(w, resp); err != nil {
		h.opts.log.Error("failed to write mock response", "url", mreq.URL, "error", err)
	}
}

var _ http.Handler = (*Handler)(nil)
