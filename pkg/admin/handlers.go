package admin

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/getmockd/mockhttp/pkg/config"
	"github.com/getmockd/mockhttp/pkg/httputil"
	"github.com/getmockd/mockhttp/pkg/mock"
	"github.com/getmockd/mockhttp/pkg/requestlog"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	State        string `json:"state"`
	Expectations int    `json:"expectations"`
	Uptime       string `json:"uptime"`
}

// ExpectationList is returned by GET /expectations.
type ExpectationList struct {
	Expectations []*mock.Expectation `json:"expectations"`
	Count        int                 `json:"count"`
}

// RequestList is returned by GET /requests.
type RequestList struct {
	Requests []*requestlog.Entry `json:"requests"`
	Count    int                 `json:"count"`
	Total    int                 `json:"total"`
}

// Verification is returned by GET /expectations/{id}/verify.
type Verification struct {
	ExpectationID string     `json:"expectationId"`
	CallCount     int        `json:"callCount"`
	LastCalledAt  *time.Time `json:"lastCalledAt,omitempty"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, HealthResponse{
		Status:       "ok",
		Version:      a.version,
		State:        a.session.State().String(),
		Expectations: len(a.session.Expectations()),
		Uptime:       time.Since(a.startTime).Round(time.Second).String(),
	})
}

func (a *API) handleListExpectations(w http.ResponseWriter, r *http.Request) {
	exps := a.session.Expectations()
	httputil.WriteOK(w, ExpectationList{Expectations: exps, Count: len(exps)})
}

// handleCreateExpectations registers every fixture in the posted document,
// in order. Nothing is registered when the document is invalid.
func (a *API) handleCreateExpectations(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, a.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, http.StatusRequestEntityTooLarge, httputil.ErrCodeInvalidRequest, "request body too large")
			return
		}
		httputil.WriteBadRequest(w, httputil.ErrCodeInvalidRequest, "failed to read request body")
		return
	}

	f, err := config.Parse(data)
	if err != nil {
		writeFixtureError(w, err)
		return
	}
	exps, err := f.ToExpectations()
	if err != nil {
		writeFixtureError(w, err)
		return
	}

	if err := config.CheckAll(a.session, exps); err != nil {
		httputil.WriteBadRequest(w, httputil.ErrCodeValidation, err.Error())
		return
	}

	stored, err := config.RegisterAll(a.session, exps)
	if err != nil {
		a.log.Warn("registering posted fixtures", "registered", len(stored), "error", err)
		httputil.WriteErrorWithDetails(w, http.StatusBadRequest, httputil.ErrCodeValidation, err.Error(),
			ExpectationList{Expectations: stored, Count: len(stored)})
		return
	}

	a.log.Info("registered expectations", "count", len(stored))
	httputil.WriteCreated(w, ExpectationList{Expectations: stored, Count: len(stored)})
}

func writeFixtureError(w http.ResponseWriter, err error) {
	var se *config.SchemaError
	if errors.As(err, &se) {
		httputil.WriteErrorWithDetails(w, http.StatusBadRequest, httputil.ErrCodeValidation, err.Error(), se.Problems)
		return
	}
	httputil.WriteBadRequest(w, httputil.ErrCodeValidation, err.Error())
}

func (a *API) handleReset(w http.ResponseWriter, r *http.Request) {
	a.session.Reset()
	a.log.Info("session reset via admin API")
	httputil.WriteNoContent(w)
}

func (a *API) handleGetExpectation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := a.session.Expectation(id)
	if !ok {
		httputil.WriteNotFound(w, httputil.ErrCodeNotFound, "expectation not found")
		return
	}
	httputil.WriteOK(w, e)
}

func (a *API) handleVerifyExpectation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := a.session.Expectation(id); !ok {
		httputil.WriteNotFound(w, httputil.ErrCodeNotFound, "expectation not found")
		return
	}

	entries := a.session.Requests(&requestlog.Filter{MatchedID: id})
	v := Verification{ExpectationID: id, CallCount: len(entries)}
	if len(entries) > 0 {
		ts := entries[0].Timestamp
		v.LastCalledAt = &ts
	}
	httputil.WriteOK(w, v)
}

func (a *API) handleListRequests(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRequestFilter(r)
	if err != nil {
		httputil.WriteBadRequest(w, httputil.ErrCodeInvalidRequest, err.Error())
		return
	}

	entries := a.session.Requests(filter)
	httputil.WriteOK(w, RequestList{
		Requests: entries,
		Count:    len(entries),
		Total:    a.session.Journal().Count(),
	})
}

func (a *API) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	entry := a.session.Journal().Get(chi.URLParam(r, "id"))
	if entry == nil {
		httputil.WriteNotFound(w, httputil.ErrCodeNotFound, "request not found")
		return
	}
	httputil.WriteOK(w, entry)
}

func (a *API) handleClearRequests(w http.ResponseWriter, r *http.Request) {
	a.session.Journal().Clear()
	httputil.WriteNoContent(w)
}

func parseRequestFilter(r *http.Request) (*requestlog.Filter, error) {
	q := r.URL.Query()
	filter := &requestlog.Filter{
		Method:    q.Get("method"),
		URL:       q.Get("url"),
		MatchedID: q.Get("expectation"),
	}

	if v := q.Get("matched"); v != "" {
		matched, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("matched must be true or false")
		}
		filter.Matched = &matched
	}
	if v := q.Get("limit"); v != "" {
		n, ok := parsePositiveInt(v)
		if !ok {
			return nil, errors.New("limit must be a positive integer")
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, ok := parseNonNegativeInt(v)
		if !ok {
			return nil, errors.New("offset must be a non-negative integer")
		}
		filter.Offset = n
	}
	return filter, nil
}

// parsePositiveInt returns a parsed int only when the value is a valid positive integer.
func parsePositiveInt(v string) (int, bool) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// parseNonNegativeInt returns a parsed int only when the value is a valid non-negative integer.
func parseNonNegativeInt(v string) (int, bool) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
