package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/getmockd/mockhttp/internal/id"
	"github.com/getmockd/mockhttp/internal/matching"
	"github.com/getmockd/mockhttp/internal/storage"
	"github.com/getmockd/mockhttp/pkg/logging"
	"github.com/getmockd/mockhttp/pkg/mock"
	"github.com/getmockd/mockhttp/pkg/requestlog"
)

// State is the lifecycle state of a Session.
type State int

const (
	// StateUninitialized is the state of a new or reset session.
	StateUninitialized State = iota
	// StateActive is entered on the first registration or activation.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session owns one expectation registry and resolves intercepted requests
// against it. A Session is safe for concurrent use, but tests are expected
// to isolate themselves by calling Reset between cases.
type Session struct {
	registry storage.Registry
	journal  requestlog.Store
	log      *slog.Logger
	now      func() time.Time
	newID    func() string

	mu       sync.RWMutex
	state    State
	profiles []string
}

// Option is a functional option for configuring a Session.
type Option func(*Session)

// WithLogger sets the operational logger for the session.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRegistry replaces the default in-memory registry.
func WithRegistry(r storage.Registry) Option {
	return func(s *Session) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithJournal replaces the default in-memory request journal.
func WithJournal(j requestlog.Store) Option {
	return func(s *Session) {
		if j != nil {
			s.journal = j
		}
	}
}

// WithClock sets the time source used for CreatedAt and journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the function used to assign expectation IDs.
func WithIDGenerator(gen func() string) Option {
	return func(s *Session) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New creates an empty, uninitialized Session.
func New(opts ...Option) *Session {
	s := &Session{
		registry: storage.NewInMemoryRegistry(),
		journal:  requestlog.NewMemoryStore(requestlog.DefaultCapacity),
		log:      logging.Nop(),
		now:      time.Now,
		newID:    func() string { return id.Prefixed("exp") },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates e and appends a copy of it to the registry. The
// returned expectation carries the assigned ID and sequence number; e itself
// is not modified. The method is upper-cased and an exact body is stored in
// canonical JSON form.
func (s *Session) Register(e *mock.Expectation) (*mock.Expectation, error) {
	c, err := prepare(e)
	if err != nil {
		return nil, err
	}

	if c.ID == "" {
		c.ID = s.newID()
	}
	c.CreatedAt = s.now()

	stored := s.registry.Append(c)

	s.mu.Lock()
	s.state = StateActive
	s.mu.Unlock()

	s.log.Debug("expectation registered",
		"id", stored.ID,
		"method", stored.Method,
		"url", stored.URL,
		"headers", stored.Headers.Kind.String(),
		"body", stored.Body.Kind.String(),
		"sequence", stored.Sequence,
	)
	return stored, nil
}

// Check reports the error Register would return for e without
// registering anything.
func (s *Session) Check(e *mock.Expectation) error {
	_, err := prepare(e)
	return err
}

// prepare returns the validated, normalized copy of e that Register stores.
func prepare(e *mock.Expectation) (*mock.Expectation, error) {
	if e == nil {
		return nil, &mock.ValidationError{Field: "expectation", Message: "expectation is nil", Err: mock.ErrInvalidExpectation}
	}

	c := e.Clone()
	c.Method = mock.NormalizeMethod(c.Method)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.Body.Kind == mock.BodyExact {
		normalized, err := matching.Normalize(c.Body.Value)
		if err != nil {
			return nil, bodyError("body", mock.ErrInvalidExpectation, err)
		}
		c.Body.Value = normalized
	}
	if c.Response.Body.Present() {
		if _, err := matching.Normalize(c.Response.Body.Value()); err != nil {
			return nil, bodyError("response.body", mock.ErrInvalidExpectation, err)
		}
	}
	return c, nil
}

// Dispatch resolves a request to the response of the most recently
// registered expectation that accepts it. When none does, the error is a
// *mock.NoMatchError whose message is "Please mock endpoint: " + URL. A
// request body that cannot be represented as JSON is rejected with a
// *mock.ValidationError wrapping mock.ErrInvalidRequest.
func (s *Session) Dispatch(req mock.Request) (*mock.Response, error) {
	r := req.Normalize()

	entry := &requestlog.Entry{
		Timestamp: s.now(),
		Method:    r.Method,
		URL:       r.URL,
		Headers:   r.Headers,
	}

	if r.Body.Present() {
		normalized, err := matching.Normalize(r.Body.Value())
		if err != nil {
			verr := bodyError("body", mock.ErrInvalidRequest, err)
			entry.Error = verr.Error()
			s.journal.Log(entry)
			s.log.Warn("request rejected", "method", r.Method, "url", r.URL, "error", verr)
			return nil, verr
		}
		r.Body = mock.BodyOf(normalized)
	}
	entry.Body = r.Body

	expectations := s.registry.List()
	winner, ok := matching.Select(r, expectations)
	if !ok {
		misses := matching.NearMisses(r, expectations)
		nmErr := &mock.NoMatchError{URL: r.URL, Method: r.Method, NearMisses: misses}

		entry.Error = nmErr.Error()
		entry.NearMisses = requestlog.NearMissInfos(misses)
		s.journal.Log(entry)

		s.log.Warn("request not mocked",
			"method", r.Method,
			"url", r.URL,
			"nearMisses", len(misses),
		)
		return nil, nmErr
	}

	resp := mock.Render(winner.Response)

	entry.Matched = true
	entry.MatchedID = winner.ID
	entry.StatusCode = resp.StatusCode
	s.journal.Log(entry)

	s.log.Debug("request matched",
		"method", r.Method,
		"url", r.URL,
		"expectation", winner.ID,
		"sequence", winner.Sequence,
		"status", resp.StatusCode,
	)
	return &resp, nil
}

// Reset discards every expectation, restarts sequence numbering, clears the
// journal and returns the session to StateUninitialized. Calling it again
// is a no-op.
func (s *Session) Reset() {
	s.registry.Clear()
	s.journal.Clear()

	s.mu.Lock()
	s.state = StateUninitialized
	s.profiles = nil
	s.mu.Unlock()

	s.log.Debug("session reset")
}

// Activate marks the session active for the named interception profile,
// e.g. the adapter or client being intercepted. Profiles are recorded for
// diagnostics only and never affect matching.
func (s *Session) Activate(profile string) {
	s.mu.Lock()
	s.state = StateActive
	if profile != "" && !slices.Contains(s.profiles, profile) {
		s.profiles = append(s.profiles, profile)
	}
	s.mu.Unlock()

	s.log.Debug("session activated", "profile", profile)
}

// Profiles returns the profiles passed to Activate since the last Reset.
func (s *Session) Profiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.profiles)
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Expectations returns copies of the registered expectations in
// registration order.
func (s *Session) Expectations() []*mock.Expectation {
	return s.registry.List()
}

// Expectation returns a copy of the expectation with the given ID.
func (s *Session) Expectation(id string) (*mock.Expectation, bool) {
	e := s.registry.Get(id)
	return e, e != nil
}

// Requests returns the journal entries recorded since the last Reset,
// newest first, narrowed by filter when it is non-nil.
func (s *Session) Requests(filter *requestlog.Filter) []*requestlog.Entry {
	return s.journal.List(filter)
}

// Journal exposes the underlying request journal.
func (s *Session) Journal() requestlog.Store {
	return s.journal
}

func bodyError(field string, kind, cause error) *mock.ValidationError {
	return &mock.ValidationError{
		Field:   field,
		Message: cause.Error(),
		Err:     fmt.Errorf("%w: %w", kind, cause),
	}
}
