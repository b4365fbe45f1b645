package admin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/getmockd/mockhttp/pkg/engine"
	"github.com/getmockd/mockhttp/pkg/logging"
)

// DefaultMaxBodyBytes limits the size of fixture documents posted to the API.
const DefaultMaxBodyBytes = 10 << 20

// API serves the admin endpoints for one session.
type API struct {
	session      *engine.Session
	log          *slog.Logger
	version      string
	startTime    time.Time
	maxBodyBytes int64
	router       chi.Router
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(v string) Option {
	return func(a *API) {
		a.version = v
	}
}

// WithMaxBodyBytes limits posted fixture documents. Non-positive values are
// ignored.
func WithMaxBodyBytes(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBodyBytes = n
		}
	}
}

// New creates the admin API for session.
func New(session *engine.Session, opts ...Option) *API {
	a := &API{
		session:      session,
		log:          logging.Nop(),
		version:      "dev",
		startTime:    time.Now(),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.router = a.routes()
	return a
}

func (a *API) routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", a.handleHealth)

	r.Route("/expectations", func(r chi.Router) {
		r.Get("/", a.handleListExpectations)
		r.Post("/", a.handleCreateExpectations)
		r.Delete("/", a.handleReset)
		r.Get("/{id}", a.handleGetExpectation)
		r.Get("/{id}/verify", a.handleVerifyExpectation)
	})

	r.Route("/requests", func(r chi.Router) {
		r.Get("/", a.handleListRequests)
		r.Delete("/", a.handleClearRequests)
		r.Get("/{id}", a.handleGetRequest)
	})

	return r
}

// ServeHTTP implements http.Handler.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
