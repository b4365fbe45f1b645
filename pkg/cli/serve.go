package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/getmockd/mockhttp/pkg/adapter"
	"github.com/getmockd/mockhttp/pkg/admin"
	"github.com/getmockd/mockhttp/pkg/engine"
	"github.com/getmockd/mockhttp/pkg/requestlog"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 10 * time.Second

// DefaultAdminPrefix is where the admin API is mounted by serve.
const DefaultAdminPrefix = "/__mockhttp"

type serveFlags struct {
	addr        string
	baseURL     string
	adminPrefix string
	noAdmin     bool
	captureAll  bool
	allowEmpty  bool
	tail        bool
}

func newServeCommand(a *app) *cobra.Command {
	var sf serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve fixtures over HTTP",
		Long: `Serve answers every HTTP request with the response of the most recently
registered matching expectation. Unmatched requests receive 501 with the
"Please mock endpoint" message and near misses as JSON.

The URL matched against expectations is --base-url followed by the request
URI, so fixtures can keep production URLs. The admin API is mounted under
` + DefaultAdminPrefix + ` unless --no-admin is set.`,
		Example: `  mockhttp serve -f 'fixtures/**/*.yaml' --addr :8080 --base-url https://api.example.com

  # Start empty and register expectations through the admin API
  mockhttp serve --allow-empty
  curl -X POST localhost:8080/__mockhttp/expectations --data-binary @users.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := engine.New(engine.WithLogger(a.log))
			patterns, err := a.fixturePatterns(nil)
			switch {
			case errors.Is(err, errNoFixtures) && sf.allowEmpty:
				a.log.Info("starting without fixtures")
			case err != nil:
				return err
			default:
				s, _, err = a.loadSession(patterns)
				if err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", sf.addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", sf.addr, err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "mockhttp serving %d expectations on http://%s\n",
				len(s.Expectations()), ln.Addr())

			if ss, ok := s.Journal().(requestlog.SubscribableStore); ok && sf.tail {
				ch, unsubscribe := ss.Subscribe()
				done := make(chan struct{})
				go func() {
					defer close(done)
					tailRequests(w, ch)
				}()
				defer func() {
					unsubscribe()
					<-done
				}()
			}

			return runServer(ctx, ln, newRouter(s, sf, a.log), a.log)
		},
	}

	f := cmd.Flags()
	f.StringVar(&sf.addr, "addr", ":8080", "Listen address")
	f.StringVar(&sf.baseURL, "base-url", "", "URL prefix prepended to the request URI before matching")
	f.StringVar(&sf.adminPrefix, "admin-prefix", DefaultAdminPrefix, "Path prefix for the admin API")
	f.BoolVar(&sf.noAdmin, "no-admin", false, "Disable the admin API")
	f.BoolVar(&sf.captureAll, "capture-all-headers", false, "Match on every request header, including User-Agent and Accept-Encoding")
	f.BoolVar(&sf.allowEmpty, "allow-empty", false, "Start without fixtures")
	f.BoolVar(&sf.tail, "tail", false, "Print one line per dispatched request")

	return cmd
}

// newRouter mounts the admin API and routes everything else to the session.
func newRouter(s *engine.Session, sf serveFlags, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	if !sf.noAdmin && sf.adminPrefix != "" {
		r.Mount(sf.adminPrefix, admin.New(s, admin.WithLogger(log), admin.WithVersion(Version)))
	}

	opts := []adapter.Option{adapter.WithLogger(log)}
	if sf.captureAll {
		opts = append(opts, adapter.WithCaptureAllHeaders())
	}
	r.Handle("/*", adapter.NewHandler(s, sf.baseURL, opts...))
	return r
}

// tailRequests prints journal entries from ch until it is closed.
func tailRequests(w io.Writer, ch requestlog.Subscriber) {
	for e := range ch {
		outcome := e.MatchedID
		if !e.Matched {
			outcome = "not mocked"
		}
		fmt.Fprintf(w, "%s %-6s %s -> %s\n", e.Timestamp.Format(time.TimeOnly), e.Method, e.URL, outcome)
	}
}

// runServer serves h on ln until ctx is done, then shuts down gracefully.
func runServer(ctx context.Context, ln net.Listener, h http.Handler, log *slog.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	log.Info("server started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
