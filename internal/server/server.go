// Package server assembles the HTTP surface of the social API: the GraphQL
// endpoint, the playground, health and metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/graphql-go/graphql"

	"github.com/ClementRollin/LinkedIn-GraphQL/graph"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/auth"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/config"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/metrics"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server serves the API until its context is cancelled.
type Server struct {
	cfg     *config.Config
	srv     *http.Server
	logger  *slog.Logger
	version string
}

// Options are the dependencies of a Server.
type Options struct {
	Config  *config.Config
	Schema  *graphql.Schema
	DB      Pinger
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Version string
}

// New builds the router and the underlying http.Server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:     opts.Config,
		logger:  logger,
		version: opts.Version,
	}
	s.srv = &http.Server{
		Addr:              ":" + opts.Config.Port,
		Handler:           s.routes(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) routes(opts Options) http.Handler {
	mux := http.NewServeMux()

	if s.cfg.Playground {
		mux.Handle("/", playground.Handler("Social GraphQL Playground", "/graphql"))
	}
	mux.Handle("/graphql", auth.Middleware(s.cfg)(graph.NewHandler(opts.Schema)))
	mux.Handle("/health", healthHandler(opts.DB, opts.Version))
	if opts.Metrics != nil {
		mux.Handle("/metrics", opts.Metrics.Handler())
	}

	return chain(mux, requestID, tracing, accessLog(s.logger, opts.Metrics))
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Error   string `json:"error,omitempty"`
}

// healthHandler reports "ok" when storage answers a ping and "degraded"
// with 503 otherwise.
func healthHandler(db Pinger, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Version: version}
		code := http.StatusOK

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				resp.Status = "degraded"
				resp.Error = err.Error()
				code = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// Run listens until ctx is cancelled, then drains in-flight requests for up
// to the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("social API listening", slog.String("addr", ln.Addr().String()), slog.String("version", s.version))
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", slog.Duration("timeout", s.cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
