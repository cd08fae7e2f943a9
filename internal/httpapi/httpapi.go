// Package httpapi exposes the placement pipeline over HTTP.
//
// The API is JSON-in, JSON-out:
//
//	POST /v1/placements      run detection and placement on a plan
//	POST /v1/optimizations   run the density pass on a plan's anchors
//	GET  /v1/placements      list recently archived runs
//	GET  /v1/placements/{id} fetch one archived run
//	GET  /healthz            liveness probe
//	GET  /metrics            Prometheus metrics
//
// Placement results are archived in MongoDB when a run store is
// configured; archiving is best effort and never fails a placement.
// Engine and cache metrics are collected through the observability
// hooks, so one server process reports everything its runner does.
package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/anchorplan/anchorplan/pkg/pipeline"
)

const (
	// requestTimeout bounds one placement request end to end.
	requestTimeout = 120 * time.Second

	// shutdownTimeout is how long Run waits for in-flight requests
	// after the context is cancelled.
	shutdownTimeout = 10 * time.Second

	// maxBodyBytes caps request bodies. Large floor plans are a few
	// hundred kilobytes; this leaves generous headroom.
	maxBodyBytes = 16 << 20
)

// Config holds the server dependencies.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Runner executes the detection, placement, and density stages.
	Runner *pipeline.Runner

	// Store archives completed runs. Nil disables archiving; the run
	// endpoints then report the archive as unavailable.
	Store *RunStore

	// Metrics records request and engine metrics. Nil disables the
	// /metrics endpoint.
	Metrics *Metrics

	// Logger receives request logs. Nil discards them.
	Logger *log.Logger
}

// Server wires the HTTP surface of the placement engine.
type Server struct {
	cfg    Config
	router chi.Router
	http   *http.Server
}

// NewServer validates the config and assembles the router.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Runner == nil {
		return nil, fmt.Errorf("httpapi: runner is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	s := &Server{cfg: cfg}
	s.router = s.routes()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the assembled router. Useful for tests and for
// embedding the API under another mux.
func (s *Server) Handler() http.Handler {
	return s.router
}

// routes assembles the chi router with the standard middleware stack.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	if s.cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.cfg.Metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/placements", s.handlePlacement)
		r.Post("/optimizations", s.handleOptimization)
		r.Get("/placements", s.handleListRuns)
		r.Get("/placements/{id}", s.handleGetRun)
	})

	return r
}

// Run serves until the context is cancelled, then drains in-flight
// requests. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("Shutting down", "addr", s.cfg.Addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh // ListenAndServe has returned ErrServerClosed
	return nil
}

// observe logs one line per request and feeds the request metrics. The
// route pattern (not the raw path) is used as the metric label to keep
// cardinality bounded.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		s.cfg.Logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", elapsed.Round(time.Millisecond),
		)
		if s.cfg.Metrics != nil {
			s.cfg.Metrics.ObserveRequest(r.Method, route, ww.Status(), elapsed)
		}
	})
}
