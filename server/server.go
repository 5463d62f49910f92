// Package server exposes computed returns over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/etnz/returns/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Source provides the inputs of a report.
type Source interface {
	Inputs(ctx context.Context) ([]returns.Transaction, []returns.PricePoint, error)
}

// Config holds server configuration.
type Config struct {
	Listen   string
	Log      zerolog.Logger
	Source   Source
	Workers  int
	Currency string
}

// Server recomputes reports from its source on every request.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	source Source
	engine *returns.Engine
	render renderer.Options
}

// New creates a new HTTP server.
func New(cfg Config) *Server {
	log := cfg.Log.With().Str("component", "server").Logger()
	s := &Server{
		router: chi.NewRouter(),
		log:    log,
		source: cfg.Source,
		engine: returns.NewEngine(cfg.Log, cfg.Workers),
		render: renderer.Options{Currency: cfg.Currency},
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Listen,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/instruments", s.handleInstruments)
		r.Get("/instruments/{instrument}/records", s.handleRecords)
		r.Get("/instruments/{instrument}/flows", s.handleFlows)
		r.Get("/portfolio", s.handlePortfolio)
		r.Get("/returns", s.handleReturns)
	})
	s.router.Get("/report", s.handleReport)
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// options reads the report options from the query: through=YYYY-MM-DD and active=true.
func options(r *http.Request) (returns.Options, error) {
	var opts returns.Options
	q := r.URL.Query()
	if v := q.Get("through"); v != "" {
		on, err := date.Parse(v)
		if err != nil {
			return opts, err
		}
		opts.Through = on
	}
	if v := q.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid active %q: %w", v, err)
		}
		opts.ActiveOnly = active
	}
	return opts, nil
}

// compute builds the report requested by r, writing the error response itself when it fails.
func (s *Server) compute(w http.ResponseWriter, r *http.Request) (*returns.Report, bool) {
	opts, err := options(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	txs, prices, err := s.source.Inputs(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load inputs")
		http.Error(w, "Failed to load inputs", http.StatusInternalServerError)
		return nil, false
	}
	report, err := s.engine.Compute(r.Context(), txs, prices, opts)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to compute report")
		http.Error(w, "Failed to compute report", http.StatusInternalServerError)
		return nil, false
	}
	return report, true
}

func (s *Server) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
