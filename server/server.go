// Package server exposes the ledger engine's query port over HTTP for the
// dashboard UI.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/alphazella/zella/ledger"
	"github.com/alphazella/zella/store"
)

// Server owns one Engine instance for the life of the process, constructed at
// startup from the persistence port. There is no ambient global ledger;
// handlers reach the engine through the server.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	engine *ledger.Engine
	store  store.Store

	// mu serializes engine and store access. net/http runs every request on
	// its own goroutine and the engine is not safe for concurrent use, so
	// mutating handlers take the write lock around mutate-plus-persist and
	// query handlers take the read lock.
	mu sync.RWMutex
}

// Config holds server construction parameters.
type Config struct {
	Log    zerolog.Logger
	Engine *ledger.Engine
	Store  store.Store
	Port   int
}

// New creates the HTTP server and mounts all routes.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		engine: cfg.Engine,
		store:  cfg.Store,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/trades", s.handleListTrades)
		r.Post("/trades", s.handleAddTrade)
		r.Delete("/trades/{id}", s.handleDeleteTrade)
		r.Post("/import", s.handleImport)
		r.Get("/summary", s.handleSummary)
		r.Get("/equity", s.handleEquity)
		r.Get("/daily", s.handleDaily)
		r.Get("/groups/{dimension}", s.handleGroups)
		r.Get("/export", s.handleExport)
	})

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// Router exposes the mux, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP until the server is shut down.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// persist writes the current ledger through the store after a mutation.
// Failure to save is logged and surfaced; the in-memory ledger stays valid.
func (s *Server) persist() error {
	if err := s.store.Save(s.engine.Records()); err != nil {
		s.log.Error().Err(err).Msg("save ledger")
		return err
	}
	return nil
}
