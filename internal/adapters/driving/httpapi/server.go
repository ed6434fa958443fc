// Package httpapi exposes the retrieval pipeline over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/revenue-labs/taxsearch/internal/core/ports/driving"
)

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("httpapi: retrieval service is required")

// ChunkCounter reports the size of the loaded corpus for health checks.
type ChunkCounter func(ctx context.Context) (int, error)

// Server serves the JSON search API.
type Server struct {
	retrieval   driving.RetrievalService
	countChunks ChunkCounter
	validate    *validator.Validate
	router      chi.Router
}

// Option configures the server.
type Option func(*Server)

// WithChunkCounter makes /healthz report the corpus chunk count.
func WithChunkCounter(count ChunkCounter) Option {
	return func(s *Server) {
		s.countChunks = count
	}
}

// NewServer creates an HTTP API server backed by the given retrieval service.
func NewServer(retrieval driving.RetrievalService, opts ...Option) (*Server, error) {
	if retrieval == nil {
		return nil, ErrMissingRetrievalService
	}

	s := &Server{
		retrieval: retrieval,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()

	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Post("/search", s.handleSearch)
	r.Get("/search/{query}", s.handleSearchPath)

	return r
}

// ServeHTTP implements http.Handler, so the server can be mounted or
// exercised directly in tests via httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
