// Package server provides the HTTP API for cvpress.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/inkfold/cvpress/internal/config"
	"github.com/inkfold/cvpress/internal/extract"
	"github.com/inkfold/cvpress/internal/generate"
	"github.com/inkfold/cvpress/internal/pageindex"
	"github.com/inkfold/cvpress/internal/storage"
)

// Server is the HTTP server for the cvpress API.
type Server struct {
	generator *generate.Generator
	store     storage.Store
	index     pageindex.Index
	extractor *extract.Extractor
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	gen *generate.Generator,
	store storage.Store,
	index pageindex.Index,
	extractor *extract.Extractor,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		generator: gen,
		store:     store,
		index:     index,
		extractor: extractor,
		config:    cfg,
		logger:    logger,
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/uploads", s.handleUpload)
	r.Post("/api/v1/generate", s.handleGenerate)
	r.Get("/api/v1/pages", s.handleListPages)
	r.Get("/api/v1/pages/{id}", s.handleGetPage)
	r.Get("/api/v1/pages/{id}/html", s.handleGetPageHTML)
	r.Delete("/api/v1/pages/{id}", s.handleDeletePage)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
