// Package server provides the HTTP API for Bogoseo.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/bogoseo/internal/config"
	"github.com/hyperjump/bogoseo/internal/ingest"
	"github.com/hyperjump/bogoseo/internal/registry"
	"github.com/hyperjump/bogoseo/internal/synth"
	"github.com/hyperjump/bogoseo/internal/watcher"
)

// WatchService manages watched drop-folder roots at runtime.
type WatchService interface {
	Directories() []string
	AddDirectory(path string, syncExisting bool) error
	RemoveDirectory(path string) error
}

var _ WatchService = (*watcher.Watcher)(nil)

// Server is the HTTP server for the Bogoseo API.
type Server struct {
	store       registry.Store
	ingestor    *ingest.Ingestor
	synthesizer *synth.Synthesizer
	config      *config.ServerConfig
	logger      *zap.Logger
	server      *http.Server

	watch       WatchService
	configPath  string
	appConfig   *config.Config
	appConfigMu sync.Mutex
}

// NewServer creates a server with the given dependencies. watch may be nil
// when drop-folder ingestion is disabled; configPath and appConfig enable
// persisting watch-directory changes.
func NewServer(
	store registry.Store,
	ingestor *ingest.Ingestor,
	synthesizer *synth.Synthesizer,
	cfg *config.ServerConfig,
	logger *zap.Logger,
	watch WatchService,
	configPath string,
	appConfig *config.Config,
) *Server {
	return &Server{
		store:       store,
		ingestor:    ingestor,
		synthesizer: synthesizer,
		config:      cfg,
		logger:      logger,
		watch:       watch,
		configPath:  configPath,
		appConfig:   appConfig,
	}
}

// router builds the chi router with all API routes.
func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/templates", s.handleUploadTemplate)
	r.Get("/api/v1/templates", s.handleListTemplates)
	r.Get("/api/v1/templates/{id}", s.handleGetTemplate)
	r.Delete("/api/v1/templates/{id}", s.handleDeleteTemplate)
	r.Post("/api/v1/reports", s.handleGenerateReport)
	r.Get("/api/v1/reports", s.handleListReports)
	r.Get("/api/v1/reports/{id}", s.handleGetReport)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/api/v1/watch/directories", s.handleWatchDirectoriesList)
	r.Post("/api/v1/watch/directories", s.handleWatchDirectoriesAdd)
	r.Delete("/api/v1/watch/directories", s.handleWatchDirectoriesRemove)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
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
