// Package server implements the specbox HTTP API.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/figures                       store a figure, returns {id}
//	GET    /v1/figures                       list stored figures
//	GET    /v1/figures/{id}                  fetch a figure
//	PUT    /v1/figures/{id}                  replace a figure
//	DELETE /v1/figures/{id}                  delete a figure
//	GET    /v1/figures/{id}/render.{format}  render as svg, png or json
//	POST   /v1/figures/{id}/hover            pick labels at {x, y, mode}
//	POST   /v1/figures/{id}/click            apply the reveal-outliers click
//
// Every response carries an X-Request-ID header.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/specbox/pkg/pipeline"
	"github.com/matzehuels/specbox/pkg/store"
)

// Default server settings.
const (
	DefaultAddr          = ":8080"
	DefaultRenderTimeout = 30 * time.Second
	shutdownTimeout      = 10 * time.Second
)

// Config configures a [Server].
type Config struct {
	Addr   string
	Store  store.Store
	Runner *pipeline.Runner
	Logger *log.Logger
	// RenderTimeout bounds each request.
	RenderTimeout time.Duration
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil Store keeps figures in memory; a nil Runner
// renders without a cache.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = DefaultRenderTimeout
	}
	s := &Server{cfg: cfg, logger: cfg.Logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RenderTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/figures", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleUpdate)
			r.Delete("/", s.handleDelete)
			r.Get("/render.{format}", s.handleRender)
			r.Post("/hover", s.handleHover)
			r.Post("/click", s.handleClick)
		})
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
