// Package server exposes the chart pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                  liveness and version
//	POST /v1/render?format=svg     chart file in, artifact out
//	POST /v1/layout                chart file in, layout document out
//
// Request bodies are chart files, TOML or JSON. The format is taken from the
// Content-Type, then from ?input=, and is otherwise sniffed: a body starting
// with '{' is JSON. Layout switches (kind, area, stacked, shared_scale) can be
// given as query parameters and override the file like the CLI flags do.
//
// Every response carries an X-Render-ID; render and layout responses also
// carry X-Cache: hit|miss.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/echart/pkg/pipeline"
)

// Defaults for Config.
const (
	DefaultAddr          = ":8080"
	DefaultMaxBodyBytes  = 1 << 20
	DefaultRenderTimeout = 30 * time.Second
)

// Config configures the server.
type Config struct {
	Addr          string
	MaxBodyBytes  int64
	RenderTimeout time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.RenderTimeout <= 0 {
		c.RenderTimeout = DefaultRenderTimeout
	}
}

// Server serves chart rendering requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
	router chi.Router
}

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger, cfg: cfg}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(renderID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.RenderTimeout))
		r.Post("/render", s.handleRender)
		r.Post("/layout", s.handleLayout)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", s.cfg.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
