// Package server provides the HTTP file server with markdown rendering.
package server

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mrepper/markdown-server/internal/logging"
	"github.com/mrepper/markdown-server/internal/render"
)

// Config holds server configuration.
type Config struct {
	Bind        string
	Port        int
	Root        string
	CacheDir    string
	ReadTimeout time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Bind:        "127.0.0.1",
		Port:        9000,
		ReadTimeout: 30 * time.Second,
	}
}

// Server is the HTTP server.
type Server struct {
	config   *Config
	router   *chi.Mux
	httpSrv  *http.Server
	resolver *Resolver
	renderer *render.Renderer
}

// New creates a new Server instance.
func New(cfg *Config, renderer *render.Renderer) *Server {
	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		resolver: &Resolver{
			Root:      cfg.Root,
			AssetRoot: cfg.CacheDir,
		},
		renderer: renderer,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures middleware for the server.
func (s *Server) setupMiddleware() {
	// Request ID
	s.router.Use(middleware.RequestID)

	// Logging
	s.router.Use(s.accessLog)

	// Recover from panics
	s.router.Use(middleware.Recoverer)
}

// setupRoutes configures all routes. Every path goes through the same
// pipeline; the resolver decides which root it serves from.
func (s *Server) setupRoutes() {
	s.router.Get("/*", s.serveFile)
	s.router.Head("/*", s.serveFile)
}

// accessLog logs one line per completed request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Bind, strconv.Itoa(s.config.Port))
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:        s.Addr(),
		Handler:     s.router,
		ReadTimeout: s.config.ReadTimeout,
	}

	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
