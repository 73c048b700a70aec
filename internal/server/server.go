// Package server exposes the family tree, settings and profile over HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/thenoetrevino/lineage/internal/app"
	"github.com/thenoetrevino/lineage/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server serves the JSON API, the static site and the event stream
type Server struct {
	cfg          config.ServerConfig
	defaultUser  string
	app          *app.App
	logger       *slog.Logger
	metrics      *Metrics
	shutdownOnce sync.Once
}

// New creates a server for cfg backed by a
func New(cfg *config.Config, a *app.App, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:         cfg.Server,
		defaultUser: cfg.DefaultUser,
		app:         a,
		logger:      logger,
		metrics:     NewMetrics(),
	}
}

// Metrics returns the server statistics
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler builds the router
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(s.requestLogger)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", UserHeader},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.Get("/", s.serveIndex)

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/signin", cannedMessage("Sign in endpoint"))
		r.Post("/auth/signup", cannedMessage("Sign up endpoint"))
		r.Get("/dashboard", dashboard)
		r.Post("/scanner", cannedMessage("Scanner endpoint"))
		r.Get("/notifications", notifications)
		r.Get("/metrics", s.getMetrics)

		r.Group(func(r chi.Router) {
			r.Use(s.identify)

			r.Route("/tree", func(r chi.Router) {
				r.Get("/", s.getTree)
				r.Get("/stats", s.getStats)
				r.Post("/expand", s.expand)
				r.Post("/collapse", s.collapse)
			})

			r.Route("/members", func(r chi.Router) {
				r.Get("/", s.listMembers)
				r.Post("/", s.addMember)
				r.Get("/{name}", s.getMember)
				r.Put("/{name}", s.editMember)
				r.Delete("/{name}", s.deleteMember)
			})

			r.Get("/settings", s.getSettings)
			r.Put("/settings", s.putSettings)
			r.Get("/settings/export", s.exportSettings)

			r.Get("/profile", s.getProfile)
			r.Put("/profile", s.putProfile)

			r.Get("/events", s.streamEvents)
		})
	})

	router.Handle("/*", http.FileServer(http.Dir(s.cfg.StaticDir)))

	return router
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve handles connections from listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.logger.Info("server listening", "addr", listener.Addr().String(), "static_dir", s.cfg.StaticDir)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	var err error
	s.shutdownOnce.Do(func() {
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(shutdownCtx)
	})
	return err
}

func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.cfg.StaticDir, "index.html"))
}

func (s *Server) getMetrics(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, s.metrics.GetSnapshot())
}

// Stub routes keep the payloads the web client already expects

func cannedMessage(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": message})
	}
}

func dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": "Dashboard data"})
}

func notifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "notifications": []any{}})
}
