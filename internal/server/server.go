// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: main opens the store and hands it in, and
// New assembles services → handlers → routes around it.
//
//	repository.Store → UserService, ExerciseService → handlers → chi routes
//
// Keeping the wiring here (instead of in main) lets tests build the full
// router with an in-memory store and drive it through httptest.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/exercise-tracker/internal/handler"
	"github.com/sakif/exercise-tracker/internal/middleware"
	"github.com/sakif/exercise-tracker/internal/repository"
	"github.com/sakif/exercise-tracker/internal/service"
	"github.com/sakif/exercise-tracker/internal/web"
)

// DefaultShutdownTimeout bounds how long in-flight requests get to finish.
const DefaultShutdownTimeout = 30 * time.Second

// Config holds server configuration.
type Config struct {
	Port int

	// PublicDir and ViewsDir override the embedded assets with a directory
	// on disk. Empty means use the embedded copy.
	PublicDir string
	ViewsDir  string

	ShutdownTimeout time.Duration
}

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the store: Start closes it after the HTTP server has
// drained, so no request can hit a closed store.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	store  repository.Store
}

// New creates a Server around an already opened store.
func New(cfg Config, store repository.Store, logger *slog.Logger) (*Server, error) {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler returns the router, for tests and for embedding in another server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /                          → landing page (HTML)
// GET    /*                         → static assets
// POST   /api/users                 → create user
// GET    /api/users                 → list users
// POST   /api/users/{id}/exercises  → add exercise
// GET    /api/users/{id}/logs       → exercise log
//
// MIDDLEWARE ORDER MATTERS:
// RequestID runs before Logger so the log line carries the ID. Recoverer
// sits inside Logger so a recovered panic is still logged as a 500.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	// === Page and static assets ===
	page, err := handler.NewPageHandler(s.assets(s.config.ViewsDir, web.Views()), s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	s.router.Get("/", page.HandleIndex)
	s.router.Handle("/*", http.FileServerFS(s.assets(s.config.PublicDir, web.Public())))

	// === API ===
	userService := service.NewUserService(s.store, s.logger)
	exerciseService := service.NewExerciseService(s.store, s.store, s.logger)

	users := handler.NewUserHandler(userService, s.logger)
	exercises := handler.NewExerciseHandler(exerciseService, s.logger)

	s.router.Route("/api/users", func(r chi.Router) {
		r.Post("/", users.HandleCreate)
		r.Get("/", users.HandleList)
		r.Post("/{id}/exercises", exercises.HandleCreate)
		r.Get("/{id}/logs", exercises.HandleLog)
	})

	return nil
}

// assets picks the on-disk directory when one is configured, else fallback.
func (s *Server) assets(dir string, fallback fs.FS) fs.FS {
	if dir == "" {
		return fallback
	}
	s.logger.Debug("serving assets from disk", slog.String("dir", dir))
	return os.DirFS(dir)
}

// Start runs the HTTP server until ctx is canceled or SIGINT/SIGTERM is
// received, then shuts down gracefully:
//  1. Stop accepting new connections
//  2. Wait up to ShutdownTimeout for in-flight requests
//  3. Close the store
func (s *Server) Start(ctx context.Context) error {
	defer func() {
		if err := s.store.Close(); err != nil {
			s.logger.Error("failed to close store", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
