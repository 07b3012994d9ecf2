// Package main is the entry point for the exercise tracker server.
//
// main stays minimal:
//  1. Load configuration (defaults, YAML, .env, environment)
//  2. Create dependencies (logger, store)
//  3. Start the server
//
// All actual logic lives in internal/.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/sakif/exercise-tracker/internal/config"
	"github.com/sakif/exercise-tracker/internal/server"
	"github.com/sakif/exercise-tracker/internal/storage"
)

func main() {
	ctx := context.Background()

	// === 1. CONFIGURATION ===
	// Loaded before the logger is final, so failures here use the default level.
	cfg, err := config.Load(ctx)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. LOGGING ===
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// === 3. STORE ===
	// The scheme of MONGO_URI picks the backend: mongodb://, sqlite:// or memory://.
	store, backend, err := storage.Open(ctx, cfg.MongoURI, storage.Options{
		MongoDatabase: cfg.MongoDatabase,
	})
	if err != nil {
		logger.Error("failed to open store",
			slog.String("uri", storage.Redact(cfg.MongoURI)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	logger.Info("store connected",
		slog.String("backend", string(backend)),
		slog.String("uri", storage.Redact(cfg.MongoURI)),
	)

	// === 4. SERVER ===
	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		PublicDir:       cfg.PublicDir,
		ViewsDir:        cfg.ViewsDir,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, store, logger)
	if err != nil {
		store.Close()
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM, then closes the store.
	if err := srv.Start(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
