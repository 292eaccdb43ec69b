// Package main is the entry point for the Pocket Ledger API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pocketledger/backend/config"
	"github.com/pocketledger/backend/internal/infra/db"
	"github.com/pocketledger/backend/internal/infra/dependency"
	"github.com/pocketledger/backend/internal/integration/cache"
	"github.com/pocketledger/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Pocket Ledger API",
		"environment", cfg.Server.Environment,
		"backend", cfg.Storage.Backend,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.Open(cfg)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	models := make([]any, 0, len(model.All()))
	for _, m := range model.All() {
		models = append(models, m)
	}
	if err := database.AutoMigrate(models...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	var ext dependency.Externals
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		cancel()
		if err != nil {
			slog.Warn("Redis unavailable, advice caching disabled", "error", err)
		} else {
			ext.Redis = client
			defer client.Close()
		}
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), ext)
	if err != nil {
		slog.Error("Failed to wire application", "error", err)
		os.Exit(1)
	}

	if err := injector.SeedDemoUser(context.Background()); err != nil {
		slog.Error("Failed to seed demo user", "error", err)
	}

	if err := injector.ScheduleJobs(); err != nil {
		slog.Error("Failed to schedule background jobs", "error", err)
		os.Exit(1)
	}
	injector.Scheduler.Start()

	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := injector.Scheduler.Stop(ctx); err != nil {
		slog.Warn("Background jobs did not stop in time", "error", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
