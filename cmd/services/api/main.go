package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osspulse/osspulse/internal/cache"
	"github.com/osspulse/osspulse/internal/config"
	"github.com/osspulse/osspulse/internal/fetch"
	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/router"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("API service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// Response cache (Redis with in-memory fallback)
	var store cache.Cache
	if cfg.Cache.Enabled {
		store, err = cache.NewCache(cfg.Cache, logger)
		if err != nil {
			logger.Fatal("Failed to initialize cache", "error", err)
		}
		defer func() { _ = store.Close() }()
		logger.Info("Response cache initialized", "type", cfg.Cache.Type)
	} else {
		logger.Warn("Response cache disabled")
	}

	// Upstream clients
	metrics := fetch.NewOpenDiggerClient(cfg.Sources.OpenDiggerBaseURL, cfg.Sources.FetchTimeout)
	profiles, err := fetch.NewGitHubClient(cfg.Sources.GitHubBaseURL, cfg.Sources.GitHubToken)
	if err != nil {
		logger.Fatal("Failed to initialize GitHub client", "error", err)
	}
	if cfg.Sources.GitHubToken == "" {
		logger.Warn("No GitHub token configured - using unauthenticated rate limits")
	}

	// Log authentication status
	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	// Initialize router
	app := router.New(logger, metrics, profiles, store, *cfg)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with 10 second timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
