package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/osspulse/osspulse/internal/cache"
	"github.com/osspulse/osspulse/internal/config"
	"github.com/osspulse/osspulse/internal/handlers"
	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/middleware"
	"github.com/osspulse/osspulse/internal/services"
	"github.com/osspulse/osspulse/internal/utils"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, metrics services.MetricSource,
	profiles services.ProfileSource, store cache.Cache, cfg config.Config,
) *handlers.Handler {
	// Create handler instance
	h := handlers.New(logger, metrics, profiles, cfg.Analysis)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger, "/health"))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API key authentication middleware
	authMiddleware := middleware.APIKeyAuth(logger, cfg.Auth)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", authMiddleware)

	// Metric Routes
	metricsGroup := v1.Group("/metrics")
	metricsGroup.Get("/supported", h.SupportedMetrics)
	if cfg.Cache.Enabled && store != nil {
		metricsGroup.Get("/repo/:owner/:repo",
			middleware.ResponseCache(logger, store, utils.MetricsCacheTTL), h.RepoMetrics)
	} else {
		metricsGroup.Get("/repo/:owner/:repo", h.RepoMetrics)
	}

	// Profile Routes
	if cfg.Cache.Enabled && store != nil {
		v1.Get("/repos/:owner/:repo",
			middleware.ResponseCache(logger, store, utils.RepoInfoCacheTTL), h.RepoInfo)
		v1.Get("/developers/:username",
			middleware.ResponseCache(logger, store, utils.DeveloperCacheTTL), h.Developer)
	} else {
		v1.Get("/repos/:owner/:repo", h.RepoInfo)
		v1.Get("/developers/:username", h.Developer)
	}

	// Analysis Routes
	analysis := v1.Group("/analysis")
	analysis.Post("/trend", h.AnalyzeTrend)
	analysis.Post("/correlation", h.AnalyzeCorrelation)
	analysis.Post("/predict", h.Predict)
	analysis.Post("/compare", h.Compare)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, metrics services.MetricSource,
	profiles services.ProfileSource, store cache.Cache, cfg config.Config,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "OSSPulse API",
		DisableStartupMessage: true,
		ReadTimeout:           utils.DefaultRequestTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, metrics, profiles, store, cfg)

	return app
}
