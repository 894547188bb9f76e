// Package middleware holds the fiber middlewares shared across routes:
// API-key auth, response caching and the error handler.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/osspulse/osspulse/internal/config"
	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/models"
)

// MinAPIKeyLength is the minimum accepted length for configured API keys.
const MinAPIKeyLength = 16

// APIKeyAuth creates an API key authentication middleware. Keys are read
// from the X-API-Key header or from Authorization (with or without the
// Bearer prefix).
func APIKeyAuth(logger *logging.Logger, cfg config.AuthConfig) fiber.Handler {
	// If auth is disabled, allow all requests
	if !cfg.Enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	keyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key == "" {
			continue
		}
		if len(key) < MinAPIKeyLength || strings.TrimSpace(key) == "" {
			logger.Warn("API key too short, skipping",
				"key_prefix", maskAPIKey(key),
				"min_required", MinAPIKeyLength,
			)
			continue
		}
		keyMap[key] = true
	}

	if len(keyMap) == 0 {
		logger.Error("Auth enabled but no valid API keys configured")
	}

	return func(c *fiber.Ctx) error {
		apiKey := c.Get("X-API-Key")
		if apiKey == "" {
			authHeader := c.Get("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				apiKey = after
			} else {
				apiKey = authHeader
			}
		}

		if apiKey == "" {
			logger.Warn("API key missing",
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP(),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "UNAUTHORIZED",
					Message: "API key is required. Provide it via X-API-Key header or Authorization header.",
				},
			})
		}

		if !keyMap[apiKey] {
			logger.Warn("Invalid API key",
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP(),
				"api_key_prefix", maskAPIKey(apiKey),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "UNAUTHORIZED",
					Message: "Invalid API key.",
				},
			})
		}

		return c.Next()
	}
}

// maskAPIKey masks API key for logging (show only first 4 chars)
func maskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return key[:4] + "****"
}
