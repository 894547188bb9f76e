package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/osspulse/osspulse/internal/cache"
	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/utils"
)

// ResponseCache caches successful GET responses for the route it wraps.
// Cache failures are logged and the request served uncached.
func ResponseCache(logger *logging.Logger, store cache.Cache, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := cache.Key(c.Path(), c.Queries(), nil)

		ctx, cancel := context.WithTimeout(c.UserContext(), utils.CacheOpTimeout)
		payload, hit, err := store.Get(ctx, key)
		cancel()
		if err != nil {
			logger.Warn("Cache lookup failed", "key", key, "error", err)
		}

		if hit {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			c.Set("X-Cache", "HIT")
			return c.Send(payload)
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}

		// The response body is reused by fiber after the handler returns.
		body := make([]byte, len(c.Response().Body()))
		copy(body, c.Response().Body())

		ctx, cancel = context.WithTimeout(context.Background(), utils.CacheOpTimeout)
		defer cancel()
		if err := store.Set(ctx, key, body, ttl); err != nil {
			logger.Warn("Cache store failed", "key", key, "error", err)
		}

		c.Set("X-Cache", "MISS")
		return nil
	}
}
