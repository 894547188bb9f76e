package cache

import (
	"fmt"
	"strings"

	"github.com/osspulse/osspulse/internal/config"
	"github.com/osspulse/osspulse/internal/logging"
	"github.com/osspulse/osspulse/internal/utils"
)

// NewCache creates a Cache instance based on configuration.
// A failed Redis connection falls back to the in-memory backend so the
// service stays up when Redis is down.
func NewCache(cfg config.CacheConfig, logger *logging.Logger) (Cache, error) {
	cacheType := utils.CacheType(strings.ToLower(cfg.Type))

	// Default to Redis if not specified
	if cacheType == "" {
		cacheType = utils.CacheTypeRedis
	}

	switch cacheType {
	case utils.CacheTypeRedis:
		c, err := newRedisCache(RedisConfig{
			URL:      cfg.URL,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			logger.Warn("Redis unavailable, falling back to in-memory cache", "error", err)
			return NewMemoryCache(), nil
		}
		return c, nil

	case utils.CacheTypeMemory:
		return NewMemoryCache(), nil

	default:
		return nil, fmt.Errorf("unsupported cache type: %s (supported: redis, memory)", cacheType)
	}
}
