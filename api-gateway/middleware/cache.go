package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tair/storefront/pkg/logger"
)

// CacheConfig holds cache configuration
type CacheConfig struct {
	DefaultTTL     time.Duration // Default cache TTL
	CacheablePaths []string      // Path prefixes whose GET responses may be cached
	KeyPrefix      string
}

// DefaultCacheConfig caches catalog reads only. Cart and checkout responses
// reflect mutable state and always go to the storefront.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		DefaultTTL:     5 * time.Minute,
		CacheablePaths: []string{"/api/products", "/api/categories"},
		KeyPrefix:      "storefront:cache:",
	}
}

// CacheMiddleware implements response caching with Redis
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redisClient == nil {
			return c.Next()
		}

		if c.Method() != fiber.MethodGet || !isPathCacheable(c.Path(), config.CacheablePaths) {
			return c.Next()
		}

		cacheKey := generateCacheKey(c, config.KeyPrefix)
		ctx := c.UserContext()

		cachedResponse, err := redisClient.Get(ctx, cacheKey).Bytes()
		if err == nil && len(cachedResponse) > 0 {
			logger.Debug(ctx).
				Str("path", c.Path()).
				Str("cache_key", cacheKey).
				Msg("Cache hit")

			c.Set("X-Cache", "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.Send(cachedResponse)
		}

		err = c.Next()
		if err != nil {
			return err
		}

		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}

		// Copy: fasthttp reuses the response buffer once the handler returns
		responseBody := append([]byte(nil), c.Response().Body()...)
		if err := redisClient.Set(ctx, cacheKey, responseBody, config.DefaultTTL).Err(); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("cache_key", cacheKey).
				Msg("Failed to cache response")
		} else {
			logger.Debug(ctx).
				Str("path", c.Path()).
				Str("cache_key", cacheKey).
				Dur("ttl", config.DefaultTTL).
				Int("size", len(responseBody)).
				Msg("Response cached")
		}

		c.Set("X-Cache", "MISS")
		return nil
	}
}

// generateCacheKey hashes the path and query of the request
func generateCacheKey(c *fiber.Ctx, prefix string) string {
	raw := c.Path() + "?" + string(c.Request().URI().QueryString())
	return fmt.Sprintf("%s%016x", prefix, xxhash.Sum64String(raw))
}

func isPathCacheable(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
