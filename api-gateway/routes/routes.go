package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/storefront/api-gateway/config"
	"github.com/tair/storefront/api-gateway/health"
	"github.com/tair/storefront/api-gateway/middleware"
	"github.com/tair/storefront/api-gateway/proxy"
)

// RouteDefinition describes a proxied path prefix
type RouteDefinition struct {
	Prefix      string `json:"prefix"`
	Description string `json:"description"`
	Cached      bool   `json:"cached"`
}

// Routes lists the storefront surfaces the gateway forwards
var Routes = []RouteDefinition{
	{Prefix: "/", Description: "Storefront page and form actions"},
	{Prefix: "/api/products", Description: "Catalog listing, product detail and stats", Cached: true},
	{Prefix: "/api/categories", Description: "Category list", Cached: true},
	{Prefix: "/api/cart", Description: "Cart contents and line operations"},
	{Prefix: "/api/checkout", Description: "Checkout"},
	{Prefix: "/swagger", Description: "Storefront API documentation"},
}

// SetupRoutes registers gateway health endpoints and proxies everything
// else to the storefront through the circuit breaker.
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cb *middleware.CircuitBreaker, healthChecker *health.HealthChecker) {
	reverseProxy := proxy.NewReverseProxy(cfg.Upstream)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		status := healthChecker.Check(ctx)
		code := fiber.StatusOK
		if status.Status != health.StatusHealthy {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(status)
	})

	app.Get("/gateway", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":  "Storefront Gateway",
			"version":  "1.0.0",
			"upstream": cfg.Upstream.BaseURL,
			"routes":   Routes,
		})
	})

	app.Get("/gateway/circuit", func(c *fiber.Ctx) error {
		return c.JSON(cb.GetStats())
	})

	app.All("/*", middleware.CircuitBreakerMiddleware(cb), reverseProxy.ProxyRequest)
}
