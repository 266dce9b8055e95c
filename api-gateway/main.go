package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/tair/storefront/api-gateway/config"
	"github.com/tair/storefront/api-gateway/health"
	"github.com/tair/storefront/api-gateway/middleware"
	"github.com/tair/storefront/api-gateway/routes"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/tracing"
)

const gatewayVersion = "1.0.0"

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront-gateway")
	environment := getEnv("ENVIRONMENT", "development")
	isDevelopment := environment == "development"
	logger.Init(logger.Options{
		ServiceName: serviceName,
		Version:     gatewayVersion,
		Environment: environment,
		Development: isDevelopment,
	})
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", environment).
		Msg("Starting storefront gateway")

	tp, err := tracing.InitTracer(serviceName, gatewayVersion, os.Getenv("JAEGER_ENDPOINT"))
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
		tracing.SetPropagator()
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	cfg := config.LoadConfig()

	// Redis backs caching and rate limiting; both are skipped without it
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("redis_addr", cfg.RedisAddr).
			Msg("Failed to connect to Redis - caching and rate limiting disabled")
		_ = redisClient.Close()
		redisClient = nil
	} else {
		logger.Logger.Info().Str("redis_addr", cfg.RedisAddr).Msg("Connected to Redis")
		defer redisClient.Close()
	}
	cancel()

	app := newApp(cfg, redisClient, isDevelopment)

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logger.Logger.Info().
			Str("addr", addr).
			Str("upstream", cfg.Upstream.BaseURL).
			Msg("Storefront gateway listening")

		if err := app.Listen(addr); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down storefront gateway...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Logger.Info().Msg("Storefront gateway stopped")
}

// newApp builds the Fiber app with the middleware chain and routes.
// redisClient may be nil.
func newApp(cfg *config.GatewayConfig, redisClient *redis.Client, verbose bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Storefront Gateway",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Upstream.Timeout + 5*time.Second,
		IdleTimeout:  30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.StructuredLoggingMiddleware())
	if verbose {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  "GET,POST,PUT,DELETE,PATCH,OPTIONS,HEAD",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Request-Id, traceparent, tracestate",
		ExposeHeaders: "X-Request-Id, X-Trace-Id, X-Cache, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
		MaxAge:        86400,
	}))

	// Compression wraps the cache so cached bodies stay uncompressed
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	if redisClient != nil {
		app.Use(middleware.NewRateLimiter(redisClient, cfg.RateLimit, cfg.RateWindow).Middleware())

		cacheConfig := middleware.DefaultCacheConfig()
		cacheConfig.DefaultTTL = cfg.CacheTTL
		app.Use(middleware.CacheMiddleware(redisClient, cacheConfig))

		logger.Logger.Info().
			Int("rate_limit", cfg.RateLimit).
			Dur("rate_window", cfg.RateWindow).
			Dur("cache_ttl", cfg.CacheTTL).
			Msg("Rate limiting and catalog caching enabled")
	}

	healthChecker := health.NewHealthChecker(cfg.Upstream)
	if cfg.CatalogGRPCAddr != "" {
		conn, err := grpc.NewClient(cfg.CatalogGRPCAddr,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		)
		if err != nil {
			logger.Logger.Warn().Err(err).Str("addr", cfg.CatalogGRPCAddr).Msg("Catalog gRPC readiness check disabled")
		} else {
			healthChecker.WithCatalog(conn, cfg.CatalogGRPCAddr)
			app.Hooks().OnShutdown(conn.Close)
		}
	}

	cb := middleware.NewCircuitBreaker(cfg.Upstream.Name, cfg.BreakerFailures, cfg.BreakerTimeout)
	routes.SetupRoutes(app, cfg, cb, healthChecker)

	return app
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":      err.Error(),
		"statusCode": code,
		"path":       c.Path(),
		"method":     c.Method(),
		"requestId":  c.GetRespHeader(fiber.HeaderXRequestID),
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
