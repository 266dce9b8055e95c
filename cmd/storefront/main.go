package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"google.golang.org/grpc"

	_ "github.com/tair/storefront/docs"
	"github.com/tair/storefront/internal/cart/usecase/command"
	catalog "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/config"
	"github.com/tair/storefront/internal/storefront"
	storefronthttp "github.com/tair/storefront/internal/storefront/delivery/http"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/tracing"
)

const serviceVersion = "1.0.0"

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(logger.Options{
		ServiceName: cfg.ServiceName,
		Version:     serviceVersion,
		Environment: cfg.Environment,
		Development: cfg.IsDevelopment(),
	})
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting storefront service")

	// Initialize tracer
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(cfg.ServiceName, serviceVersion, cfg.JaegerEndpoint)
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
	} else {
		tracing.SetPropagator()
	}

	// Kafka is optional; without brokers checkout only logs the order
	var publisher command.OrderPublisher
	if cfg.KafkaEnabled() {
		kafkaPublisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, order events disabled")
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
		}
	}

	// Initialize application with Wire DI
	app, err := storefront.InitializeApp(cfg, publisher, prometheus.DefaultRegisterer)
	if err != nil {
		var seedErr *catalog.ValidationError
		if errors.As(err, &seedErr) {
			logger.Logger.Fatal().
				Err(err).
				Int("entry", seedErr.Index).
				Str("field", seedErr.Field).
				Msg("Invalid seed catalog")
		}
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize storefront")
	}

	httpServer := startHTTPServer(app.Handler, cfg)
	startGRPCServer(app.GRPCServer, cfg.GRPCPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	app.GRPCServer.GracefulStop()

	logger.Logger.Info().Msg("Server stopped")
}

func startHTTPServer(handler *storefronthttp.StorefrontHandler, cfg *config.Config) *http.Server {
	router := mux.NewRouter()

	storefronthttp.RegisterMiddlewares(router, storefronthttp.DefaultMiddlewareConfig())

	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	storefronthttp.RegisterSwaggerDocs(router, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	return server
}

func startGRPCServer(server *grpc.Server, port string) {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("port", port).Msg("Failed to listen for gRPC")
	}

	go func() {
		logger.Logger.Info().
			Str("port", port).
			Msg("gRPC server started")

		if err := server.Serve(lis); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start gRPC server")
		}
	}()
}
