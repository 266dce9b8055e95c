package config

import (
	"os"
	"strconv"
	"time"
)

// ServiceConfig holds configuration for the backend service
type ServiceConfig struct {
	Name        string
	BaseURL     string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port            string
	Upstream        ServiceConfig
	CatalogGRPCAddr string
	RedisAddr       string
	RedisPassword   string
	CacheTTL        time.Duration
	RateLimit       int
	RateWindow      time.Duration
	BreakerFailures int
	BreakerTimeout  time.Duration
	AllowedOrigins  string
}

// LoadConfig loads the gateway configuration
func LoadConfig() *GatewayConfig {
	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Upstream: ServiceConfig{
			Name:        "storefront-service",
			BaseURL:     getEnv("STOREFRONT_SERVICE_URL", "http://localhost:8080"),
			Timeout:     getEnvDuration("STOREFRONT_TIMEOUT", 30*time.Second),
			HealthCheck: "/health",
		},
		CatalogGRPCAddr: os.Getenv("STOREFRONT_GRPC_ADDR"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CacheTTL:        getEnvDuration("CACHE_TTL", 5*time.Minute),
		RateLimit:       getEnvInt("RATE_LIMIT", 100),
		RateWindow:      getEnvDuration("RATE_WINDOW", time.Minute),
		BreakerFailures: getEnvInt("BREAKER_MAX_FAILURES", 5),
		BreakerTimeout:  getEnvDuration("BREAKER_TIMEOUT", 30*time.Second),
		AllowedOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
