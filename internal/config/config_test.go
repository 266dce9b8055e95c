package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "GRPC_PORT", "KAFKA_BROKERS", "KAFKA_TOPIC", "TRACING_ENABLED", "CORS_ALLOWED_ORIGINS", "IMAGE_WIDTH", "ENVIRONMENT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "9090", cfg.GRPCPort)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "storefront-orders", cfg.KafkaTopic)
	assert.True(t, cfg.TracingEnabled)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 400, cfg.ImageWidth)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("TRACING_ENABLED", "false")
	t.Setenv("IMAGE_WIDTH", "not-a-number")
	t.Setenv("ENVIRONMENT", "production")

	cfg := Load()
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, 400, cfg.ImageWidth)
	assert.False(t, cfg.IsDevelopment())
}
