package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/grpc"

	"github.com/tair/storefront/api-gateway/config"
	catalogrpc "github.com/tair/storefront/internal/catalog/delivery/grpc"
	"github.com/tair/storefront/pkg/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// ServiceHealth represents the health status of the upstream
type ServiceHealth struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	URL       string    `json:"url"`
	LatencyMS int64     `json:"latency_ms"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// GatewayHealth represents the overall gateway health
type GatewayHealth struct {
	Gateway  string         `json:"gateway"`
	Status   string         `json:"status"`
	Upstream ServiceHealth  `json:"upstream"`
	Catalog  *ServiceHealth `json:"catalog,omitempty"`
	Uptime   float64        `json:"uptime_seconds"`
}

// HealthChecker checks the storefront's health endpoint
type HealthChecker struct {
	upstream  config.ServiceConfig
	client    *http.Client
	catalog   *catalogrpc.CatalogServiceClient
	grpcAddr  string
	startTime time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(upstream config.ServiceConfig) *HealthChecker {
	return &HealthChecker{
		upstream:  upstream,
		client:    &http.Client{Timeout: 5 * time.Second},
		startTime: time.Now(),
	}
}

// CheckUpstream calls the storefront health endpoint
func (h *HealthChecker) CheckUpstream(ctx context.Context) ServiceHealth {
	start := time.Now()
	result := ServiceHealth{
		Name:      h.upstream.Name,
		URL:       h.upstream.BaseURL,
		Timestamp: start,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.upstream.BaseURL+h.upstream.HealthCheck, nil)
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = fmt.Sprintf("Failed to create request: %v", err)
		return result
	}

	resp, err := h.client.Do(req)
	result.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = fmt.Sprintf("Failed to reach service: %v", err)
		logger.Warn(ctx).Str("service", result.Name).Str("error", result.Error).Msg("Upstream health check failed")
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		result.Status = StatusHealthy
	} else {
		result.Status = StatusUnhealthy
		result.Error = fmt.Sprintf("Unexpected status code: %d", resp.StatusCode)
		logger.Warn(ctx).Str("service", result.Name).Str("error", result.Error).Msg("Upstream health check failed")
	}

	return result
}

// WithCatalog adds the storefront's gRPC catalog service to readiness checks
func (h *HealthChecker) WithCatalog(cc grpc.ClientConnInterface, addr string) *HealthChecker {
	h.catalog = catalogrpc.NewCatalogServiceClient(cc)
	h.grpcAddr = addr
	return h
}

// CheckCatalog runs an unfiltered catalog query over gRPC. An empty catalog
// counts as unhealthy, matching the storefront's own /health.
func (h *HealthChecker) CheckCatalog(ctx context.Context) ServiceHealth {
	start := time.Now()
	result := ServiceHealth{
		Name:      catalogrpc.ServiceName,
		URL:       h.grpcAddr,
		Timestamp: start,
	}

	resp, err := h.catalog.FilterProducts(ctx, "all", "")
	result.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = fmt.Sprintf("Catalog query failed: %v", err)
		logger.Warn(ctx).Str("service", result.Name).Str("error", result.Error).Msg("Catalog health check failed")
		return result
	}

	if resp.GetFields()["total"].GetNumberValue() < 1 {
		result.Status = StatusUnhealthy
		result.Error = "Catalog is empty"
		return result
	}

	result.Status = StatusHealthy
	return result
}

// Check reports gateway health including the upstream
func (h *HealthChecker) Check(ctx context.Context) GatewayHealth {
	upstream := h.CheckUpstream(ctx)
	status := GatewayHealth{
		Gateway:  "storefront-gateway",
		Status:   upstream.Status,
		Upstream: upstream,
		Uptime:   time.Since(h.startTime).Seconds(),
	}

	if h.catalog != nil {
		catalog := h.CheckCatalog(ctx)
		status.Catalog = &catalog
		if catalog.Status != StatusHealthy {
			status.Status = StatusUnhealthy
		}
	}

	return status
}

// QuickCheck reports on the gateway itself without calling the upstream
func (h *HealthChecker) QuickCheck() map[string]interface{} {
	return map[string]interface{}{
		"status":    StatusHealthy,
		"gateway":   "storefront-gateway",
		"uptime":    time.Since(h.startTime).Seconds(),
		"timestamp": time.Now(),
	}
}
