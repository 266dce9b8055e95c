package health

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/tair/storefront/api-gateway/config"
	catalogrpc "github.com/tair/storefront/internal/catalog/delivery/grpc"
	"github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/internal/catalog/seed"
)

func upstreamConfig(url string) config.ServiceConfig {
	return config.ServiceConfig{
		Name:        "storefront-service",
		BaseURL:     url,
		Timeout:     time.Second,
		HealthCheck: "/health",
	}
}

func TestCheckUpstream_Healthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	status := NewHealthChecker(upstreamConfig(srv.URL)).Check(context.Background())
	assert.Equal(t, StatusHealthy, status.Status)
	assert.Equal(t, "storefront-service", status.Upstream.Name)
	assert.Empty(t, status.Upstream.Error)
}

func TestCheckUpstream_EmptyCatalogIsUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	status := NewHealthChecker(upstreamConfig(srv.URL)).CheckUpstream(context.Background())
	assert.Equal(t, StatusUnhealthy, status.Status)
	assert.Contains(t, status.Error, "503")
}

func TestCheckUpstream_Unreachable(t *testing.T) {
	status := NewHealthChecker(upstreamConfig("http://127.0.0.1:1")).CheckUpstream(context.Background())
	assert.Equal(t, StatusUnhealthy, status.Status)
	assert.Contains(t, status.Error, "Failed to reach service")
}

func startCatalog(t *testing.T, load bool) *grpc.ClientConn {
	t.Helper()

	repo := repository.NewMemoryProductRepository(nil)
	if load {
		defs, err := seed.Default()
		require.NoError(t, err)
		require.NoError(t, repo.Load(defs))
	}

	interceptors, err := catalogrpc.NewInterceptors(prometheus.NewRegistry())
	require.NoError(t, err)
	server := catalogrpc.NewServer(catalogrpc.NewCatalogServer(repo), interceptors)

	lis := bufconn.Listen(1024 * 1024)
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///catalog",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func healthyUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck_IncludesCatalogService(t *testing.T) {
	srv := healthyUpstream(t)
	checker := NewHealthChecker(upstreamConfig(srv.URL)).WithCatalog(startCatalog(t, true), "bufnet")

	status := checker.Check(context.Background())
	assert.Equal(t, StatusHealthy, status.Status)
	require.NotNil(t, status.Catalog)
	assert.Equal(t, StatusHealthy, status.Catalog.Status)
	assert.Equal(t, catalogrpc.ServiceName, status.Catalog.Name)
}

func TestCheck_EmptyCatalogFailsReadiness(t *testing.T) {
	srv := healthyUpstream(t)
	checker := NewHealthChecker(upstreamConfig(srv.URL)).WithCatalog(startCatalog(t, false), "bufnet")

	status := checker.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, status.Status)
	require.NotNil(t, status.Catalog)
	assert.Equal(t, "Catalog is empty", status.Catalog.Error)
}

func TestCheck_WithoutCatalogClientSkipsGRPC(t *testing.T) {
	srv := healthyUpstream(t)

	status := NewHealthChecker(upstreamConfig(srv.URL)).Check(context.Background())
	assert.Equal(t, StatusHealthy, status.Status)
	assert.Nil(t, status.Catalog)
}
