// Package storefront assembles the catalog, the cart and their HTTP and gRPC
// surfaces into one application.
package storefront

import (
	"fmt"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"

	cartdomain "github.com/tair/storefront/internal/cart/domain"
	"github.com/tair/storefront/internal/cart/store"
	"github.com/tair/storefront/internal/cart/usecase/command"
	cartquery "github.com/tair/storefront/internal/cart/usecase/query"
	catalogrpc "github.com/tair/storefront/internal/catalog/delivery/grpc"
	catalog "github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/imageref"
	"github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/internal/catalog/seed"
	catalogquery "github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/internal/config"
	storefronthttp "github.com/tair/storefront/internal/storefront/delivery/http"
	"github.com/tair/storefront/pkg/logger"
)

// App is the assembled storefront: one catalog and one cart shared by the
// HTTP and gRPC servers.
type App struct {
	Handler    *storefronthttp.StorefrontHandler
	GRPCServer *grpc.Server
}

// ProvideImageProvider provides the product image reference provider
func ProvideImageProvider(cfg *config.Config) imageref.Provider {
	return imageref.NewUnsplashProvider(cfg.ImageWidth, cfg.ImageHeight)
}

// ProvideSeedCatalog provides the embedded seed entries
func ProvideSeedCatalog() ([]catalog.ProductDefinition, error) {
	return seed.Default()
}

// ProvideProductRepository loads the catalog and wraps it with tracing
func ProvideProductRepository(images imageref.Provider, defs []catalog.ProductDefinition) (catalog.ProductRepository, error) {
	repo := repository.NewMemoryProductRepository(images)
	if err := repo.Load(defs); err != nil {
		return nil, err
	}

	logger.Logger.Info().
		Int("products", repo.Count()).
		Msg("Catalog loaded")

	return repository.NewTracingProductRepository(repo), nil
}

// ProvideCartRepository provides the process's cart
func ProvideCartRepository() cartdomain.CartRepository {
	return store.NewMemoryStore()
}

// Command Handlers Providers
func ProvideAddItemHandler(products catalog.ProductRepository, cart cartdomain.CartRepository) *command.AddItemHandler {
	return command.NewAddItemHandler(products, cart)
}

func ProvideRemoveItemHandler(cart cartdomain.CartRepository) *command.RemoveItemHandler {
	return command.NewRemoveItemHandler(cart)
}

func ProvideIncreaseQuantityHandler(cart cartdomain.CartRepository) *command.IncreaseQuantityHandler {
	return command.NewIncreaseQuantityHandler(cart)
}

func ProvideDecreaseQuantityHandler(cart cartdomain.CartRepository) *command.DecreaseQuantityHandler {
	return command.NewDecreaseQuantityHandler(cart)
}

func ProvideClearCartHandler(cart cartdomain.CartRepository) *command.ClearCartHandler {
	return command.NewClearCartHandler(cart)
}

func ProvideCheckoutHandler(cart cartdomain.CartRepository, publisher command.OrderPublisher) *command.CheckoutHandler {
	return command.NewCheckoutHandler(cart, publisher)
}

// Query Handlers Providers
func ProvideGetProductHandler(products catalog.ProductRepository) *catalogquery.GetProductHandler {
	return catalogquery.NewGetProductHandler(products)
}

func ProvideListProductsHandler(products catalog.ProductRepository) *catalogquery.ListProductsHandler {
	return catalogquery.NewListProductsHandler(products)
}

func ProvideGetStatsHandler(products catalog.ProductRepository) *catalogquery.GetStatsHandler {
	return catalogquery.NewGetStatsHandler(products)
}

func ProvideGetCartHandler(cart cartdomain.CartRepository) *cartquery.GetCartHandler {
	return cartquery.NewGetCartHandler(cart)
}

// ProvideGRPCServer provides the gRPC server with the catalog service registered
func ProvideGRPCServer(server *catalogrpc.CatalogServer, interceptors *catalogrpc.Interceptors) *grpc.Server {
	return catalogrpc.NewServer(server, interceptors)
}

// ProvideInterceptors provides the gRPC interceptors
func ProvideInterceptors(registerer prometheus.Registerer) (*catalogrpc.Interceptors, error) {
	interceptors, err := catalogrpc.NewInterceptors(registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register gRPC metrics: %w", err)
	}
	return interceptors, nil
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideImageProvider,
	ProvideSeedCatalog,
	ProvideProductRepository,
	ProvideCartRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideAddItemHandler,
	ProvideRemoveItemHandler,
	ProvideIncreaseQuantityHandler,
	ProvideDecreaseQuantityHandler,
	ProvideClearCartHandler,
	ProvideCheckoutHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetProductHandler,
	ProvideListProductsHandler,
	ProvideGetStatsHandler,
	ProvideGetCartHandler,
)

var DeliverySet = wire.NewSet(
	storefronthttp.NewStorefrontHandlerWithDI,
	catalogrpc.NewCatalogServerWithDI,
	ProvideInterceptors,
	ProvideGRPCServer,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
	DeliverySet,
	wire.Struct(new(App), "*"),
)
