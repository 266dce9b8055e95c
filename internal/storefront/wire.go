//go:build wireinject
// +build wireinject

package storefront

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront/internal/cart/usecase/command"
	"github.com/tair/storefront/internal/config"
)

// InitializeApp initializes the storefront with all dependencies
func InitializeApp(cfg *config.Config, publisher command.OrderPublisher, registerer prometheus.Registerer) (*App, error) {
	wire.Build(AllHandlersSet)
	return nil, nil
}
