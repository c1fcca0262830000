package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/eshop-orders/internal/config"
	"github.com/polkiloo/eshop-orders/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(newOrderUseCase)

type orderUseCaseParams struct {
	fx.In

	Orders    repository.OrderRepository
	Inventory InventoryClient
	Payments  PaymentClient
	Config    *config.Config
	Logger    *slog.Logger
}

func newOrderUseCase(p orderUseCaseParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Inventory, p.Payments, p.Config.RemoteCallTimeout, p.Logger)
}
