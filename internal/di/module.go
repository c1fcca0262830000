package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/eshop-orders/internal/adapter/inventory"
	"github.com/polkiloo/eshop-orders/internal/adapter/payment"
	"github.com/polkiloo/eshop-orders/internal/app"
	"github.com/polkiloo/eshop-orders/internal/config"
	"github.com/polkiloo/eshop-orders/internal/logger"
	"github.com/polkiloo/eshop-orders/internal/server/http/handlers"
	"github.com/polkiloo/eshop-orders/internal/server/http/router"
	"github.com/polkiloo/eshop-orders/internal/storage/postgres"
	"github.com/polkiloo/eshop-orders/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		inventory.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(
			func(client inventory.Client) usecase.InventoryClient { return client },
			func(client payment.Client) usecase.PaymentClient { return client },
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.CheckoutFacade) handlers.CheckoutFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
