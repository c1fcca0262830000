package handlers

import (
	"context"

	"github.com/polkiloo/eshop-orders/internal/domain/model"
	"github.com/polkiloo/eshop-orders/internal/usecase"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, req usecase.PlacementRequest) (int64, error)
	Order(ctx context.Context, orderID int64) (*model.Order, error)
}

// HealthFacade reports readiness of the service dependencies.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// CheckoutFacade aggregates the full set of operations used across handlers.
type CheckoutFacade interface {
	OrderFacade
	HealthFacade
}
