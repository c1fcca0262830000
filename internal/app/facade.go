package app

import (
	"context"
	"time"

	"github.com/polkiloo/eshop-orders/internal/domain/model"
	"github.com/polkiloo/eshop-orders/internal/domain/repository"
	"github.com/polkiloo/eshop-orders/internal/usecase"
)

// HealthChecker reports storage connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CheckoutFacade aggregates the operations exposed across handlers and the
// background sweeper.
type CheckoutFacade struct {
	orders *usecase.OrderUseCase
	repo   repository.OrderRepository
	health HealthChecker
}

// NewCheckoutFacade constructs CheckoutFacade.
func NewCheckoutFacade(orders *usecase.OrderUseCase, repo repository.OrderRepository, health HealthChecker) *CheckoutFacade {
	return &CheckoutFacade{orders: orders, repo: repo, health: health}
}

// PlaceOrder runs the placement saga and returns the order identifier.
func (f *CheckoutFacade) PlaceOrder(ctx context.Context, req usecase.PlacementRequest) (int64, error) {
	return f.orders.Place(ctx, req)
}

// Order returns the persisted order snapshot.
func (f *CheckoutFacade) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

// SweepStaleOrders fails CREATED rows older than the threshold.
func (f *CheckoutFacade) SweepStaleOrders(ctx context.Context, olderThan time.Time, limit int) ([]int64, error) {
	return f.repo.MarkStaleFailed(ctx, olderThan, limit)
}

// HealthCheck verifies the storage dependency.
func (f *CheckoutFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
