package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/eshop-orders/internal/domain/model"
	"github.com/polkiloo/eshop-orders/internal/usecase"
)

// CheckoutFacadeStub provides controllable behaviour for handler tests.
type CheckoutFacadeStub struct {
	PlaceFn  func(context.Context, usecase.PlacementRequest) (int64, error)
	OrderFn  func(context.Context, int64) (*model.Order, error)
	HealthFn func(context.Context) error
}

// PlaceOrder delegates to provided function or returns a fixed identifier.
func (s CheckoutFacadeStub) PlaceOrder(ctx context.Context, req usecase.PlacementRequest) (int64, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, req)
	}
	return 1, nil
}

// Order delegates to provided function or returns a placed order snapshot.
func (s CheckoutFacadeStub) Order(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, ProductID: 1, Quantity: 1, Amount: 10, Status: model.OrderStatusPlaced, OrderDate: time.Unix(0, 0)}, nil
}

// HealthCheck reports configured health state.
func (s CheckoutFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// SweepCall stores information about SweepStaleOrders invocations.
type SweepCall struct {
	OlderThan time.Time
	Limit     int
}

// SweeperFacadeStub mimics sweeper interactions with the checkout facade.
type SweeperFacadeStub struct {
	SweepFn func(context.Context, time.Time, int) ([]int64, error)
	Calls   []SweepCall
	mu      sync.Mutex
}

// SweepStaleOrders records the call and delegates to the configured function.
func (s *SweeperFacadeStub) SweepStaleOrders(ctx context.Context, olderThan time.Time, limit int) ([]int64, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, SweepCall{OlderThan: olderThan, Limit: limit})
	s.mu.Unlock()
	if s.SweepFn != nil {
		return s.SweepFn(ctx, olderThan, limit)
	}
	return nil, nil
}

// CallCount returns the number of recorded sweep invocations.
func (s *SweeperFacadeStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Calls)
}
