package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/eshop-orders/internal/domain/errors"
	"github.com/polkiloo/eshop-orders/internal/domain/model"
	testhelpers "github.com/polkiloo/eshop-orders/internal/test"
	"github.com/polkiloo/eshop-orders/internal/usecase"
)

type healthStub struct {
	err error
}

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func newFacade() (*CheckoutFacade, *testhelpers.OrderRepositoryStub, *testhelpers.InventoryClientStub, *testhelpers.PaymentClientStub) {
	repo := testhelpers.NewOrderRepositoryStub()
	inventory := &testhelpers.InventoryClientStub{}
	payments := &testhelpers.PaymentClientStub{}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orderUC := usecase.NewOrderUseCase(repo, inventory, payments, time.Second, logger)
	facade := NewCheckoutFacade(orderUC, repo, healthStub{})
	return facade, repo, inventory, payments
}

func placementRequest() usecase.PlacementRequest {
	productID := int64(1)
	quantity := int64(2)
	unitPrice := decimal.RequireFromString("10.00")
	return usecase.PlacementRequest{Items: []usecase.PlacementItem{
		{ProductID: &productID, Quantity: &quantity, UnitPrice: &unitPrice},
	}}
}

func TestCheckoutFacadePlaceAndRead(t *testing.T) {
	facade, _, inventory, payments := newFacade()

	orderID, err := facade.PlaceOrder(context.Background(), placementRequest())
	if err != nil {
		t.Fatalf("place returned error: %v", err)
	}
	if len(inventory.Calls) != 1 || len(payments.Calls) != 1 {
		t.Fatalf("expected one reservation and one charge, got %d/%d", len(inventory.Calls), len(payments.Calls))
	}

	order, err := facade.Order(context.Background(), orderID)
	if err != nil {
		t.Fatalf("order read returned error: %v", err)
	}
	if order.Status != model.OrderStatusPlaced {
		t.Fatalf("expected PLACED, got %s", order.Status)
	}
}

func TestCheckoutFacadePlacePropagatesFailure(t *testing.T) {
	facade, _, inventory, _ := newFacade()
	inventory.ReserveFn = func(ctx context.Context, productID, quantity int64) error {
		return &domainErrors.ReservationError{ProductID: productID, Kind: domainErrors.ReservationInsufficient, Detail: "stock too low"}
	}

	orderID, err := facade.PlaceOrder(context.Background(), placementRequest())
	var placementErr *domainErrors.PlacementError
	if !errors.As(err, &placementErr) {
		t.Fatalf("expected placement error, got %v", err)
	}

	order, err := facade.Order(context.Background(), orderID)
	if err != nil {
		t.Fatalf("order read returned error: %v", err)
	}
	if order.Status != model.OrderStatusFailed {
		t.Fatalf("expected FAILED, got %s", order.Status)
	}
}

func TestCheckoutFacadeSweepStaleOrders(t *testing.T) {
	facade, repo, _, _ := newFacade()

	stale := &model.Order{ID: 50, ProductID: 1, Quantity: 1, Amount: 5, Status: model.OrderStatusCreated, OrderDate: time.Now().Add(-time.Hour)}
	repo.Orders[stale.ID] = stale

	ids, err := facade.SweepStaleOrders(context.Background(), time.Now().Add(-30*time.Minute), 10)
	if err != nil {
		t.Fatalf("sweep returned error: %v", err)
	}
	if len(ids) != 1 || ids[0] != 50 {
		t.Fatalf("expected stale order 50, got %v", ids)
	}
	if stale.Status != model.OrderStatusFailed {
		t.Fatalf("expected FAILED, got %s", stale.Status)
	}
}

func TestCheckoutFacadeHealthCheck(t *testing.T) {
	facade, _, _, _ := newFacade()

	if err := facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orderUC := usecase.NewOrderUseCase(testhelpers.NewOrderRepositoryStub(), &testhelpers.InventoryClientStub{}, &testhelpers.PaymentClientStub{}, time.Second, logger)
	failing := NewCheckoutFacade(orderUC, testhelpers.NewOrderRepositoryStub(), healthStub{err: errors.New("db down")})
	if err := failing.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health check failure")
	}
}
