package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/eshop-orders/internal/adapter/inventory"
	"github.com/polkiloo/eshop-orders/internal/adapter/payment"
	"github.com/polkiloo/eshop-orders/internal/app"
	"github.com/polkiloo/eshop-orders/internal/config"
	"github.com/polkiloo/eshop-orders/internal/domain/repository"
	"github.com/polkiloo/eshop-orders/internal/storage/postgres"
	"github.com/polkiloo/eshop-orders/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:            ":0",
		DatabaseURI:           "postgres://stub",
		ProductServiceAddress: "http://localhost",
		PaymentServiceAddress: "http://localhost",
		RemoteCallTimeout:     time.Millisecond,
		SweepInterval:         time.Millisecond,
		StaleOrderAge:         time.Minute,
		SweepBatchSize:        1,
		ShutdownTimeout:       time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orderRepo := test.NewOrderRepositoryStub()
	inventoryStub := &test.InventoryClientStub{}
	paymentStub := &test.PaymentClientStub{}

	var facade *app.CheckoutFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(inventory.Client(inventoryStub)),
			fx.Replace(payment.Client(paymentStub)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected checkout facade instance")
	}
}
