package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/eshop-orders/internal/domain/errors"
	"github.com/polkiloo/eshop-orders/internal/domain/model"
	"github.com/polkiloo/eshop-orders/internal/domain/repository"
)

// InventoryClient reserves stock at the inventory collaborator.
type InventoryClient interface {
	Reserve(ctx context.Context, productID, quantity int64) error
}

// PaymentClient charges the payment collaborator and returns the transaction
// identifier.
type PaymentClient interface {
	Charge(ctx context.Context, orderID, amount int64, method model.PaymentMethod, referenceNumber string) (int64, error)
}

// OrderUseCase drives the order placement saga: durable create, sequential
// stock reservations, a single payment charge, and a terminal status
// transition. Every remote call is attempted exactly once per run; there are
// no retries and no compensation for stock already reserved when a later step
// fails. The only record of a partial failure is the terminal status and
// cause persisted on the order row.
type OrderUseCase struct {
	orders      repository.OrderRepository
	inventory   InventoryClient
	payments    PaymentClient
	callTimeout time.Duration
	logger      *slog.Logger
}

// NewOrderUseCase constructs the saga orchestrator.
func NewOrderUseCase(orders repository.OrderRepository, inventory InventoryClient, payments PaymentClient, callTimeout time.Duration, logger *slog.Logger) *OrderUseCase {
	if callTimeout <= 0 {
		callTimeout = 10 * time.Second
	}
	return &OrderUseCase{
		orders:      orders,
		inventory:   inventory,
		payments:    payments,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// Place runs the placement saga and returns the created order identifier.
// Validation failures leave no trace; once the CREATED row exists, every
// failure is recorded on it before the error is returned, so the caller
// always holds an identifier it can query.
func (u *OrderUseCase) Place(ctx context.Context, req PlacementRequest) (int64, error) {
	normalized, err := Normalize(req)
	if err != nil {
		return 0, err
	}

	order, err := u.orders.Create(ctx, normalized.Lines[0].ProductID, normalized.TotalQuantity(), normalized.Amount())
	if err != nil {
		return 0, &domainErrors.StorageError{Op: "create order", Err: err}
	}
	u.logger.Info("order created",
		slog.Int64("order_id", order.ID),
		slog.Int64("amount", order.Amount),
		slog.Int64("quantity", order.Quantity),
	)

	for _, line := range normalized.Lines {
		if err := u.reserve(ctx, line); err != nil {
			u.recordFailure(ctx, order.ID, model.OrderStatusFailed, err)
			return order.ID, &domainErrors.PlacementError{OrderID: order.ID, Err: err}
		}
	}

	reference := fmt.Sprintf("REF-%d", order.ID)
	transactionID, err := u.charge(ctx, order.ID, order.Amount, normalized.PaymentMethod, reference)
	if err != nil {
		// Stock for every line is already reduced at this point and stays
		// reduced: the inventory collaborator offers no reversal operation.
		u.recordFailure(ctx, order.ID, model.OrderStatusPaymentFailed, err)
		return order.ID, &domainErrors.PlacementError{OrderID: order.ID, Err: err}
	}

	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusPlaced, nil); err != nil {
		storageErr := &domainErrors.StorageError{Op: "mark placed", Err: err}
		u.logger.Error("order paid but final transition failed",
			slog.Int64("order_id", order.ID),
			slog.Int64("transaction_id", transactionID),
			slog.String("error", err.Error()),
		)
		return order.ID, &domainErrors.PlacementError{OrderID: order.ID, Err: storageErr}
	}

	u.logger.Info("order placed",
		slog.Int64("order_id", order.ID),
		slog.Int64("transaction_id", transactionID),
	)
	return order.ID, nil
}

// Get returns the persisted order snapshot.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

func (u *OrderUseCase) reserve(ctx context.Context, line model.OrderLine) error {
	callCtx, cancel := context.WithTimeout(ctx, u.callTimeout)
	defer cancel()
	return u.inventory.Reserve(callCtx, line.ProductID, line.Quantity)
}

func (u *OrderUseCase) charge(ctx context.Context, orderID, amount int64, method model.PaymentMethod, reference string) (int64, error) {
	callCtx, cancel := context.WithTimeout(ctx, u.callTimeout)
	defer cancel()
	return u.payments.Charge(callCtx, orderID, amount, method, reference)
}

// recordFailure persists the terminal failure state with a human-readable
// cause. A storage error here leaves the row in CREATED; the stale sweeper
// eventually fails it.
func (u *OrderUseCase) recordFailure(ctx context.Context, orderID int64, status model.OrderStatus, cause error) {
	reason := cause.Error()
	if err := u.orders.UpdateStatus(ctx, orderID, status, &reason); err != nil {
		u.logger.Error("failed to record order failure",
			slog.Int64("order_id", orderID),
			slog.String("status", string(status)),
			slog.String("error", err.Error()),
		)
		return
	}
	u.logger.Info("order failed",
		slog.Int64("order_id", orderID),
		slog.String("status", string(status)),
		slog.String("reason", reason),
	)
}
