package repository

import (
	"context"
	"time"

	"github.com/polkiloo/eshop-orders/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create persists a new order in CREATED state and returns the row with
	// the store-assigned identifier and timestamps.
	Create(ctx context.Context, productID, quantity, amount int64) (*model.Order, error)
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)
	// UpdateStatus moves an order out of CREATED into a terminal state. The
	// transition is a single atomic row update; a row already in a terminal
	// state is left untouched and reported via ErrNotFound.
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, failureReason *string) error
	// MarkStaleFailed fails CREATED rows older than the threshold, in bounded
	// batches. Returns identifiers of the rows it transitioned.
	MarkStaleFailed(ctx context.Context, olderThan time.Time, limit int) ([]int64, error)
}
