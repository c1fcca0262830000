package test

import (
	"context"

	"github.com/polkiloo/eshop-orders/internal/domain/model"
)

// ReserveCall records one inventory reservation.
type ReserveCall struct {
	ProductID int64
	Quantity  int64
}

// InventoryClientStub mimics the product service client.
type InventoryClientStub struct {
	ReserveFn func(ctx context.Context, productID, quantity int64) error
	Calls     []ReserveCall
}

// Reserve records the call and delegates to the configured function.
func (s *InventoryClientStub) Reserve(ctx context.Context, productID, quantity int64) error {
	s.Calls = append(s.Calls, ReserveCall{ProductID: productID, Quantity: quantity})
	if s.ReserveFn != nil {
		return s.ReserveFn(ctx, productID, quantity)
	}
	return nil
}

// ChargeCall records one payment charge.
type ChargeCall struct {
	OrderID         int64
	Amount          int64
	Method          model.PaymentMethod
	ReferenceNumber string
}

// PaymentClientStub mimics the payment service client.
type PaymentClientStub struct {
	ChargeFn func(ctx context.Context, orderID, amount int64) (int64, error)
	Calls    []ChargeCall
}

// Charge records the call and delegates to the configured function.
func (s *PaymentClientStub) Charge(ctx context.Context, orderID, amount int64, method model.PaymentMethod, referenceNumber string) (int64, error) {
	s.Calls = append(s.Calls, ChargeCall{OrderID: orderID, Amount: amount, Method: method, ReferenceNumber: referenceNumber})
	if s.ChargeFn != nil {
		return s.ChargeFn(ctx, orderID, amount)
	}
	return 1, nil
}
