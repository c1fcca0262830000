package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the placement lifecycle.
type OrderStatus string

const (
	OrderStatusCreated       OrderStatus = "CREATED"
	OrderStatusPlaced        OrderStatus = "PLACED"
	OrderStatusFailed        OrderStatus = "FAILED"
	OrderStatusPaymentFailed OrderStatus = "PAYMENT_FAILED"
)

// Terminal reports whether no further transition is allowed from the status.
func (s OrderStatus) Terminal() bool {
	return s != OrderStatusCreated
}

// Order describes the persisted order row. The schema keeps a single summary
// row per order: ProductID is the first line's product, Quantity the sum over
// all lines, Amount the grand total in whole currency units.
type Order struct {
	ID            int64
	ProductID     int64
	Quantity      int64
	Amount        int64
	Status        OrderStatus
	FailureReason *string
	OrderDate     time.Time
	UpdatedAt     time.Time
}

// DerivedUnitPrice back-computes an approximate per-unit price from the
// persisted totals. True per-line pricing is not retained by the single-row
// schema, so this is total divided by quantity rounded half-up, not the
// price the client originally sent.
func (o Order) DerivedUnitPrice() int64 {
	if o.Quantity > 0 {
		return decimal.NewFromInt(o.Amount).Div(decimal.NewFromInt(o.Quantity)).Round(0).IntPart()
	}
	return o.Amount
}

// OrderLine is one normalized input line. Lines are not persisted
// individually; they only feed total computation and reservation calls.
type OrderLine struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Total returns the exact line total.
func (l OrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// NormalizedOrder is the canonical form of a placement request after alias
// resolution and validation.
type NormalizedOrder struct {
	Lines         []OrderLine
	Shipping      decimal.Decimal
	PaymentMethod PaymentMethod
}

// GrandTotal returns items total plus shipping, exact.
func (n NormalizedOrder) GrandTotal() decimal.Decimal {
	total := n.Shipping
	for _, l := range n.Lines {
		total = total.Add(l.Total())
	}
	return total
}

// Amount rounds the grand total half-up to whole currency units. This is the
// only point where fractional cents are dropped; everything upstream stays
// exact.
func (n NormalizedOrder) Amount() int64 {
	return n.GrandTotal().Round(0).IntPart()
}

// TotalQuantity sums quantities over all lines.
func (n NormalizedOrder) TotalQuantity() int64 {
	var qty int64
	for _, l := range n.Lines {
		qty += l.Quantity
	}
	return qty
}
