package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrEmptyOrder     = errors.New("order must contain at least one item")
	ErrOrderFinalized = errors.New("order already in terminal state")
)

// ValidationError reports a malformed placement request. Line is the
// zero-based index of the offending item, or -1 for order-level problems.
type ValidationError struct {
	Line   int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Line < 0 {
		return fmt.Sprintf("invalid order: %s", e.Reason)
	}
	return fmt.Sprintf("invalid item %d: %s %s", e.Line, e.Field, e.Reason)
}

// StorageError marks a failed order-row write. Once an order exists, this is
// the fatal channel: the saga cannot continue without a durable record.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ReservationErrorKind classifies inventory reservation outcomes.
type ReservationErrorKind string

const (
	ReservationNotFound     ReservationErrorKind = "NOT_FOUND"
	ReservationInsufficient ReservationErrorKind = "INSUFFICIENT"
	ReservationUnavailable  ReservationErrorKind = "UNAVAILABLE"
)

// ReservationError is a typed failure from the inventory collaborator.
type ReservationError struct {
	ProductID int64
	Kind      ReservationErrorKind
	Detail    string
}

func (e *ReservationError) Error() string {
	return fmt.Sprintf("reserve product %d: %s (%s)", e.ProductID, e.Kind, e.Detail)
}

// PaymentErrorKind classifies payment charge outcomes.
type PaymentErrorKind string

const (
	PaymentDeclined    PaymentErrorKind = "DECLINED"
	PaymentInvalid     PaymentErrorKind = "INVALID"
	PaymentUnavailable PaymentErrorKind = "UNAVAILABLE"
)

// PaymentError is a typed failure from the payment collaborator.
type PaymentError struct {
	OrderID int64
	Kind    PaymentErrorKind
	Detail  string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("charge order %d: %s (%s)", e.OrderID, e.Kind, e.Detail)
}

// PlacementError is what the caller receives when the saga fails after the
// order row exists. It carries the identifier so the client can query the
// recorded failure through the read path; the underlying cause stays on the
// order row.
type PlacementError struct {
	OrderID int64
	Err     error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("failed to place order %d: %v", e.OrderID, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }
