package usecase

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/eshop-orders/internal/domain/errors"
	"github.com/polkiloo/eshop-orders/internal/domain/model"
)

// PlacementItem is one order line as received from the transport layer after
// alias resolution. Pointers distinguish absent values from zero values.
type PlacementItem struct {
	ProductID *int64
	Quantity  *int64
	UnitPrice *decimal.Decimal
}

// PlacementRequest is the raw placement input handed to the orchestrator.
type PlacementRequest struct {
	Items         []PlacementItem
	Shipping      decimal.Decimal
	PaymentMethod model.PaymentMethod
}

// Normalize validates the request and produces the canonical order form.
// Totals stay exact decimals; rounding to whole currency units happens only
// when the persisted amount is computed.
func Normalize(req PlacementRequest) (*model.NormalizedOrder, error) {
	if len(req.Items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}

	lines := make([]model.OrderLine, 0, len(req.Items))
	for i, item := range req.Items {
		if item.ProductID == nil {
			return nil, &domainErrors.ValidationError{Line: i, Field: "productId", Reason: "is required"}
		}
		if *item.ProductID <= 0 {
			return nil, &domainErrors.ValidationError{Line: i, Field: "productId", Reason: "must be positive"}
		}
		if item.Quantity == nil {
			return nil, &domainErrors.ValidationError{Line: i, Field: "quantity", Reason: "is required"}
		}
		if *item.Quantity <= 0 {
			return nil, &domainErrors.ValidationError{Line: i, Field: "quantity", Reason: "must be greater than zero"}
		}
		if item.UnitPrice == nil {
			return nil, &domainErrors.ValidationError{Line: i, Field: "unitPrice", Reason: "is required"}
		}
		if item.UnitPrice.IsNegative() {
			return nil, &domainErrors.ValidationError{Line: i, Field: "unitPrice", Reason: "must not be negative"}
		}

		lines = append(lines, model.OrderLine{
			ProductID: *item.ProductID,
			Quantity:  *item.Quantity,
			UnitPrice: *item.UnitPrice,
		})
	}

	return &model.NormalizedOrder{
		Lines:         lines,
		Shipping:      req.Shipping,
		PaymentMethod: model.NormalizePaymentMethod(req.PaymentMethod),
	}, nil
}
