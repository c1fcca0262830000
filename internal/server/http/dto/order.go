package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Accepted field spellings for inbound order payloads, resolved in order,
// first match wins. The storefront clients never agreed on one schema, so the
// service accepts every spelling they ever sent.
var (
	itemListAliases  = []string{"items", "cartItems", "cart"}
	productIDAliases = []string{"productId", "id", "product_id"}
	quantityAliases  = []string{"quantity", "qty", "count"}
	unitPriceAliases = []string{"unitPrice", "price", "unit_price"}
	nameAliases      = []string{"productName", "name", "title"}
)

// OrderItem is one raw order line. Required fields stay pointers so the
// normalizer can tell "absent" from "zero" and name the missing field.
type OrderItem struct {
	ProductID   *int64
	Quantity    *int64
	UnitPrice   *decimal.Decimal
	ProductName string
}

// UnmarshalJSON resolves field aliases; unknown keys are ignored.
func (it *OrderItem) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if value, ok := firstAlias(raw, productIDAliases); ok {
		it.ProductID = parseOptionalInt(value)
	}
	if value, ok := firstAlias(raw, quantityAliases); ok {
		it.Quantity = parseOptionalInt(value)
	}
	if value, ok := firstAlias(raw, unitPriceAliases); ok {
		it.UnitPrice = parseOptionalDecimal(value)
	}
	if value, ok := firstAlias(raw, nameAliases); ok {
		var name string
		if err := json.Unmarshal(value, &name); err == nil {
			it.ProductName = name
		}
	}
	return nil
}

// PlaceOrderRequest describes the inbound placement payload.
type PlaceOrderRequest struct {
	Items         []OrderItem
	Shipping      Money
	PaymentMethod string
}

// UnmarshalJSON resolves the item-list alias and delegates per-field parsing.
func (r *PlaceOrderRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if value, ok := firstAlias(raw, itemListAliases); ok {
		if err := json.Unmarshal(value, &r.Items); err != nil {
			return err
		}
	}
	if value, ok := raw["shipping"]; ok {
		if err := r.Shipping.UnmarshalJSON(value); err != nil {
			return err
		}
	}
	if value, ok := raw["paymentMethod"]; ok {
		var method string
		if err := json.Unmarshal(value, &method); err != nil {
			return err
		}
		r.PaymentMethod = method
	}
	return nil
}

func firstAlias(raw map[string]json.RawMessage, aliases []string) (json.RawMessage, bool) {
	for _, alias := range aliases {
		if value, ok := raw[alias]; ok && string(value) != "null" {
			return value, true
		}
	}
	return nil, false
}

func parseOptionalInt(raw json.RawMessage) *int64 {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return &v
		}
	}
	return nil
}

func parseOptionalDecimal(raw json.RawMessage) *decimal.Decimal {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		trimmed = strings.TrimSpace(s)
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil
	}
	return &value
}

// PlaceOrderResponse carries the identifier of a created order.
type PlaceOrderResponse struct {
	OrderID int64 `json:"orderId"`
}

// OrderLineResponse is the single derived line returned by the read path.
// Unit price is back-computed from the persisted totals, not a retained
// per-line value.
type OrderLineResponse struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
	UnitPrice int64 `json:"unitPrice"`
}

// OrderResponse is the order snapshot returned by the read path.
type OrderResponse struct {
	OrderID       int64               `json:"orderId"`
	TotalAmount   int64               `json:"totalAmount"`
	Status        string              `json:"status"`
	FailureReason *string             `json:"failureReason,omitempty"`
	OrderDate     time.Time           `json:"orderDate"`
	Items         []OrderLineResponse `json:"items"`
}

// ErrorResponse is the structured error envelope.
type ErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    string `json:"errorCode"`
}
