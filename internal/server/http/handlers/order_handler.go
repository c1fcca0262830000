package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/eshop-orders/internal/domain/errors"
	"github.com/polkiloo/eshop-orders/internal/domain/model"
	"github.com/polkiloo/eshop-orders/internal/server/http/dto"
	"github.com/polkiloo/eshop-orders/internal/usecase"
)

// OrderHandler manages order placement and read endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders/placed.
func (h *OrderHandler) Place(c *gin.Context) {
	var payload dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			ErrorMessage: "malformed order payload",
			ErrorCode:    "INVALID_REQUEST",
		})
		return
	}

	orderID, err := h.facade.PlaceOrder(c.Request.Context(), toPlacementRequest(payload))
	if err != nil {
		status, envelope := placementErrorEnvelope(err)
		c.JSON(status, envelope)
		return
	}

	c.JSON(http.StatusCreated, dto.PlaceOrderResponse{OrderID: orderID})
}

// Get handles GET /api/orders/:orderID.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			ErrorMessage: "order identifier must be an integer",
			ErrorCode:    "INVALID_REQUEST",
		})
		return
	}

	order, err := h.facade.Order(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				ErrorMessage: "order " + strconv.FormatInt(orderID, 10) + " not found",
				ErrorCode:    "ORDER_NOT_FOUND",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			ErrorMessage: "an unexpected error occurred",
			ErrorCode:    "INTERNAL_SERVER_ERROR",
		})
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

func toPlacementRequest(payload dto.PlaceOrderRequest) usecase.PlacementRequest {
	items := make([]usecase.PlacementItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, usecase.PlacementItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return usecase.PlacementRequest{
		Items:         items,
		Shipping:      payload.Shipping.Decimal,
		PaymentMethod: model.PaymentMethod(payload.PaymentMethod),
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		OrderID:       order.ID,
		TotalAmount:   order.Amount,
		Status:        string(order.Status),
		FailureReason: order.FailureReason,
		OrderDate:     order.OrderDate,
		Items: []dto.OrderLineResponse{{
			ProductID: order.ProductID,
			Quantity:  order.Quantity,
			UnitPrice: order.DerivedUnitPrice(),
		}},
	}
}

// placementErrorEnvelope maps saga outcomes to the HTTP error envelope. A
// placement failure deliberately returns only the order identifier; the
// recorded cause is available through the read path.
func placementErrorEnvelope(err error) (int, dto.ErrorResponse) {
	var validationErr *domainErrors.ValidationError
	var placementErr *domainErrors.PlacementError
	var storageErr *domainErrors.StorageError

	switch {
	case errors.Is(err, domainErrors.ErrEmptyOrder):
		return http.StatusBadRequest, dto.ErrorResponse{
			ErrorMessage: err.Error(),
			ErrorCode:    "EMPTY_ORDER",
		}
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, dto.ErrorResponse{
			ErrorMessage: validationErr.Error(),
			ErrorCode:    "INVALID_ITEM",
		}
	case errors.As(err, &placementErr):
		return http.StatusBadGateway, dto.ErrorResponse{
			ErrorMessage: "failed to place order " + strconv.FormatInt(placementErr.OrderID, 10),
			ErrorCode:    "ORDER_PLACEMENT_FAILED",
		}
	case errors.As(err, &storageErr):
		return http.StatusBadGateway, dto.ErrorResponse{
			ErrorMessage: "order could not be recorded",
			ErrorCode:    "STORAGE_FAILURE",
		}
	default:
		return http.StatusInternalServerError, dto.ErrorResponse{
			ErrorMessage: "an unexpected error occurred",
			ErrorCode:    "INTERNAL_SERVER_ERROR",
		}
	}
}
