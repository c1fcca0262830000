package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/eshop-orders/internal/domain/errors"
	"github.com/polkiloo/eshop-orders/internal/domain/model"
)

// Client exposes the charge operation at the payment service.
type Client interface {
	Charge(ctx context.Context, orderID, amount int64, method model.PaymentMethod, referenceNumber string) (int64, error)
}

// HTTPClient implements Client via the payment service HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type chargeRequest struct {
	OrderID         int64  `json:"orderId"`
	Amount          int64  `json:"amount"`
	PaymentMethod   string `json:"paymentMethod"`
	ReferenceNumber string `json:"referenceNumber"`
}

type errorEnvelope struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    string `json:"errorCode"`
}

// NewHTTPClient creates an HTTP payment client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment service url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment service url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Charge issues a single payment for the full order total. The reference
// number is derived from the order identifier so the remote side could in
// principle deduplicate a repeated charge, although no retry is ever issued
// from here. The success body is the bare transaction identifier.
func (c *HTTPClient) Charge(ctx context.Context, orderID, amount int64, method model.PaymentMethod, referenceNumber string) (int64, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/payments/do-payment")

	payload, err := json.Marshal(chargeRequest{
		OrderID:         orderID,
		Amount:          amount,
		PaymentMethod:   string(method),
		ReferenceNumber: referenceNumber,
	})
	if err != nil {
		return 0, &domainErrors.PaymentError{OrderID: orderID, Kind: domainErrors.PaymentInvalid, Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return 0, &domainErrors.PaymentError{OrderID: orderID, Kind: domainErrors.PaymentUnavailable, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("payment request failed", slog.Int64("order_id", orderID), slog.String("error", err.Error()))
		return 0, &domainErrors.PaymentError{OrderID: orderID, Kind: domainErrors.PaymentUnavailable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return 0, &domainErrors.PaymentError{OrderID: orderID, Kind: domainErrors.PaymentUnavailable, Detail: err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		transactionID, err := strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
		if err != nil {
			return 0, &domainErrors.PaymentError{OrderID: orderID, Kind: domainErrors.PaymentInvalid, Detail: fmt.Sprintf("unparsable transaction id %q", body)}
		}
		return transactionID, nil
	}

	var envelope errorEnvelope
	_ = json.Unmarshal(body, &envelope)
	detail := envelope.ErrorMessage
	if detail == "" {
		detail = resp.Status
	}
	c.logger.Error("payment charge rejected",
		slog.Int64("order_id", orderID),
		slog.Int("status", resp.StatusCode),
		slog.String("error_code", envelope.ErrorCode),
	)
	return 0, &domainErrors.PaymentError{OrderID: orderID, Kind: classify(resp.StatusCode, envelope.ErrorCode), Detail: detail}
}

func classify(statusCode int, errorCode string) domainErrors.PaymentErrorKind {
	switch errorCode {
	case "PAYMENT_DECLINED":
		return domainErrors.PaymentDeclined
	case "INVALID_PAYMENT":
		return domainErrors.PaymentInvalid
	}
	switch {
	case statusCode == http.StatusPaymentRequired, statusCode == http.StatusUnprocessableEntity:
		return domainErrors.PaymentDeclined
	case statusCode == http.StatusBadRequest:
		return domainErrors.PaymentInvalid
	default:
		return domainErrors.PaymentUnavailable
	}
}
