package inventory

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
	"time"

	domainErrors "github.com/polkiloo/eshop-orders/internal/domain/errors"
)

// Client exposes stock reservation at the product service.
type Client interface {
	Reserve(ctx context.Context, productID, quantity int64) error
}

// HTTPClient implements Client via the product service HTTP API.
//
// The reduce-quantity operation carries no idempotency key: a call that
// succeeds remotely but fails on the way back cannot be told apart from one
// that never ran, so callers must not retry.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type reserveRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// errorEnvelope mirrors the collaborator's error payload.
type errorEnvelope struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    string `json:"errorCode"`
}

// NewHTTPClient creates an HTTP inventory client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse product service url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("product service url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Reserve decrements stock for one product/quantity pair. Failures are
// returned as *domainErrors.ReservationError; transport problems and
// timeouts classify as Unavailable.
func (c *HTTPClient) Reserve(ctx context.Context, productID, quantity int64) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/products/reduce-quantity")

	payload, err := json.Marshal(reserveRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return &domainErrors.ReservationError{ProductID: productID, Kind: domainErrors.ReservationUnavailable, Detail: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return &domainErrors.ReservationError{ProductID: productID, Kind: domainErrors.ReservationUnavailable, Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("inventory request failed", slog.Int64("product_id", productID), slog.String("error", err.Error()))
		return &domainErrors.ReservationError{ProductID: productID, Kind: domainErrors.ReservationUnavailable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	envelope := readEnvelope(resp.Body)
	kind := classify(resp.StatusCode, envelope.ErrorCode)
	detail := envelope.ErrorMessage
	if detail == "" {
		detail = resp.Status
	}
	c.logger.Error("inventory reservation rejected",
		slog.Int64("product_id", productID),
		slog.Int("status", resp.StatusCode),
		slog.String("error_code", envelope.ErrorCode),
	)
	return &domainErrors.ReservationError{ProductID: productID, Kind: kind, Detail: detail}
}

func readEnvelope(body io.Reader) errorEnvelope {
	var envelope errorEnvelope
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return envelope
	}
	_ = json.Unmarshal(data, &envelope)
	return envelope
}

func classify(statusCode int, errorCode string) domainErrors.ReservationErrorKind {
	switch errorCode {
	case "PRODUCT_NOT_FOUND":
		return domainErrors.ReservationNotFound
	case "INSUFFICIENT_QUANTITY":
		return domainErrors.ReservationInsufficient
	}
	switch {
	case statusCode == http.StatusNotFound:
		return domainErrors.ReservationNotFound
	case statusCode == http.StatusConflict, statusCode == http.StatusBadRequest:
		return domainErrors.ReservationInsufficient
	default:
		return domainErrors.ReservationUnavailable
	}
}
