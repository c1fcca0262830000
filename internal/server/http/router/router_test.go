package router

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	gingonic "github.com/gin-gonic/gin"

	"github.com/polkiloo/eshop-orders/internal/server/http/handlers"
	testhelpers "github.com/polkiloo/eshop-orders/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gingonic.SetMode(gingonic.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.CheckoutFacadeStub{}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]any{
		"items": []map[string]any{{"productId": 1, "quantity": 1, "unitPrice": "5.00"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/orders/placed", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for placement, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/orders/1", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for order read, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for health, got %d", resp.Code)
	}
}

func TestSetupDecompressesGzipRequests(t *testing.T) {
	gingonic.SetMode(gingonic.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(testhelpers.CheckoutFacadeStub{}, logger)

	payload, _ := json.Marshal(map[string]any{
		"items": []map[string]any{{"productId": 1, "quantity": 1, "unitPrice": 5}},
	})
	var compressed bytes.Buffer
	zw := gzip.NewWriter(&compressed)
	if _, err := zw.Write(payload); err != nil {
		t.Fatalf("failed to compress payload: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/orders/placed", &compressed)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for compressed placement, got %d", resp.Code)
	}
}

var _ handlers.CheckoutFacade = testhelpers.CheckoutFacadeStub{}
