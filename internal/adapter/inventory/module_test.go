package inventory

import (
	"testing"

	"github.com/polkiloo/eshop-orders/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{ProductServiceAddress: "http://example.com"}
	client, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatal("expected client instance")
	}
}

func TestNewClientRejectsBadAddress(t *testing.T) {
	cfg := &config.Config{ProductServiceAddress: "/relative"}
	if _, err := newClient(clientParams{Config: cfg, Logger: testLogger()}); err == nil {
		t.Fatal("expected error for relative address")
	}
}
