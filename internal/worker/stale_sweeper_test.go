package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	testhelpers "github.com/polkiloo/eshop-orders/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewStaleSweeperDefaults(t *testing.T) {
	sweeper := NewStaleSweeper(&testhelpers.SweeperFacadeStub{}, 0, 0, 0, testLogger())
	if sweeper.interval != time.Minute {
		t.Fatalf("expected interval default to one minute, got %v", sweeper.interval)
	}
	if sweeper.staleAge != 15*time.Minute {
		t.Fatalf("expected stale age default to 15 minutes, got %v", sweeper.staleAge)
	}
	if sweeper.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", sweeper.batchSize)
	}
}

func TestStaleSweeperSweepsAbandonedOrders(t *testing.T) {
	facade := &testhelpers.SweeperFacadeStub{SweepFn: func(context.Context, time.Time, int) ([]int64, error) {
		return []int64{7}, nil
	}}
	sweeper := NewStaleSweeper(facade, 10*time.Millisecond, 15*time.Minute, 32, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(500 * time.Millisecond)
	for facade.CallCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sweep")
		case <-time.After(10 * time.Millisecond):
		}
	}

	sweeper.Stop()

	call := facade.Calls[0]
	if call.Limit != 32 {
		t.Fatalf("expected batch size 32, got %d", call.Limit)
	}
	cutoff := time.Since(call.OlderThan)
	if cutoff < 14*time.Minute || cutoff > 16*time.Minute {
		t.Fatalf("expected cutoff about 15 minutes back, got %v", cutoff)
	}
}

func TestStaleSweeperKeepsRunningAfterError(t *testing.T) {
	facade := &testhelpers.SweeperFacadeStub{SweepFn: func(context.Context, time.Time, int) ([]int64, error) {
		return nil, errors.New("db down")
	}}
	sweeper := NewStaleSweeper(facade, 10*time.Millisecond, time.Minute, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)

	deadline := time.After(time.Second)
	for facade.CallCount() < 2 {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for repeated sweeps")
		case <-time.After(10 * time.Millisecond):
		}
	}

	sweeper.Stop()
}

func TestStaleSweeperStopIsIdempotent(t *testing.T) {
	sweeper := NewStaleSweeper(&testhelpers.SweeperFacadeStub{}, time.Hour, time.Hour, 1, testLogger())
	sweeper.Start(context.Background())
	sweeper.Stop()
	sweeper.Stop()
}
