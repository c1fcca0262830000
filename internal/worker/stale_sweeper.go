package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// CheckoutFacade exposes the subset of application functionality required by the sweeper.
type CheckoutFacade interface {
	SweepStaleOrders(ctx context.Context, olderThan time.Time, limit int) ([]int64, error)
}

// StaleSweeper periodically fails CREATED orders that never reached a
// terminal state. A crash between the durable create and the final
// transition strands the row; the saga itself never revisits it, so the
// sweeper is what keeps CREATED from becoming a silent third terminal state.
type StaleSweeper struct {
	facade    CheckoutFacade
	interval  time.Duration
	staleAge  time.Duration
	batchSize int
	logger    *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewStaleSweeper constructs the background sweeper.
func NewStaleSweeper(facade CheckoutFacade, interval, staleAge time.Duration, batchSize int, logger *slog.Logger) *StaleSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if staleAge <= 0 {
		staleAge = 15 * time.Minute
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &StaleSweeper{
		facade:    facade,
		interval:  interval,
		staleAge:  staleAge,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Start launches background sweeping.
func (s *StaleSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop waits for the sweeper to finish.
func (s *StaleSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *StaleSweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *StaleSweeper) sweep(ctx context.Context) {
	olderThan := time.Now().Add(-s.staleAge)
	ids, err := s.facade.SweepStaleOrders(ctx, olderThan, s.batchSize)
	if err != nil {
		s.logger.Error("stale order sweep failed", slog.String("error", err.Error()))
		return
	}
	if len(ids) > 0 {
		s.logger.Info("failed abandoned orders",
			slog.Int("count", len(ids)),
			slog.Any("order_ids", ids),
		)
	}
}
