package scheduler

import (
	"context"
	"time"

	"github.com/skillforge/checkout-service/internal/application/ports"
	"github.com/skillforge/checkout-service/internal/infrastructure/monitoring"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

// HoldSweeper periodically removes cached holds that are past the full
// backend TTL. Abandoned checkouts otherwise leave a dangling hold and
// a checkout state the user never returns to.
type HoldSweeper struct {
	store    ports.UserStateStore
	logger   *logger.Logger
	holdTTL  time.Duration
	interval time.Duration
	stopChan chan struct{}
}

func NewHoldSweeper(
	store ports.UserStateStore,
	log *logger.Logger,
	holdTTL time.Duration,
	interval time.Duration,
) *HoldSweeper {
	return &HoldSweeper{
		store:    store,
		logger:   log,
		holdTTL:  holdTTL,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (s *HoldSweeper) Start(ctx context.Context) {
	s.logger.Info("Starting hold sweeper", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Hold sweeper stopped")
			return
		case <-s.stopChan:
			s.logger.Info("Hold sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *HoldSweeper) Stop() {
	close(s.stopChan)
}

func (s *HoldSweeper) sweep(ctx context.Context) {
	removed, err := s.store.SweepExpiredHolds(ctx, s.holdTTL)
	if err != nil {
		s.logger.Error("Hold sweep failed", "error", err)
		return
	}
	if removed > 0 {
		monitoring.RecordHoldsSwept(removed)
		s.logger.Info("Swept expired holds", "removed", removed)
	}
}
