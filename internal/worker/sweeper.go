package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweepable is anything holding per-client state that goes stale.
type Sweepable interface {
	Sweep() int
	Len() int
}

// Sweeper periodically drops idle rate-limiter buckets so the per-client
// table does not grow without bound.
type Sweeper struct {
	target   Sweepable
	interval time.Duration
	logger   *zap.Logger
}

func NewSweeper(target Sweepable, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{target: target, interval: interval, logger: logger}
}

// Run ticks every interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("limiter sweeper started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("limiter sweeper stopping")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	if n := s.target.Sweep(); n > 0 {
		s.logger.Debug("dropped idle clients",
			zap.Int("dropped", n), zap.Int("remaining", s.target.Len()))
	}
}
