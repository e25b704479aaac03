package cleanup

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is how often the sweep runs
const DefaultInterval = 30 * time.Second

// Expirer removes stale rooms and reports how many went
type Expirer interface {
	ExpireStale(ctx context.Context) (int, error)
}

// Service periodically sweeps stale rooms
type Service struct {
	expirer  Expirer
	interval time.Duration
	logger   *slog.Logger

	// running is set while a sweep is in flight
	running atomic.Bool
	// sweeps tracks sweeps started by Run
	sweeps sync.WaitGroup
}

// New creates a new cleanup Service
func New(expirer Expirer, interval time.Duration, logger *slog.Logger) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{
		expirer:  expirer,
		interval: interval,
		logger:   logger,
	}
}

// Interval returns the sweep period
func (s *Service) Interval() time.Duration {
	return s.interval
}

// Run sweeps on every tick until ctx is cancelled. It returns only once
// any sweep it started has finished, so storage can be closed after it.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.sweeps.Wait()

	s.logger.Info("cleanup started", slog.Duration("interval", s.interval))

	for {
		select {
		case <-ticker.C:
			// A slow sweep must not block the loop; overlapping ticks are skipped
			s.sweeps.Add(1)
			go func() {
				defer s.sweeps.Done()
				s.Tick(ctx)
			}()
		case <-ctx.Done():
			s.logger.Info("cleanup stopped")
			return
		}
	}
}

// Tick runs a single sweep. It returns false without doing anything if a
// previous sweep is still running.
func (s *Service) Tick(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Debug("cleanup skipped, previous sweep still running")
		return false
	}
	defer s.running.Store(false)

	removed, err := s.expirer.ExpireStale(ctx)
	if err != nil {
		s.logger.Error("cleanup failed",
			slog.Int("removed", removed),
			slog.String("error", err.Error()),
		)
		return true
	}

	s.logger.Debug("cleanup complete", slog.Int("removed", removed))
	return true
}
