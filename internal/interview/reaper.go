package interview

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/clock"
)

// Reaper evicts sessions older than a retention window.
type Reaper struct {
	Store     *Store
	Clock     clock.Clock
	Retention time.Duration
	Interval  time.Duration
	Log       *zap.Logger
}

// Sweep evicts expired sessions once and returns the count removed.
func (r *Reaper) Sweep() int {
	n := r.Store.Evict(r.Clock.Now().Add(-r.Retention))
	if n > 0 && r.Log != nil {
		r.Log.Info("evicted expired interview sessions", zap.Int("count", n))
	}
	return n
}

// Run sweeps every Interval until ctx is cancelled.
func (r *Reaper) Run(ctx context.Context) {
	if r.Retention <= 0 || r.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
