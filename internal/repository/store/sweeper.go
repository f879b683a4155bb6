package store

import (
	"context"
	"time"

	"github.com/mkropachev/sign-station/internal/logger"
)

// Sweeper wipes the public artifact directory on a fixed interval. It is a
// retention mechanism only; the request path never depends on its timing.
type Sweeper struct {
	// store provides the sweep operation.
	store *Store
	// interval is the period between sweeps.
	interval time.Duration
}

// NewSweeper creates a sweeper over the store's public directory.
func NewSweeper(s *Store, interval time.Duration) *Sweeper {
	return &Sweeper{
		store:    s,
		interval: interval,
	}
}

// Run blocks, sweeping on every tick until the context is canceled.
// Intended to run in its own goroutine for the process lifetime.
func (w *Sweeper) Run(ctx context.Context) {
	ctx = logger.WithName(ctx, "sweeper")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.InfoKV(ctx, "Retention sweeper started", "interval", w.interval)

	// Sweep immediately so artifacts left over from a previous run do not
	// linger for a full interval after a restart.
	w.store.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Retention sweeper stopped")

			return
		case <-ticker.C:
			w.store.Sweep(ctx)
		}
	}
}
