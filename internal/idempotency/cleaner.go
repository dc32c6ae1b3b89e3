package idempotency

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner periodically evicts expired idempotency records.
type Cleaner struct {
	store    *MemoryStore
	log      *slog.Logger
	interval time.Duration
}

func NewCleaner(store *MemoryStore, log *slog.Logger, interval time.Duration) *Cleaner {
	if log == nil {
		log = slog.Default()
	}

	return &Cleaner{
		store:    store,
		log:      log,
		interval: interval,
	}
}

func (c *Cleaner) Run(ctx context.Context) {
	if c == nil || c.store == nil || c.interval <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.store.Cleanup(); removed > 0 {
				c.log.Debug("expired idempotency records removed", slog.Int("removed", removed))
			}
		}
	}
}
