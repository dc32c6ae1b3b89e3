package flow

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner periodically drops conversations that have been abandoned mid-flow.
type Cleaner struct {
	storage  *MemoryStorage
	log      *slog.Logger
	interval time.Duration
	maxAge   time.Duration
}

// NewCleaner constructs a Cleaner instance.
func NewCleaner(storage *MemoryStorage, log *slog.Logger, interval, maxAge time.Duration) *Cleaner {
	if log == nil {
		log = slog.Default()
	}

	return &Cleaner{
		storage:  storage,
		log:      log,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Run starts the cleaner loop until the context is cancelled.
func (c *Cleaner) Run(ctx context.Context) {
	if c.storage == nil || c.interval <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if c.log != nil {
				c.log.Info("conversation cleaner stopped", slog.String("reason", ctx.Err().Error()))
			}
			return
		case <-ticker.C:
			if removed := c.storage.Cleanup(c.maxAge); removed > 0 && c.log != nil {
				c.log.Info("stale conversations cleaned", slog.Int("removed", removed))
			}
		}
	}
}
