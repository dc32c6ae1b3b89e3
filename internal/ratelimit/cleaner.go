package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner periodically asks the in-memory limiter to drop stale buckets so
// one-off senders don't accumulate forever.
type Cleaner struct {
	limiter  *MemoryLimiter
	log      *slog.Logger
	interval time.Duration
	maxAge   time.Duration
}

// NewCleaner constructs a Cleaner instance.
func NewCleaner(limiter *MemoryLimiter, log *slog.Logger, interval, maxAge time.Duration) *Cleaner {
	if log == nil {
		log = slog.Default()
	}

	return &Cleaner{
		limiter:  limiter,
		log:      log,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Run starts the cleaner loop until the context is cancelled.
func (c *Cleaner) Run(ctx context.Context) {
	if c.limiter == nil || c.interval <= 0 {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if c.log != nil {
				c.log.Info("rate limit cleaner stopped", slog.String("reason", ctx.Err().Error()))
			}
			return
		case <-ticker.C:
			c.limiter.Cleanup(c.maxAge)
		}
	}
}
