// Package lifecycle coordinates process-level concerns for the bot: health
// probes for the ops server and orderly teardown of the subsystems started
// in main (the Telegram poller, cleaners, collector).
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Shutdown runs registered teardown hooks concurrently when the process
// receives a stop signal. Hooks are independent, one failing does not stop
// the others.
type Shutdown struct {
	mu    sync.Mutex
	hooks []Hook
	log   *slog.Logger
}

// NewShutdown constructs an empty shutdown coordinator.
func NewShutdown(log *slog.Logger) *Shutdown {
	if log == nil {
		log = slog.Default()
	}

	return &Shutdown{log: log}
}

// Register adds a named teardown hook. Registration order does not matter
// since hooks run concurrently.
func (s *Shutdown) Register(name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.hooks = append(s.hooks, Hook{Name: name, Fn: fn})
}

// Execute runs every registered hook and waits for all of them. The returned
// error joins each hook failure, annotated with the hook's name.
func (s *Shutdown) Execute(ctx context.Context) error {
	s.mu.Lock()
	hooks := append([]Hook(nil), s.hooks...)
	s.mu.Unlock()

	start := time.Now()
	if s.log != nil {
		s.log.Info("shutdown sequence started", slog.Int("hook_count", len(hooks)))
	}

	var wg sync.WaitGroup
	var errMu sync.Mutex
	var errs []error

	for _, hook := range hooks {
		h := hook
		if h.Fn == nil {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			if s.log != nil {
				s.log.Info("running shutdown hook", slog.String("hook", h.Name))
			}

			if err := h.Fn(ctx); err != nil {
				if s.log != nil {
					s.log.Error("shutdown hook failed", slog.String("hook", h.Name), slog.Any("error", err))
				}
				errMu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", h.Name, err))
				errMu.Unlock()
				return
			}

			if s.log != nil {
				s.log.Info("shutdown hook completed", slog.String("hook", h.Name))
			}
		}()
	}

	wg.Wait()

	if s.log != nil {
		s.log.Info("shutdown sequence finished", slog.Duration("elapsed", time.Since(start)))
	}

	return errors.Join(errs...)
}
