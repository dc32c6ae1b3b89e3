package lifecycle

import (
	"context"
	"log/slog"
)

// HealthChecker exposes liveness and readiness probes.
type HealthChecker interface {
	Liveness(ctx context.Context) error
	Readiness(ctx context.Context) error
}

// Probes implements HealthChecker. Liveness reports success while the
// process is running; readiness delegates to the supplied check.
type Probes struct {
	log   *slog.Logger
	ready func(ctx context.Context) error
}

// NewProbes creates probes backed by the given readiness check. A nil check
// makes the service always ready.
func NewProbes(log *slog.Logger, ready func(ctx context.Context) error) *Probes {
	if log == nil {
		log = slog.Default()
	}
	return &Probes{log: log, ready: ready}
}

// Liveness reports whether the process event loop is responsive.
func (p *Probes) Liveness(ctx context.Context) error {
	if p.log != nil {
		p.log.Debug("liveness probe called")
	}
	return nil
}

// Readiness reports whether dependencies are healthy enough to serve.
func (p *Probes) Readiness(ctx context.Context) error {
	if p.log != nil {
		p.log.Debug("readiness probe called")
	}
	if p.ready == nil {
		return nil
	}
	return p.ready(ctx)
}
