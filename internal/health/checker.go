package health

import (
	"context"
	"errors"
	"log/slog"

	"gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/store"
)

// Checkable represents a component that can report its health status.
type Checkable interface {
	HealthCheck(ctx context.Context) error
}

// Checker aggregates health checks for multiple components.
type Checker struct {
	log    *slog.Logger
	checks map[string]Checkable
}

// NewChecker instantiates a Checker with the provided logger.
func NewChecker(log *slog.Logger) *Checker {
	return &Checker{
		log:    log,
		checks: make(map[string]Checkable),
	}
}

// AddCheck registers a checkable component by name.
func (c *Checker) AddCheck(name string, check Checkable) {
	if name == "" || check == nil {
		return
	}
	c.checks[name] = check
}

// Check runs all registered health checks and returns their statuses.
func (c *Checker) Check(ctx context.Context) map[string]string {
	results := make(map[string]string, len(c.checks))

	for name, check := range c.checks {
		if check == nil {
			results[name] = "no check configured"
			continue
		}

		if err := check.HealthCheck(ctx); err != nil {
			results[name] = err.Error()
			if c.log != nil {
				c.log.Error("health check failed", slog.String("component", name), slog.Any("error", err))
			}
			continue
		}

		results[name] = "OK"
	}

	return results
}

// StoreChecker verifies that the garden store is initialized and seeded.
type StoreChecker struct {
	garden *store.Garden
}

// NewStoreChecker constructs a StoreChecker.
func NewStoreChecker(garden *store.Garden) *StoreChecker {
	return &StoreChecker{garden: garden}
}

// HealthCheck ensures the store holds the seeded user roster.
func (c *StoreChecker) HealthCheck(ctx context.Context) error {
	if c == nil || c.garden == nil {
		return errors.New("garden store is not initialized")
	}

	if len(c.garden.Users()) == 0 {
		return errors.New("garden store has no seeded users")
	}

	return nil
}

// TelegramChecker verifies that the Telegram bot API is reachable.
type TelegramChecker struct {
	bot *telebot.Bot
}

// NewTelegramChecker constructs a TelegramChecker.
func NewTelegramChecker(bot *telebot.Bot) *TelegramChecker {
	return &TelegramChecker{bot: bot}
}

// HealthCheck ensures the underlying bot is initialized and reachable.
func (c *TelegramChecker) HealthCheck(ctx context.Context) error {
	if c == nil || c.bot == nil || c.bot.Me == nil {
		return errors.New("telegram bot is not initialized or disconnected")
	}
	return nil
}
