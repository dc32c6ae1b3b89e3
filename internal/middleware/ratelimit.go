package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/verdantlab/gardenbot/internal/bot/handlers"
	"github.com/verdantlab/gardenbot/internal/ratelimit"
	"gopkg.in/telebot.v3"
)

// RateLimitMiddleware enforces per-user rate limits for incoming Telegram updates.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	rules   *ratelimit.Rules
	log     *slog.Logger
}

// NewRateLimitMiddleware constructs a rate-limit middleware component.
func NewRateLimitMiddleware(limiter ratelimit.Limiter, rules *ratelimit.Rules, log *slog.Logger) *RateLimitMiddleware {
	if log == nil {
		log = slog.Default()
	}

	return &RateLimitMiddleware{
		limiter: limiter,
		rules:   rules,
		log:     log,
	}
}

// Handle returns a telebot middleware that enforces per-user rate limits.
func (m *RateLimitMiddleware) Handle(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		if m.limiter == nil || m.rules == nil {
			return next(c)
		}

		sender := c.Sender()
		if sender == nil {
			return next(c)
		}

		userID := sender.ID
		if m.rules.IsWhitelisted(userID) {
			return next(c)
		}

		// The global limit caps total update throughput across all users.
		if limit, window, err := m.rules.GetGlobalLimit(); err == nil {
			result, err := m.limiter.Check(context.Background(), "global", limit, window)
			if err != nil && !errors.Is(err, ratelimit.ErrLimitExceeded) {
				if m.log != nil {
					m.log.Warn("rate limiter error", slog.String("key", "global"), slog.Any("error", err))
				}
			} else if result != nil && !result.Allowed {
				if m.log != nil {
					m.log.Warn("global rate limit exceeded", slog.Int64("user_id", userID))
				}
				return c.Send("Rate limit exceeded. Try again later.")
			}
		}

		limit, window, err := m.rules.GetPerUserLimit()
		if err != nil {
			if m.log != nil {
				m.log.Error("failed to load per-user rate limit", slog.Int64("user_id", userID), slog.Any("error", err))
			}
			return next(c)
		}

		key := fmt.Sprintf("user:%d", userID)
		result, err := m.limiter.Check(context.Background(), key, limit, window)
		if err != nil && !errors.Is(err, ratelimit.ErrLimitExceeded) {
			if m.log != nil {
				m.log.Warn("rate limiter error", slog.Int64("user_id", userID), slog.Any("error", err))
			}
			return next(c)
		}

		if result != nil && !result.Allowed {
			if m.log != nil {
				m.log.Warn("rate limit exceeded", slog.Int64("user_id", userID))
			}
			return c.Send("Rate limit exceeded. Try again later.")
		}

		return next(c)
	}
}

// CommandLimit returns a handler middleware that enforces the configured
// limit for a specific command on top of the per-user limit.
func (m *RateLimitMiddleware) CommandLimit(command string) handlers.Middleware {
	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			if m == nil || m.limiter == nil || m.rules == nil {
				return next(c)
			}

			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			userID := sender.ID
			if m.rules.IsWhitelisted(userID) {
				return next(c)
			}

			limit, window, err := m.rules.GetCommandLimit(command)
			if err != nil {
				if m.log != nil {
					m.log.Error("failed to load command rate limit", slog.String("command", command), slog.Any("error", err))
				}
				return next(c)
			}

			key := fmt.Sprintf("cmd:%s:%d", command, userID)
			result, err := m.limiter.Check(context.Background(), key, limit, window)
			if err != nil && !errors.Is(err, ratelimit.ErrLimitExceeded) {
				if m.log != nil {
					m.log.Warn("rate limiter error", slog.Int64("user_id", userID), slog.Any("error", err))
				}
				return next(c)
			}

			if result != nil && !result.Allowed {
				if m.log != nil {
					m.log.Warn("command rate limit exceeded", slog.String("command", command), slog.Int64("user_id", userID))
				}
				return c.Send("Rate limit exceeded. Try again later.")
			}

			return next(c)
		}
	}
}
