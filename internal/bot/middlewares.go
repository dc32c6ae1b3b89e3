package bot

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/handlers"
	errors "github.com/verdantlab/gardenbot/internal/errors"
	"github.com/verdantlab/gardenbot/internal/i18n"
	"github.com/verdantlab/gardenbot/pkg/metrics"
)

// RecoveryMiddleware catches panics, reports them via the centralized handler, and notifies the user.
func RecoveryMiddleware(log *slog.Logger, errHandler *errors.Handler, t i18n.Translator) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic recovered in handler", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))

					userMsg := fallbackErrorMessage(t)
					if errHandler != nil {
						appErr := errors.NewInternalError(fmt.Errorf("panic recovered: %v", r))
						if msg, _ := errHandler.Handle(context.Background(), appErr); msg != "" {
							userMsg = msg
						}
					}

					if c != nil {
						if sendErr := c.Send(userMsg); sendErr != nil {
							log.Error("failed to notify user about panic", slog.Any("error", sendErr))
						}
					}

					err = nil
				}
			}()

			return next(c)
		}
	}
}

// ErrorHandlingMiddleware centralizes error reporting and user messaging for handler failures.
func ErrorHandlingMiddleware(errHandler *errors.Handler, t i18n.Translator) handlers.Middleware {
	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var appErr *errors.AppError
			if stderrors.As(err, &appErr) && appErr != nil {
				metrics.RecordError(appErr.Code, string(appErr.Severity))
			} else {
				metrics.RecordError("unknown", string(errors.SeverityHigh))
			}

			userMsg := fallbackErrorMessage(t)
			if errHandler != nil {
				if msg, _ := errHandler.Handle(context.Background(), err); msg != "" {
					userMsg = msg
				}
			}

			if c != nil {
				_ = c.Send(userMsg)
			}

			return nil
		}
	}
}

// CircuitBreakerMiddleware suspends update processing while the breaker is
// open, so a Telegram outage does not pile up doomed API calls.
func CircuitBreakerMiddleware(breaker *errors.CircuitBreaker, log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			if breaker == nil {
				return next(c)
			}

			err := breaker.Call(func() error {
				return next(c)
			})
			if stderrors.Is(err, errors.ErrCircuitOpen) {
				userID := int64(0)
				if c != nil && c.Sender() != nil {
					userID = c.Sender().ID
				}
				log.Warn("dropping update, circuit breaker open", slog.Int64("user_id", userID))
				return nil
			}

			return err
		}
	}
}

// LoggingMiddleware logs basic telemetry about incoming updates.
func LoggingMiddleware(log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			start := time.Now()
			userID := int64(0)
			if c != nil && c.Sender() != nil {
				userID = c.Sender().ID
			}

			action := ""
			if c != nil {
				if cb := c.Callback(); cb != nil {
					action = cb.Data
				} else {
					action = c.Text()
				}
			}

			log.Info("handling update", slog.Int64("user_id", userID), slog.String("action", action))
			err := next(c)
			log.Info("handled update",
				slog.Int64("user_id", userID),
				slog.String("action", action),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)

			return err
		}
	}
}

func fallbackErrorMessage(t i18n.Translator) string {
	if t == nil {
		return "Something went wrong. Please try again later."
	}
	return t.T("errors.generic")
}
