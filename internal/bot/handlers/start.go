package handlers

import (
	"context"
	"errors"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/keyboard"
	"github.com/verdantlab/gardenbot/internal/flow"
	"github.com/verdantlab/gardenbot/internal/i18n"
)

// NewStartHandler greets the user, resets any stale conversation and shows
// the main menu.
func NewStartHandler(machine flow.Machine, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Sender() == nil {
			log.Warn("start handler invoked without sender")
			return nil
		}

		ctx := context.Background()
		userID := c.Sender().ID

		welcome := t.T("start.welcome")
		if machine != nil {
			_, err := machine.GetState(ctx, userID)
			switch {
			case err == nil:
				welcome = t.T("start.welcome_back")
				if clearErr := machine.ClearState(ctx, userID); clearErr != nil {
					log.Error("failed to reset conversation state", slog.Int64("user_id", userID), slog.Any("error", clearErr))
				}
			case errors.Is(err, flow.ErrStateNotFound):
				if setErr := machine.SetState(ctx, userID, flow.StateIdle, nil); setErr != nil {
					log.Error("failed to set initial state", slog.Int64("user_id", userID), slog.Any("error", setErr))
				}
			default:
				log.Error("failed to fetch conversation state", slog.Int64("user_id", userID), slog.Any("error", err))
			}
		}

		return c.Send(welcome, keyboard.MainMenu(t))
	}
}
