package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/keyboard"
	"github.com/verdantlab/gardenbot/internal/flow"
	"github.com/verdantlab/gardenbot/internal/i18n"
)

// NewCancelHandler resets conversation state and returns to the main menu.
func NewCancelHandler(machine flow.Machine, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Sender() == nil {
			log.Warn("cancel handler invoked without sender")
			return nil
		}

		if machine != nil {
			if err := machine.ClearState(context.Background(), c.Sender().ID); err != nil {
				log.Error("failed to clear conversation state", slog.Int64("user_id", c.Sender().ID), slog.Any("error", err))
				return err
			}
		}

		if cb := c.Callback(); cb != nil {
			if err := c.Respond(&telebot.CallbackResponse{}); err != nil {
				log.Warn("failed to answer callback", slog.Any("error", err))
			}
		}

		return c.Send(t.T("cancel.done"), keyboard.MainMenu(t))
	}
}
