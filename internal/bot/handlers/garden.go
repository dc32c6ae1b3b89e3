package handlers

import (
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/keyboard"
	"github.com/verdantlab/gardenbot/internal/garden"
	"github.com/verdantlab/gardenbot/internal/i18n"
)

// NewGardenHandler renders the user's garden: every habit with its live
// progress, stage and streak, plus per-habit action buttons.
func NewGardenHandler(svc *garden.Service, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if svc == nil {
			log.Error("garden service not configured")
			return c.Send(t.T("errors.generic"))
		}

		habits := svc.Habits()
		if len(habits) == 0 {
			return c.Send(t.T("garden.empty"))
		}

		if err := c.Send(t.T("garden.header")); err != nil {
			return err
		}

		for _, view := range habits {
			text := habitLine(t, view)
			if desc := strings.TrimSpace(view.Description); desc != "" {
				text += "\n" + desc
			}

			if err := c.Send(text, kb.HabitActions(view.ID)); err != nil {
				return err
			}
		}

		return nil
	}
}

// HandleDeleteHabit removes a habit when its delete button is pressed.
func HandleDeleteHabit(svc *garden.Service, t i18n.Translator, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		cb := c.Callback()
		if cb == nil || svc == nil {
			return nil
		}

		_, habitID, err := keyboard.DecodeCallback(strings.TrimSpace(cb.Data))
		if err != nil || habitID == "" {
			log.Warn("malformed delete callback", slog.String("data", cb.Data))
			return c.Respond(&telebot.CallbackResponse{Text: t.T("errors.generic")})
		}

		if err := svc.DeleteHabit(habitID); err != nil {
			return err
		}

		if err := c.Respond(&telebot.CallbackResponse{Text: t.T("habit.deleted")}); err != nil {
			log.Warn("failed to answer callback", slog.Any("error", err))
		}

		return c.Send(t.T("habit.deleted"))
	}
}
