package handlers

import (
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/keyboard"
	"github.com/verdantlab/gardenbot/internal/domain"
	"github.com/verdantlab/gardenbot/internal/garden"
	"github.com/verdantlab/gardenbot/internal/i18n"
)

// NewCheckInHandler shows a button per habit so the user can pick which one
// to check in.
func NewCheckInHandler(svc *garden.Service, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if svc == nil {
			log.Error("garden service not configured")
			return c.Send(t.T("errors.generic"))
		}

		views := svc.Habits()
		if len(views) == 0 {
			return c.Send(t.T("checkin.none"))
		}

		habits := make([]domain.Habit, 0, len(views))
		for _, view := range views {
			habits = append(habits, view.Habit)
		}

		return c.Send(t.T("checkin.pick"), kb.CheckInButtons(habits))
	}
}

// HandleCheckIn records a daily check-in from an inline button press.
func HandleCheckIn(svc *garden.Service, t i18n.Translator, log *slog.Logger) CallbackHandler {
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
			log.Warn("malformed check-in callback", slog.String("data", cb.Data))
			return c.Respond(&telebot.CallbackResponse{Text: t.T("errors.generic")})
		}

		view, appended, err := svc.CheckIn(habitID)
		if err != nil {
			return err
		}

		reply := t.T("checkin.done")
		if !appended {
			reply = t.T("checkin.already")
		}

		if err := c.Respond(&telebot.CallbackResponse{Text: reply}); err != nil {
			log.Warn("failed to answer callback", slog.Any("error", err))
		}

		text := reply + "\n" + habitLine(t, view)
		if view.Completed {
			text += "\n" + t.T("checkin.completed")
		}

		return c.Send(text)
	}
}
