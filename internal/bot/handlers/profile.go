package handlers

import (
	"log/slog"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/garden"
	"github.com/verdantlab/gardenbot/internal/i18n"
)

// NewProfileHandler renders the current user's profile and garden stats.
func NewProfileHandler(svc *garden.Service, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if svc == nil {
			log.Error("garden service not configured")
			return c.Send(t.T("errors.generic"))
		}

		user := svc.CurrentUser()

		var sb strings.Builder
		sb.WriteString(user.Avatar)
		sb.WriteString(" ")
		sb.WriteString(user.DisplayName)
		sb.WriteString(" (@")
		sb.WriteString(user.Handle)
		sb.WriteString(")")

		if bio := strings.TrimSpace(user.Bio); bio != "" {
			sb.WriteString("\n")
			sb.WriteString(bio)
		}

		sb.WriteString("\n\n")
		sb.WriteString(fill(t.T("profile.stats"), map[string]string{
			"Habits":  strconv.Itoa(len(svc.Habits())),
			"Friends": strconv.Itoa(len(svc.Friends())),
			"Posts":   strconv.Itoa(len(svc.Feed())),
		}))

		return c.Send(sb.String())
	}
}
