package handlers

import (
	"fmt"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/garden"
	"github.com/verdantlab/gardenbot/internal/i18n"
)

// achievementIcons maps catalog icon tokens to emojis.
var achievementIcons = map[string]string{
	"leaf":   "🍃",
	"star":   "⭐",
	"trophy": "🏆",
}

// NewAchievementsHandler renders the full achievement catalog with unlock
// status.
func NewAchievementsHandler(svc *garden.Service, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if svc == nil {
			log.Error("garden service not configured")
			return c.Send(t.T("errors.generic"))
		}

		achievements := svc.Achievements()

		unlocked := 0
		var sb strings.Builder
		sb.WriteString(t.T("achievements.header"))

		for _, achievement := range achievements {
			icon := achievementIcons[achievement.Icon]
			if icon == "" {
				icon = "🏅"
			}

			mark := "🔒"
			if achievement.Unlocked {
				mark = "✅"
				unlocked++
			}

			sb.WriteString(fmt.Sprintf("\n%s %s %s: %s", mark, icon, achievement.Name, achievement.Description))
		}

		sb.WriteString(fmt.Sprintf("\n\n%d/%d %s", unlocked, len(achievements), t.T("achievements.unlocked")))

		return c.Send(sb.String())
	}
}
