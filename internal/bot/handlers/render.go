package handlers

import (
	"fmt"
	"strings"

	"github.com/verdantlab/gardenbot/internal/bot/keyboard"
	"github.com/verdantlab/gardenbot/internal/derive"
	"github.com/verdantlab/gardenbot/internal/garden"
	"github.com/verdantlab/gardenbot/internal/i18n"
)

// stageIcons decorates the growth stage of a habit in list views.
var stageIcons = map[derive.Stage]string{
	derive.StageSeedling: "🌱",
	derive.StageGrowing:  "🌿",
	derive.StageMature:   "🌳",
}

func stageIcon(stage derive.Stage) string {
	if icon, ok := stageIcons[stage]; ok {
		return icon
	}
	return "🌱"
}

// habitLine renders one habit as a single feed-style line.
func habitLine(t i18n.Translator, view garden.HabitView) string {
	var sb strings.Builder

	sb.WriteString(keyboard.PlantEmoji(view.PlantType))
	sb.WriteString(" ")
	sb.WriteString(view.Name)
	sb.WriteString(fmt.Sprintf(" %s %d%%", stageIcon(view.Stage), view.Percent))
	sb.WriteString(fmt.Sprintf(" (%d/%d)", len(view.CheckIns), view.Duration))

	if view.Streak > 1 {
		sb.WriteString(fmt.Sprintf(" 🔥%d", view.Streak))
	}
	if view.Completed {
		sb.WriteString(" 🌼")
	} else if view.CheckedInToday {
		sb.WriteString(" ✅ " + t.T("garden.checked_today"))
	}

	return sb.String()
}

// fill substitutes {{.Name}} style placeholders in a translated string.
func fill(text string, values map[string]string) string {
	for name, value := range values {
		text = strings.ReplaceAll(text, "{{."+name+"}}", value)
	}
	return text
}
