package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/keyboard"
	"github.com/verdantlab/gardenbot/internal/domain"
	"github.com/verdantlab/gardenbot/internal/flow"
	"github.com/verdantlab/gardenbot/internal/garden"
	"github.com/verdantlab/gardenbot/internal/i18n"
)

// Conversation context keys used by the habit creation flow.
const (
	ctxHabitName        = "habit_name"
	ctxHabitDescription = "habit_description"
	ctxHabitDuration    = "habit_duration"
)

// NewNewHabitHandler starts the habit creation conversation.
func NewNewHabitHandler(machine flow.Machine, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Sender() == nil || machine == nil {
			return nil
		}

		ctx := context.Background()
		userID := c.Sender().ID

		if err := machine.SetState(ctx, userID, flow.StateHabitName, nil); err != nil {
			log.Error("failed to start habit conversation", slog.Int64("user_id", userID), slog.Any("error", err))
			return err
		}

		return c.Send(t.T("habit.ask_name"), kb.CancelButton())
	}
}

// HandleHabitName stores the habit name and asks for a description.
func HandleHabitName(machine flow.Machine, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		name := strings.TrimSpace(c.Text())
		if name == "" {
			return c.Send(t.T("habit.ask_name"))
		}

		ctx := context.Background()
		userID := c.Sender().ID

		if err := machine.SetState(ctx, userID, flow.StateHabitDescription, map[string]interface{}{
			ctxHabitName: name,
		}); err != nil {
			log.Error("failed to advance habit conversation", slog.Int64("user_id", userID), slog.Any("error", err))
			return err
		}

		return c.Send(t.T("habit.ask_description"), kb.CancelButton())
	}
}

// HandleHabitDescription stores the description and asks for the duration.
// A single dash skips the description.
func HandleHabitDescription(machine flow.Machine, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		description := strings.TrimSpace(c.Text())
		if description == "-" {
			description = ""
		}

		ctx := context.Background()
		userID := c.Sender().ID

		data, err := conversationContext(ctx, machine, userID)
		if err != nil {
			return err
		}
		data[ctxHabitDescription] = description

		if err := machine.SetState(ctx, userID, flow.StateHabitDuration, data); err != nil {
			log.Error("failed to advance habit conversation", slog.Int64("user_id", userID), slog.Any("error", err))
			return err
		}

		return c.Send(t.T("habit.ask_duration"), kb.CancelButton())
	}
}

// HandleHabitDuration validates the day goal and asks for the plant type.
func HandleHabitDuration(machine flow.Machine, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		duration, err := strconv.Atoi(strings.TrimSpace(c.Text()))
		if err != nil || duration <= 0 {
			return c.Send(t.T("habit.invalid_duration"))
		}

		ctx := context.Background()
		userID := c.Sender().ID

		data, err := conversationContext(ctx, machine, userID)
		if err != nil {
			return err
		}
		data[ctxHabitDuration] = duration

		if err := machine.SetState(ctx, userID, flow.StateHabitPlant, data); err != nil {
			log.Error("failed to advance habit conversation", slog.Int64("user_id", userID), slog.Any("error", err))
			return err
		}

		return c.Send(t.T("habit.ask_plant"), kb.PlantButtons())
	}
}

// HandlePlantChoice finishes the conversation by planting the habit.
func HandlePlantChoice(machine flow.Machine, svc *garden.Service, t i18n.Translator, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		cb := c.Callback()
		if cb == nil || c.Sender() == nil || svc == nil {
			return nil
		}

		_, plant, err := keyboard.DecodeCallback(strings.TrimSpace(cb.Data))
		if err != nil {
			log.Warn("malformed plant callback", slog.String("data", cb.Data))
			return c.Respond(&telebot.CallbackResponse{Text: t.T("errors.generic")})
		}

		ctx := context.Background()
		userID := c.Sender().ID

		data, err := conversationContext(ctx, machine, userID)
		if err != nil {
			return err
		}

		input := garden.CreateHabitInput{
			Name:        stringValue(data[ctxHabitName]),
			Description: stringValue(data[ctxHabitDescription]),
			Duration:    intValue(data[ctxHabitDuration]),
			PlantType:   domain.PlantType(plant),
		}

		view, err := svc.CreateHabit(input)
		if err != nil {
			return err
		}

		if machine != nil {
			if clearErr := machine.ClearState(ctx, userID); clearErr != nil {
				log.Error("failed to clear habit conversation", slog.Int64("user_id", userID), slog.Any("error", clearErr))
			}
		}

		if err := c.Respond(&telebot.CallbackResponse{}); err != nil {
			log.Warn("failed to answer callback", slog.Any("error", err))
		}

		return c.Send(t.T("habit.created")+"\n"+habitLine(t, view), keyboard.MainMenu(t))
	}
}

// conversationContext returns a mutable copy of the stored flow context.
func conversationContext(ctx context.Context, machine flow.Machine, userID int64) (map[string]interface{}, error) {
	if machine == nil {
		return map[string]interface{}{}, nil
	}

	state, err := machine.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	if state == nil || state.Context == nil {
		return map[string]interface{}{}, nil
	}

	data := make(map[string]interface{}, len(state.Context))
	for key, value := range state.Context {
		data[key] = value
	}

	return data, nil
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

// intValue tolerates both int and float64 since conversation context may be
// round-tripped through JSON.
func intValue(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
