package keyboard

import (
	"log/slog"
	"strconv"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/domain"
	"github.com/verdantlab/gardenbot/internal/i18n"
)

// Callback prefixes understood by the bot router. They are duplicated here so
// the keyboard package stays independent of the bot package.
const (
	UniqueCheckIn  = "garden_checkin"
	UniqueDelete   = "garden_delete"
	UniquePlant    = "habit_plant"
	UniqueLike     = "feed_like"
	UniqueComment  = "feed_comment"
	UniqueFeedPage = "feed_page"
	UniqueCancel   = "cancel"
)

// plantEmojis maps plant types to the icon shown on selection buttons.
var plantEmojis = map[domain.PlantType]string{
	domain.PlantSunflower: "🌻",
	domain.PlantRose:      "🌹",
	domain.PlantCactus:    "🌵",
	domain.PlantFern:      "🌿",
	domain.PlantTulip:     "🌷",
	domain.PlantOrchid:    "🌺",
}

// PlantEmoji returns the icon for a plant type, falling back to a sprout.
func PlantEmoji(plant domain.PlantType) string {
	if emoji, ok := plantEmojis[plant]; ok {
		return emoji
	}
	return "🌱"
}

// Builder creates inline keyboards for garden interactions.
type Builder struct {
	t   i18n.Translator
	log *slog.Logger
}

// NewBuilder returns a new Builder instance.
func NewBuilder(t i18n.Translator, log *slog.Logger) *Builder {
	return &Builder{t: t, log: log}
}

// HabitActions builds the per-habit action row shown under a garden entry.
func (b *Builder) HabitActions(habitID string) *telebot.ReplyMarkup {
	return b.build(NewInlineKeyboard().AddRow(
		InlineButton{Text: translated(b.t, "habit.button_checkin", "✅ Check in"), Unique: UniqueCheckIn, Data: habitID},
		InlineButton{Text: translated(b.t, "habit.button_delete", "🗑 Remove"), Unique: UniqueDelete, Data: habitID},
	))
}

// CheckInButtons builds one check-in button per habit.
func (b *Builder) CheckInButtons(habits []domain.Habit) *telebot.ReplyMarkup {
	builder := NewInlineKeyboard()
	for _, habit := range habits {
		builder.AddRow(InlineButton{
			Text:   PlantEmoji(habit.PlantType) + " " + habit.Name,
			Unique: UniqueCheckIn,
			Data:   habit.ID,
		})
	}

	return b.build(builder)
}

// PlantButtons builds the plant type picker for habit creation.
func (b *Builder) PlantButtons() *telebot.ReplyMarkup {
	builder := NewInlineKeyboard()

	row := make([]InlineButton, 0, 3)
	for _, plant := range domain.PlantTypes {
		row = append(row, InlineButton{
			Text:   PlantEmoji(plant) + " " + string(plant),
			Unique: UniquePlant,
			Data:   string(plant),
		})
		if len(row) == 3 {
			builder.AddRow(row...)
			row = row[:0]
		}
	}
	if len(row) > 0 {
		builder.AddRow(row...)
	}

	return b.build(builder)
}

// PostActions builds the like and comment row shown under a feed post.
func (b *Builder) PostActions(postID string, likeCount int, likedByMe bool) *telebot.ReplyMarkup {
	likeIcon := "🤍"
	if likedByMe {
		likeIcon = "❤️"
	}

	return b.build(NewInlineKeyboard().AddRow(
		InlineButton{Text: likeIcon + " " + strconv.Itoa(likeCount), Unique: UniqueLike, Data: postID},
		InlineButton{Text: translated(b.t, "feed.button_comment", "💬 Comment"), Unique: UniqueComment, Data: postID},
	))
}

// FeedPagination builds a pagination row for the feed.
func (b *Builder) FeedPagination(page, totalPages int) *telebot.ReplyMarkup {
	buttons := PaginationButtons(b.t, UniqueFeedPage, page, totalPages)
	return b.build(NewInlineKeyboard().AddRow(buttons...))
}

// CancelButton builds a single cancel button for multi-step conversations.
func (b *Builder) CancelButton() *telebot.ReplyMarkup {
	return b.build(NewInlineKeyboard().AddRow(
		InlineButton{Text: "❌ " + translated(b.t, "cancel.done", "Cancel"), Unique: UniqueCancel},
	))
}

func (b *Builder) build(builder *InlineKeyboardBuilder) *telebot.ReplyMarkup {
	markup, err := builder.Build()
	if err != nil {
		if b.log != nil {
			b.log.Warn("inline keyboard dropped", slog.Any("error", err))
		}
		return &telebot.ReplyMarkup{}
	}
	return markup
}
