package keyboard

import (
	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/i18n"
)

// MainMenu builds a localized reply keyboard for the bot main menu.
func MainMenu(t i18n.Translator) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: false,
	}

	lookup := func(key string) string {
		if t == nil {
			return key
		}
		return t.T(key)
	}

	gardenBtn := markup.Text(lookup("menu.garden"))
	checkInBtn := markup.Text(lookup("menu.checkin"))
	friendsBtn := markup.Text(lookup("menu.friends"))
	feedBtn := markup.Text(lookup("menu.feed"))
	achievementsBtn := markup.Text(lookup("menu.achievements"))
	profileBtn := markup.Text(lookup("menu.profile"))

	markup.Reply(
		markup.Row(gardenBtn, checkInBtn),
		markup.Row(friendsBtn, feedBtn),
		markup.Row(achievementsBtn, profileBtn),
	)

	return markup
}
