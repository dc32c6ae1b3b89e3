package handlers

import (
	"context"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/keyboard"
	"github.com/verdantlab/gardenbot/internal/flow"
	"github.com/verdantlab/gardenbot/internal/garden"
	"github.com/verdantlab/gardenbot/internal/i18n"
)

// NewFriendsHandler lists the user's friends and a snapshot of their gardens.
func NewFriendsHandler(svc *garden.Service, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if svc == nil {
			log.Error("garden service not configured")
			return c.Send(t.T("errors.generic"))
		}

		friends := svc.Friends()
		if len(friends) == 0 {
			return c.Send(t.T("friends.empty"))
		}

		var sb strings.Builder
		sb.WriteString(t.T("friends.header"))
		for _, friend := range friends {
			sb.WriteString("\n")
			sb.WriteString(friend.Avatar)
			sb.WriteString(" ")
			sb.WriteString(friend.DisplayName)
			sb.WriteString(" (@")
			sb.WriteString(friend.Handle)
			sb.WriteString(")")

			for _, view := range svc.FriendHabits(friend.ID) {
				sb.WriteString("\n  ")
				sb.WriteString(habitLine(t, view))
			}
		}

		return c.Send(sb.String())
	}
}

// NewAddFriendHandler starts the add-friend conversation.
func NewAddFriendHandler(machine flow.Machine, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Sender() == nil || machine == nil {
			return nil
		}

		userID := c.Sender().ID
		if err := machine.SetState(context.Background(), userID, flow.StateAddingFriend, nil); err != nil {
			log.Error("failed to start add-friend conversation", slog.Int64("user_id", userID), slog.Any("error", err))
			return err
		}

		return c.Send(t.T("friends.ask_handle"), kb.CancelButton())
	}
}

// HandleFriendHandle resolves the handle the user typed and adds the friend.
func HandleFriendHandle(machine flow.Machine, svc *garden.Service, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if svc == nil {
			return c.Send(t.T("errors.generic"))
		}

		friend, err := svc.AddFriend(c.Text())
		if err != nil {
			return err
		}

		if machine != nil && c.Sender() != nil {
			if clearErr := machine.ClearState(context.Background(), c.Sender().ID); clearErr != nil {
				log.Error("failed to clear add-friend conversation", slog.Any("error", clearErr))
			}
		}

		return c.Send(t.T("friends.added")+" "+friend.Avatar+" "+friend.DisplayName, keyboard.MainMenu(t))
	}
}
