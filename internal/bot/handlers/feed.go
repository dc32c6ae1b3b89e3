package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/keyboard"
	"github.com/verdantlab/gardenbot/internal/flow"
	"github.com/verdantlab/gardenbot/internal/garden"
	"github.com/verdantlab/gardenbot/internal/i18n"
)

// feedPageSize is how many posts are shown per feed page.
const feedPageSize = 5

// ctxCommentPostID stores the target post id while composing a comment.
const ctxCommentPostID = "comment_post_id"

// NewFeedHandler renders the first page of the community feed.
func NewFeedHandler(svc *garden.Service, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		return sendFeedPage(c, svc, kb, t, 1)
	}
}

// HandleFeedPage flips between feed pages.
func HandleFeedPage(svc *garden.Service, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		_, pageData, err := keyboard.DecodeCallback(strings.TrimSpace(cb.Data))
		if err != nil {
			log.Warn("malformed feed page callback", slog.String("data", cb.Data))
			return c.Respond(&telebot.CallbackResponse{Text: t.T("errors.generic")})
		}

		page, err := strconv.Atoi(pageData)
		if err != nil || page < 1 {
			page = 1
		}

		if err := c.Respond(&telebot.CallbackResponse{}); err != nil {
			log.Warn("failed to answer callback", slog.Any("error", err))
		}

		return sendFeedPage(c, svc, kb, t, page)
	}
}

func sendFeedPage(c telebot.Context, svc *garden.Service, kb *keyboard.Builder, t i18n.Translator, page int) error {
	if svc == nil {
		return c.Send(t.T("errors.generic"))
	}

	posts := svc.Feed()
	if len(posts) == 0 {
		return c.Send(t.T("feed.empty"))
	}

	totalPages := (len(posts) + feedPageSize - 1) / feedPageSize
	if page > totalPages {
		page = totalPages
	}

	if err := c.Send(t.T("feed.header")); err != nil {
		return err
	}

	start := (page - 1) * feedPageSize
	end := start + feedPageSize
	if end > len(posts) {
		end = len(posts)
	}

	for _, view := range posts[start:end] {
		if err := c.Send(renderPost(view), kb.PostActions(view.ID, view.LikeCount, view.LikedByMe)); err != nil {
			return err
		}
	}

	if totalPages > 1 {
		return c.Send(t.T("feed.header"), kb.FeedPagination(page, totalPages))
	}

	return nil
}

func renderPost(view garden.PostView) string {
	var sb strings.Builder

	sb.WriteString(view.Author.Avatar)
	sb.WriteString(" ")
	sb.WriteString(view.Author.DisplayName)
	sb.WriteString(" (@")
	sb.WriteString(view.Author.Handle)
	sb.WriteString(")\n")
	sb.WriteString(view.Content)

	for _, comment := range view.Comments {
		sb.WriteString("\n  💬 ")
		sb.WriteString(comment.Content)
	}

	return sb.String()
}

// NewPostHandler starts the post composition conversation.
func NewPostHandler(machine flow.Machine, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Sender() == nil || machine == nil {
			return nil
		}

		userID := c.Sender().ID
		if err := machine.SetState(context.Background(), userID, flow.StatePosting, nil); err != nil {
			log.Error("failed to start posting conversation", slog.Int64("user_id", userID), slog.Any("error", err))
			return err
		}

		return c.Send(t.T("feed.ask_post"), kb.CancelButton())
	}
}

// HandlePostContent publishes the composed post to the feed.
func HandlePostContent(machine flow.Machine, svc *garden.Service, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if svc == nil {
			return c.Send(t.T("errors.generic"))
		}

		if _, err := svc.CreatePost(c.Text()); err != nil {
			return err
		}

		if machine != nil && c.Sender() != nil {
			if clearErr := machine.ClearState(context.Background(), c.Sender().ID); clearErr != nil {
				log.Error("failed to clear posting conversation", slog.Any("error", clearErr))
			}
		}

		return c.Send(t.T("feed.posted"), keyboard.MainMenu(t))
	}
}

// HandleLike toggles the current user's like on a post.
func HandleLike(svc *garden.Service, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		cb := c.Callback()
		if cb == nil || svc == nil {
			return nil
		}

		_, postID, err := keyboard.DecodeCallback(strings.TrimSpace(cb.Data))
		if err != nil || postID == "" {
			log.Warn("malformed like callback", slog.String("data", cb.Data))
			return c.Respond(&telebot.CallbackResponse{Text: t.T("errors.generic")})
		}

		view, err := svc.ToggleLike(postID)
		if err != nil {
			return err
		}

		if err := c.Respond(&telebot.CallbackResponse{}); err != nil {
			log.Warn("failed to answer callback", slog.Any("error", err))
		}

		// Refresh the post's button row so the like count stays accurate.
		return c.Edit(renderPost(view), kb.PostActions(view.ID, view.LikeCount, view.LikedByMe))
	}
}

// HandleCommentStart begins the comment conversation for a post.
func HandleCommentStart(machine flow.Machine, kb *keyboard.Builder, t i18n.Translator, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		cb := c.Callback()
		if cb == nil || c.Sender() == nil || machine == nil {
			return nil
		}

		_, postID, err := keyboard.DecodeCallback(strings.TrimSpace(cb.Data))
		if err != nil || postID == "" {
			log.Warn("malformed comment callback", slog.String("data", cb.Data))
			return c.Respond(&telebot.CallbackResponse{Text: t.T("errors.generic")})
		}

		userID := c.Sender().ID
		if err := machine.SetState(context.Background(), userID, flow.StateCommenting, map[string]interface{}{
			ctxCommentPostID: postID,
		}); err != nil {
			log.Error("failed to start comment conversation", slog.Int64("user_id", userID), slog.Any("error", err))
			return err
		}

		if err := c.Respond(&telebot.CallbackResponse{}); err != nil {
			log.Warn("failed to answer callback", slog.Any("error", err))
		}

		return c.Send(t.T("feed.ask_comment"), kb.CancelButton())
	}
}

// HandleCommentContent attaches the composed comment to its post.
func HandleCommentContent(machine flow.Machine, svc *garden.Service, t i18n.Translator, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if svc == nil || c.Sender() == nil {
			return c.Send(t.T("errors.generic"))
		}

		ctx := context.Background()
		userID := c.Sender().ID

		data, err := conversationContext(ctx, machine, userID)
		if err != nil {
			return err
		}

		postID := stringValue(data[ctxCommentPostID])
		if postID == "" {
			log.Warn("comment conversation without post id", slog.Int64("user_id", userID))
			return c.Send(t.T("errors.generic"))
		}

		if _, err := svc.AddComment(postID, c.Text()); err != nil {
			return err
		}

		if machine != nil {
			if clearErr := machine.ClearState(ctx, userID); clearErr != nil {
				log.Error("failed to clear comment conversation", slog.Any("error", clearErr))
			}
		}

		return c.Send(t.T("feed.commented"), keyboard.MainMenu(t))
	}
}
