package bot

import (
	"context"
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/verdantlab/gardenbot/internal/bot/handlers"
	"github.com/verdantlab/gardenbot/internal/bot/keyboard"
	errors "github.com/verdantlab/gardenbot/internal/errors"
	"github.com/verdantlab/gardenbot/internal/flow"
	"github.com/verdantlab/gardenbot/internal/garden"
	"github.com/verdantlab/gardenbot/internal/i18n"
	"github.com/verdantlab/gardenbot/internal/idempotency"
	"github.com/verdantlab/gardenbot/internal/middleware"
	"github.com/verdantlab/gardenbot/pkg/config"
)

// Bot wraps telebot.Bot with application dependencies required for handling updates.
type Bot struct {
	telebot            *telebot.Bot
	log                *slog.Logger
	cfg                config.Config
	service            *garden.Service
	machine            flow.Machine
	rateLimitMw        *middleware.RateLimitMiddleware
	router             *Router
	dispatcher         *Dispatcher
	keyboard           *keyboard.Builder
	translator         i18n.Translator
	errHandler         *errors.Handler
	idempotencyManager idempotency.Manager
	breaker            *errors.CircuitBreaker
}

// New builds a telegram bot instance configured according to the application settings.
func New(
	cfg config.Config,
	log *slog.Logger,
	service *garden.Service,
	machine flow.Machine,
	idempotencyManager idempotency.Manager,
	rateLimitMw *middleware.RateLimitMiddleware,
	translator i18n.Translator,
) (*Bot, error) {
	settings := telebot.Settings{
		Token: cfg.Bot.Token,
	}

	if cfg.Bot.Mode == "webhook" {
		settings.Poller = &telebot.Webhook{
			Listen: cfg.Server.Port,
		}
	} else {
		settings.Poller = &telebot.LongPoller{
			Timeout: cfg.Bot.Timeout,
		}
	}

	// Telegram occasionally rejects the initial getMe call during rollouts,
	// so bot creation retries with backoff before giving up.
	var tb *telebot.Bot
	err := errors.WithRetry(context.Background(), func() error {
		var initErr error
		tb, initErr = telebot.NewBot(settings)
		if initErr != nil {
			return errors.NewTelegramError(initErr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	kb := keyboard.NewBuilder(translator, log)
	dispatcher := NewDispatcher(machine, log)
	router := NewRouter(dispatcher, log)
	errHandler := errors.NewHandler(log, cfg.Sentry.Enabled)

	b := &Bot{
		telebot:            tb,
		log:                log,
		cfg:                cfg,
		service:            service,
		machine:            machine,
		rateLimitMw:        rateLimitMw,
		router:             router,
		dispatcher:         dispatcher,
		keyboard:           kb,
		translator:         translator,
		errHandler:         errHandler,
		idempotencyManager: idempotencyManager,
		breaker:            errors.NewCircuitBreaker(),
	}

	b.setupRouter()

	if b.rateLimitMw != nil {
		b.telebot.Use(b.rateLimitMw.Handle)
	}

	b.registerTelebotHandlers()

	return b, nil
}

// Start runs the telegram bot event loop.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	if b.log != nil {
		b.log.Info("stopping telegram bot...")
	}

	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for integrations such as health checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

func (b *Bot) setupRouter() {
	if b.router == nil {
		return
	}

	b.router.Use(RecoveryMiddleware(b.log, b.errHandler, b.translator))
	b.router.Use(middleware.Idempotency(b.idempotencyManager, b.log))
	b.router.Use(ErrorHandlingMiddleware(b.errHandler, b.translator))
	b.router.Use(LoggingMiddleware(b.log))
	b.router.Use(middleware.Metrics)
	b.router.Use(CircuitBreakerMiddleware(b.breaker, b.log))

	svc, machine, kb, t, log := b.service, b.machine, b.keyboard, b.translator, b.log

	gardenHandler := handlers.NewGardenHandler(svc, kb, t, log)
	checkInHandler := handlers.NewCheckInHandler(svc, kb, t, log)
	friendsHandler := handlers.NewFriendsHandler(svc, t, log)
	feedHandler := handlers.NewFeedHandler(svc, kb, t, log)
	achievementsHandler := handlers.NewAchievementsHandler(svc, t, log)
	profileHandler := handlers.NewProfileHandler(svc, t, log)
	startHandler := handlers.NewStartHandler(machine, t, log)

	b.router.RegisterCommand(CommandStart, startHandler)
	b.router.RegisterCommand(CommandHelp, startHandler)
	b.router.RegisterCommand(CommandGarden, gardenHandler)
	b.router.RegisterCommand(CommandNewHabit, handlers.NewNewHabitHandler(machine, kb, t, log))
	b.router.RegisterCommand(CommandCheckIn, checkInHandler)
	b.router.RegisterCommand(CommandFriends, friendsHandler)
	b.router.RegisterCommand(CommandAddFriend, b.withCommandLimit("addfriend", handlers.NewAddFriendHandler(machine, kb, t, log)))
	b.router.RegisterCommand(CommandFeed, feedHandler)
	b.router.RegisterCommand(CommandPost, handlers.NewPostHandler(machine, kb, t, log))
	b.router.RegisterCommand(CommandAchievements, achievementsHandler)
	b.router.RegisterCommand(CommandProfile, profileHandler)
	b.router.RegisterCommand(CommandCancel, handlers.NewCancelHandler(machine, t, log))

	b.router.RegisterCallback(CallbackCheckIn, handlers.CallbackHandler(b.withCommandLimit("checkin", handlers.Handler(handlers.HandleCheckIn(svc, t, log)))))
	b.router.RegisterCallback(CallbackDeleteHabit, handlers.HandleDeleteHabit(svc, t, log))
	b.router.RegisterCallback(CallbackPlant, handlers.HandlePlantChoice(machine, svc, t, log))
	b.router.RegisterCallback(CallbackLike, handlers.HandleLike(svc, kb, t, log))
	b.router.RegisterCallback(CallbackComment, handlers.HandleCommentStart(machine, kb, t, log))
	b.router.RegisterCallback(CallbackFeedPage, handlers.HandleFeedPage(svc, kb, t, log))
	b.router.RegisterCallback(CallbackCancel, handlers.CallbackHandler(handlers.NewCancelHandler(machine, t, log)))

	// Conversation steps.
	b.dispatcher.RegisterStateHandler(flow.StateHabitName, handlers.HandleHabitName(machine, kb, t, log))
	b.dispatcher.RegisterStateHandler(flow.StateHabitDescription, handlers.HandleHabitDescription(machine, kb, t, log))
	b.dispatcher.RegisterStateHandler(flow.StateHabitDuration, handlers.HandleHabitDuration(machine, kb, t, log))
	b.dispatcher.RegisterStateHandler(flow.StateAddingFriend, handlers.HandleFriendHandle(machine, svc, t, log))
	b.dispatcher.RegisterStateHandler(flow.StatePosting, b.withCommandLimit("post", handlers.HandlePostContent(machine, svc, t, log)))
	b.dispatcher.RegisterStateHandler(flow.StateCommenting, handlers.HandleCommentContent(machine, svc, t, log))

	// Reply keyboard buttons arrive as plain text.
	b.router.SetDefault(b.menuHandler(map[string]handlers.Handler{
		t.T("menu.garden"):       gardenHandler,
		t.T("menu.checkin"):      checkInHandler,
		t.T("menu.friends"):      friendsHandler,
		t.T("menu.feed"):         feedHandler,
		t.T("menu.achievements"): achievementsHandler,
		t.T("menu.profile"):      profileHandler,
	}))
}

// menuHandler maps localized main menu labels onto their command handlers.
func (b *Bot) menuHandler(routes map[string]handlers.Handler) handlers.Handler {
	return func(c telebot.Context) error {
		if c == nil {
			return nil
		}

		if handler, ok := routes[c.Text()]; ok {
			return handler(c)
		}

		return c.Send(b.translator.T("menu.title"), keyboard.MainMenu(b.translator))
	}
}

func (b *Bot) withCommandLimit(command string, h handlers.Handler) handlers.Handler {
	if b.rateLimitMw == nil {
		return h
	}
	return b.rateLimitMw.CommandLimit(command)(h)
}

func (b *Bot) registerTelebotHandlers() {
	if b.telebot == nil || b.router == nil {
		return
	}

	b.telebot.Handle(telebot.OnText, b.router.Route)
	b.telebot.Handle(telebot.OnCallback, b.router.Route)
}
