package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verdantlab/gardenbot/internal/bot"
	"github.com/verdantlab/gardenbot/internal/derive"
	"github.com/verdantlab/gardenbot/internal/flow"
	"github.com/verdantlab/gardenbot/internal/garden"
	"github.com/verdantlab/gardenbot/internal/health"
	"github.com/verdantlab/gardenbot/internal/i18n"
	"github.com/verdantlab/gardenbot/internal/idempotency"
	"github.com/verdantlab/gardenbot/internal/lifecycle"
	"github.com/verdantlab/gardenbot/internal/middleware"
	"github.com/verdantlab/gardenbot/internal/ratelimit"
	"github.com/verdantlab/gardenbot/internal/store"
	"github.com/verdantlab/gardenbot/pkg/config"
	"github.com/verdantlab/gardenbot/pkg/graceful"
	"github.com/verdantlab/gardenbot/pkg/logger"
	"github.com/verdantlab/gardenbot/pkg/metrics"
)

const (
	cleanupInterval   = 5 * time.Minute
	conversationTTL   = 30 * time.Minute
	rateLimitWindow   = time.Hour
	idempotencySweeps = time.Minute
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gardenbot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, levelVar := logger.New(cfg.Logging, cfg.Sentry.Enabled)
	slog.SetDefault(log)

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			return fmt.Errorf("init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	log.Info("starting gardenbot",
		slog.String("env", cfg.AppEnv),
		slog.String("port", cfg.Server.Port),
		slog.String("mode", cfg.Bot.Mode),
	)

	loc := time.UTC
	if cfg.Garden.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Garden.Timezone)
		if err != nil {
			return fmt.Errorf("load timezone %q: %w", cfg.Garden.Timezone, err)
		}
	}

	// Engine state lives for the lifetime of the process.
	gardenStore := store.New(derive.Catalog())
	gardenStore.Seed(time.Now().In(loc), cfg.Garden.SeedDemo)

	service := garden.NewService(gardenStore, log, garden.WithLocation(loc))

	translations, err := i18n.Load(cfg.Bot.Language)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	translator := translations.Translator(cfg.Bot.Language)

	conversationStorage := flow.NewMemoryStorage()
	machine := flow.NewMachine(conversationStorage, log)
	conversationCleaner := flow.NewCleaner(conversationStorage, log, cleanupInterval, conversationTTL)
	go conversationCleaner.Run(ctx)

	limiter := ratelimit.NewMemoryLimiter(log)
	rules := ratelimit.NewRules(cfg.RateLimit)
	rateLimitMw := middleware.NewRateLimitMiddleware(limiter, rules, log)
	limiterCleaner := ratelimit.NewCleaner(limiter, log, cleanupInterval, rateLimitWindow)
	go limiterCleaner.Run(ctx)

	idempotencyStore := idempotency.NewMemoryStore(log)
	idempotencyManager := idempotency.NewManager(idempotencyStore, log)
	idempotencyCleaner := idempotency.NewCleaner(idempotencyStore, log, idempotencySweeps)
	go idempotencyCleaner.Run(ctx)

	gardenBot, err := bot.New(*cfg, log, service, machine, idempotencyManager, rateLimitMw, translator)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	gardenCollector := metrics.NewGardenCollector(service)
	go gardenCollector.Run(ctx)

	checker := health.NewChecker(log)
	checker.AddCheck("store", health.NewStoreChecker(gardenStore))
	checker.AddCheck("telegram", health.NewTelegramChecker(gardenBot.Telebot()))

	probes := lifecycle.NewProbes(log, func(ctx context.Context) error {
		for name, result := range checker.Check(ctx) {
			if result != "OK" {
				return fmt.Errorf("%s: %s", name, result)
			}
		}
		return nil
	})

	opsServer := newOpsServer(cfg, log, checker, probes)

	config.Watch(v, log, func(updated *config.Config) {
		levelVar.Set(logger.ParseLevel(updated.Logging.Level))
	})

	shutdown := lifecycle.NewShutdown(log)
	shutdown.Register("telegram bot", func(context.Context) error {
		gardenBot.Stop()
		return nil
	})

	go gardenBot.Start()

	serveErr := opsServer.ListenAndServe(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := shutdown.Execute(shutdownCtx); err != nil {
		log.Error("shutdown finished with errors", slog.Any("error", err))
	}

	log.Info("gardenbot stopped")
	return serveErr
}

// newOpsServer exposes Prometheus metrics and health probes.
func newOpsServer(cfg *config.Config, log *slog.Logger, checker *health.Checker, probes lifecycle.HealthChecker) *graceful.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		results := checker.Check(r.Context())
		status := http.StatusOK
		for _, result := range results {
			if result != "OK" {
				status = http.StatusServiceUnavailable
				break
			}
		}

		w.WriteHeader(status)
		for name, result := range results {
			fmt.Fprintf(w, "%s: %s\n", name, result)
		}
	})
	mux.HandleFunc("/livez", func(w http.ResponseWriter, r *http.Request) {
		if err := probes.Liveness(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "OK")
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := probes.Readiness(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "OK")
	})

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: logger.HTTPMiddleware(log)(mux),
	}

	return graceful.NewServer(log, srv, cfg.Server.ShutdownTimeout)
}
