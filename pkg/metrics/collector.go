// Package metrics exposes Prometheus instrumentation for the garden bot.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/verdantlab/gardenbot/internal/derive"
	"github.com/verdantlab/gardenbot/internal/flow"
	"github.com/verdantlab/gardenbot/internal/garden"
)

var (
	botCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Total number of bot commands received labeled by command and status",
		},
		[]string{"command", "status"},
	)
	commandDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "command_duration_seconds",
			Help:    "Duration of bot commands in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)
	conversationTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_transitions_total",
			Help: "Total number of conversation state transitions",
		},
		[]string{"from", "to"},
	)
	achievementUnlocksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_unlocks_total",
			Help: "Total number of achievement unlocks by achievement name",
		},
		[]string{"achievement"},
	)
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors split by type and severity",
		},
		[]string{"type", "severity"},
	)
	habitsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "garden_habits_active",
			Help: "Current number of habits in the garden",
		},
	)
	habitsByStage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "garden_habits_by_stage",
			Help: "Number of habits per growth stage",
		},
		[]string{"stage"},
	)
	friendsCurrent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "garden_friends",
			Help: "Current size of the friend roster",
		},
	)
	postsCurrent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "garden_posts",
			Help: "Current number of posts in the feed",
		},
	)
	achievementsUnlocked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "garden_achievements_unlocked",
			Help: "Number of unlocked achievements",
		},
	)
)

var trackedStages = []derive.Stage{
	derive.StageSeedling,
	derive.StageGrowing,
	derive.StageMature,
}

func init() {
	flow.RegisterTransitionRecorder(RecordConversationTransition)
	garden.RegisterUnlockRecorder(func(id, name string) {
		RecordAchievementUnlock(name)
	})
}

// RecordCommand increments command counters and records duration.
func RecordCommand(command, status string, duration time.Duration) {
	if command == "" {
		command = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	botCommandsTotal.WithLabelValues(command, status).Inc()
	commandDurationSeconds.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordConversationTransition tracks conversation state changes.
func RecordConversationTransition(from, to string) {
	if from == "" {
		from = "unknown"
	}
	if to == "" {
		to = "unknown"
	}

	conversationTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordAchievementUnlock tracks a single achievement unlock.
func RecordAchievementUnlock(name string) {
	if name == "" {
		name = "unknown"
	}

	achievementUnlocksTotal.WithLabelValues(name).Inc()
}

// RecordError increments error counters with metadata.
func RecordError(errType, severity string) {
	if errType == "" {
		errType = "unknown"
	}
	if severity == "" {
		severity = "unknown"
	}

	errorsTotal.WithLabelValues(errType, severity).Inc()
}

// GardenCollector periodically gathers garden aggregates into gauges.
type GardenCollector struct {
	service *garden.Service
}

// NewGardenCollector builds a collector bound to the query facade.
func NewGardenCollector(service *garden.Service) *GardenCollector {
	return &GardenCollector{service: service}
}

// Run polls the garden every 10 seconds until ctx is cancelled.
func (c *GardenCollector) Run(ctx context.Context) {
	if c == nil || c.service == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		c.collect()

		select {
		case <-ctx.Done():
			return
		case <-time.After(10 * time.Second):
		}
	}
}

func (c *GardenCollector) collect() {
	habits := c.service.Habits()
	habitsActive.Set(float64(len(habits)))

	stageCounts := make(map[derive.Stage]int, len(trackedStages))
	for _, habit := range habits {
		stageCounts[habit.Stage]++
	}

	habitsByStage.Reset()
	for _, stage := range trackedStages {
		habitsByStage.WithLabelValues(string(stage)).Set(float64(stageCounts[stage]))
	}

	friendsCurrent.Set(float64(len(c.service.Friends())))
	postsCurrent.Set(float64(len(c.service.Feed())))

	unlocked := 0
	for _, achievement := range c.service.Achievements() {
		if achievement.Unlocked {
			unlocked++
		}
	}
	achievementsUnlocked.Set(float64(unlocked))
}
