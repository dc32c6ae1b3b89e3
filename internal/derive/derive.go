// Package derive computes habit growth and achievement unlocks from a
// snapshot of the garden. Every function here is pure: same snapshot in,
// same answer out, nothing mutated.
package derive

import (
	"math"
	"time"

	"github.com/verdantlab/gardenbot/internal/domain"
)

// Stage classifies a habit's completion ratio into three growth bands.
type Stage string

const (
	StageSeedling Stage = "seedling"
	StageGrowing  Stage = "growing"
	StageMature   Stage = "mature"
)

// Band thresholds are ratios of check-ins to duration, not of elapsed time.
const (
	seedlingBelow = 0.33
	growingBelow  = 0.66
)

// Ratio returns check-ins over duration, unclamped. A non-positive duration
// cannot pass command validation; it is still guarded here so derivation can
// never divide by zero.
func Ratio(habit *domain.Habit) float64 {
	if habit == nil || habit.Duration <= 0 {
		return 0
	}

	return float64(len(habit.CheckIns)) / float64(habit.Duration)
}

// Progress returns the completion ratio clamped to [0, 1].
func Progress(habit *domain.Habit) float64 {
	return math.Min(1, Ratio(habit))
}

// Percent returns the progress as a rounded whole percentage.
func Percent(habit *domain.Habit) int {
	return int(math.Round(Progress(habit) * 100))
}

// StageOf returns the growth band for the habit.
func StageOf(habit *domain.Habit) Stage {
	ratio := Ratio(habit)
	switch {
	case ratio < seedlingBelow:
		return StageSeedling
	case ratio < growingBelow:
		return StageGrowing
	default:
		return StageMature
	}
}

// Completed reports whether the habit reached its goal: enough check-ins OR
// enough elapsed whole days since creation. Either condition alone suffices,
// so a habit can complete purely by aging.
func Completed(habit *domain.Habit, now time.Time) bool {
	if habit == nil || habit.Duration <= 0 {
		return false
	}

	if len(habit.CheckIns) >= habit.Duration {
		return true
	}

	return daysSince(habit.CreatedAt, now) >= habit.Duration
}

func daysSince(created, now time.Time) int {
	elapsed := now.Sub(created)
	if elapsed < 0 {
		return 0
	}

	return int(elapsed.Hours() / 24)
}

// Snapshot is the aggregate state the achievement rules read.
type Snapshot struct {
	Habits      []*domain.Habit
	FriendCount int
	PostCount   int
	TotalLikes  int
	Now         time.Time
}

// Stats are the aggregates derived from a snapshot.
type Stats struct {
	HabitCount     int
	MaxCheckIns    int
	TotalCheckIns  int
	CompletedCount int
	FriendCount    int
	PostCount      int
	TotalLikes     int
}

// Collect reduces a snapshot to the aggregates the rules need.
func Collect(snap Snapshot) Stats {
	stats := Stats{
		HabitCount:  len(snap.Habits),
		FriendCount: snap.FriendCount,
		PostCount:   snap.PostCount,
		TotalLikes:  snap.TotalLikes,
	}

	for _, habit := range snap.Habits {
		count := len(habit.CheckIns)
		stats.TotalCheckIns += count
		if count > stats.MaxCheckIns {
			stats.MaxCheckIns = count
		}
		if Completed(habit, snap.Now) {
			stats.CompletedCount++
		}
	}

	return stats
}

// Evaluate walks the catalog in order and returns the ids of achievements
// whose rule is now met and whose flag is still locked. Each rule only ever
// selects its own entry, so evaluation order cannot change the outcome.
func Evaluate(snap Snapshot, catalog []domain.Achievement) []string {
	stats := Collect(snap)

	var unlocked []string
	for _, achievement := range catalog {
		if achievement.Unlocked {
			continue
		}

		rule, ok := rules[achievement.ID]
		if !ok {
			continue
		}

		if rule(stats) {
			unlocked = append(unlocked, achievement.ID)
		}
	}

	return unlocked
}
