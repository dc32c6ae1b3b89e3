package derive

import (
	"fmt"
	"testing"
	"time"

	"github.com/verdantlab/gardenbot/internal/domain"
)

func day(base time.Time, offset int) string {
	return base.AddDate(0, 0, offset).Format(domain.DayFormat)
}

func habitWithCheckIns(duration, checkIns int, createdAt time.Time) *domain.Habit {
	habit := &domain.Habit{
		ID:        "h1",
		Name:      "Test Habit",
		Duration:  duration,
		PlantType: domain.PlantSunflower,
		CreatedAt: createdAt,
	}
	for i := 0; i < checkIns; i++ {
		habit.CheckIns = append(habit.CheckIns, day(createdAt, i))
	}
	return habit
}

func TestProgress(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		duration int
		checkIns int
		expected float64
	}{
		{name: "empty habit", duration: 30, checkIns: 0, expected: 0},
		{name: "halfway", duration: 30, checkIns: 15, expected: 0.5},
		{name: "full", duration: 30, checkIns: 30, expected: 1},
		{name: "clamped above one", duration: 10, checkIns: 25, expected: 1},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			habit := habitWithCheckIns(tc.duration, tc.checkIns, now)
			if got := Progress(habit); got != tc.expected {
				t.Errorf("Progress() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestProgressZeroDuration(t *testing.T) {
	habit := &domain.Habit{Duration: 0, CheckIns: []string{"2025-06-01"}}
	if got := Progress(habit); got != 0 {
		t.Errorf("Progress() with zero duration = %v, expected 0", got)
	}
}

func TestPercentRounds(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// 1/3 rounds to 33, 2/3 rounds to 67.
	if got := Percent(habitWithCheckIns(3, 1, now)); got != 33 {
		t.Errorf("Percent(1/3) = %d, expected 33", got)
	}
	if got := Percent(habitWithCheckIns(3, 2, now)); got != 67 {
		t.Errorf("Percent(2/3) = %d, expected 67", got)
	}
}

func TestStageOf(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		duration int
		checkIns int
		expected Stage
	}{
		{name: "fresh habit is seedling", duration: 30, checkIns: 0, expected: StageSeedling},
		{name: "just under first band", duration: 100, checkIns: 32, expected: StageSeedling},
		{name: "at first band is growing", duration: 100, checkIns: 33, expected: StageGrowing},
		{name: "just under second band", duration: 100, checkIns: 65, expected: StageGrowing},
		{name: "at second band is mature", duration: 100, checkIns: 66, expected: StageMature},
		{name: "complete is mature", duration: 30, checkIns: 30, expected: StageMature},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			habit := habitWithCheckIns(tc.duration, tc.checkIns, now)
			if got := StageOf(habit); got != tc.expected {
				t.Errorf("StageOf() = %s, expected %s", got, tc.expected)
			}
		})
	}
}

func TestCompleted(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		duration int
		checkIns int
		now      time.Time
		expected bool
	}{
		{name: "new habit not complete", duration: 30, checkIns: 0, now: created, expected: false},
		{name: "check-in count reaches goal", duration: 7, checkIns: 7, now: created, expected: true},
		{name: "elapsed days reach goal", duration: 7, checkIns: 2, now: created.AddDate(0, 0, 7), expected: true},
		{name: "one day short", duration: 7, checkIns: 2, now: created.AddDate(0, 0, 6), expected: false},
		{name: "clock behind creation", duration: 7, checkIns: 0, now: created.AddDate(0, 0, -3), expected: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			habit := habitWithCheckIns(tc.duration, tc.checkIns, created)
			if got := Completed(habit, tc.now); got != tc.expected {
				t.Errorf("Completed() = %t, expected %t", got, tc.expected)
			}
		})
	}
}

func TestEvaluateThresholds(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		snap     Snapshot
		expected []string
	}{
		{
			name:     "single habit unlocks first seed",
			snap:     Snapshot{Habits: []*domain.Habit{habitWithCheckIns(30, 0, now)}, Now: now},
			expected: []string{"1"},
		},
		{
			name: "seven check-ins unlock week warrior",
			snap: Snapshot{Habits: []*domain.Habit{habitWithCheckIns(30, 7, now)}, Now: now},
			expected: []string{"1", "2"},
		},
		{
			name: "completed habit unlocks full bloom",
			snap: Snapshot{Habits: []*domain.Habit{habitWithCheckIns(7, 7, now)}, Now: now},
			expected: []string{"1", "2", "6"},
		},
		{
			name:     "three friends unlock social butterfly",
			snap:     Snapshot{FriendCount: 3, Now: now},
			expected: []string{"4"},
		},
		{
			name:     "five friends unlock both friend tiers",
			snap:     Snapshot{FriendCount: 5, Now: now},
			expected: []string{"4", "10"},
		},
		{
			name:     "ten posts unlock social star",
			snap:     Snapshot{PostCount: 10, Now: now},
			expected: []string{"9"},
		},
		{
			name:     "fifty likes unlock engagement expert",
			snap:     Snapshot{TotalLikes: 50, Now: now},
			expected: []string{"12"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			catalog := make([]domain.Achievement, 0, 12)
			for _, achievement := range Catalog() {
				catalog = append(catalog, *achievement)
			}

			got := Evaluate(tc.snap, catalog)
			if fmt.Sprint(got) != fmt.Sprint(tc.expected) {
				t.Errorf("Evaluate() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestEvaluateSkipsUnlocked(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	catalog := make([]domain.Achievement, 0, 12)
	for _, achievement := range Catalog() {
		copied := *achievement
		if copied.ID == "1" {
			copied.Unlocked = true
		}
		catalog = append(catalog, copied)
	}

	// Already unlocked entries are never reported again, even while their
	// rule still holds.
	got := Evaluate(Snapshot{Habits: []*domain.Habit{habitWithCheckIns(30, 0, now)}, Now: now}, catalog)
	if len(got) != 0 {
		t.Errorf("Evaluate() = %v, expected no new unlocks", got)
	}
}

func TestCollectAggregates(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	snap := Snapshot{
		Habits: []*domain.Habit{
			habitWithCheckIns(30, 12, now),
			habitWithCheckIns(5, 5, now),
			habitWithCheckIns(60, 3, now),
		},
		FriendCount: 2,
		PostCount:   4,
		TotalLikes:  9,
		Now:         now,
	}

	stats := Collect(snap)

	if stats.HabitCount != 3 {
		t.Errorf("HabitCount = %d, expected 3", stats.HabitCount)
	}
	if stats.MaxCheckIns != 12 {
		t.Errorf("MaxCheckIns = %d, expected 12", stats.MaxCheckIns)
	}
	if stats.TotalCheckIns != 20 {
		t.Errorf("TotalCheckIns = %d, expected 20", stats.TotalCheckIns)
	}
	if stats.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, expected 1", stats.CompletedCount)
	}
	if stats.FriendCount != 2 || stats.PostCount != 4 || stats.TotalLikes != 9 {
		t.Errorf("pass-through aggregates wrong: %+v", stats)
	}
}
