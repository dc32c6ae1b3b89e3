package garden

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlab/gardenbot/internal/derive"
	"github.com/verdantlab/gardenbot/internal/domain"
	apperrors "github.com/verdantlab/gardenbot/internal/errors"
	"github.com/verdantlab/gardenbot/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testClock is a controllable clock for deterministic day boundaries.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T) (*Service, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	gardenStore := store.New(derive.Catalog())
	gardenStore.SetUsers(store.Roster(), store.CurrentUserID)

	svc := NewService(gardenStore, testLogger(), WithClock(clock.Now))
	return svc, clock
}

func validHabitInput() CreateHabitInput {
	return CreateHabitInput{
		Name:      "Morning Run",
		Duration:  7,
		PlantType: domain.PlantSunflower,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateHabit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, _ := newTestService(t)

		view, err := svc.CreateHabit(validHabitInput())
		require.NoError(t, err)

		assert.NotEmpty(t, view.ID)
		assert.Equal(t, "Morning Run", view.Name)
		assert.Equal(t, derive.StageSeedling, view.Stage)
		assert.Equal(t, 0, view.Percent)
		assert.False(t, view.Completed)
		assert.Len(t, svc.Habits(), 1)
	})

	t.Run("invalid input leaves store untouched", func(t *testing.T) {
		svc, _ := newTestService(t)

		testCases := []struct {
			name  string
			input CreateHabitInput
		}{
			{name: "empty name", input: CreateHabitInput{Duration: 7, PlantType: domain.PlantRose}},
			{name: "zero duration", input: CreateHabitInput{Name: "x", PlantType: domain.PlantRose}},
			{name: "negative duration", input: CreateHabitInput{Name: "x", Duration: -3, PlantType: domain.PlantRose}},
			{name: "unknown plant", input: CreateHabitInput{Name: "x", Duration: 7, PlantType: "bonsai"}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.CreateHabit(tc.input)
				assertCode(t, err, "E100")
			})
		}

		assert.Empty(t, svc.Habits())
	})
}

func TestUpdateHabit(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.CreateHabit(validHabitInput())
	require.NoError(t, err)

	name := "Evening Run"
	duration := 14
	updated, err := svc.UpdateHabit(view.ID, store.HabitPatch{Name: &name, Duration: &duration})
	require.NoError(t, err)
	assert.Equal(t, "Evening Run", updated.Name)
	assert.Equal(t, 14, updated.Duration)

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateHabit("missing", store.HabitPatch{Name: &name})
		assertCode(t, err, "E200")
	})
}

func TestCheckInIdempotentWithinDay(t *testing.T) {
	svc, clock := newTestService(t)

	view, err := svc.CreateHabit(validHabitInput())
	require.NoError(t, err)

	first, appended, err := svc.CheckIn(view.ID)
	require.NoError(t, err)
	assert.True(t, appended)
	assert.True(t, first.CheckedInToday)
	assert.Len(t, first.CheckIns, 1)

	second, appended, err := svc.CheckIn(view.ID)
	require.NoError(t, err)
	assert.False(t, appended)
	assert.Len(t, second.CheckIns, 1)

	// The next calendar day accepts a new check-in.
	clock.Advance(24 * time.Hour)
	third, appended, err := svc.CheckIn(view.ID)
	require.NoError(t, err)
	assert.True(t, appended)
	assert.Len(t, third.CheckIns, 2)
}

func TestCheckInUnknownHabit(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.CheckIn("missing")
	assertCode(t, err, "E200")
}

func TestHabitCompletion(t *testing.T) {
	svc, clock := newTestService(t)

	input := validHabitInput()
	input.Duration = 3
	view, err := svc.CreateHabit(input)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		view, _, err = svc.CheckIn(view.ID)
		require.NoError(t, err)
		clock.Advance(24 * time.Hour)
	}

	assert.True(t, view.Completed)
	assert.Equal(t, derive.StageMature, view.Stage)
	assert.Equal(t, 100, view.Percent)

	// Full Bloom unlocks once the first habit completes.
	assert.True(t, achievementUnlocked(svc, "6"))
}

func TestHabitCompletionByElapsedTime(t *testing.T) {
	svc, clock := newTestService(t)

	input := validHabitInput()
	input.Duration = 5
	view, err := svc.CreateHabit(input)
	require.NoError(t, err)

	// No check-ins at all; the habit still completes when its window lapses.
	clock.Advance(5 * 24 * time.Hour)

	current, ok := svc.Habit(view.ID)
	require.True(t, ok)
	assert.True(t, current.Completed)
	assert.Equal(t, 0, current.Percent)
}

func TestDeleteHabit(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.CreateHabit(validHabitInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteHabit(view.ID))
	assert.Empty(t, svc.Habits())

	assertCode(t, svc.DeleteHabit(view.ID), "E200")
}

func TestAchievementsStayUnlockedAfterDeletion(t *testing.T) {
	svc, _ := newTestService(t)

	view, err := svc.CreateHabit(validHabitInput())
	require.NoError(t, err)

	// First Seed unlocks on creation.
	require.True(t, achievementUnlocked(svc, "1"))

	require.NoError(t, svc.DeleteHabit(view.ID))

	// The rule no longer holds, but the flag never reverts.
	assert.True(t, achievementUnlocked(svc, "1"))
}

func TestAddFriend(t *testing.T) {
	t.Run("success and uniqueness", func(t *testing.T) {
		svc, _ := newTestService(t)

		friend, err := svc.AddFriend("@mike_bloom")
		require.NoError(t, err)
		assert.Equal(t, "mike_bloom", friend.Handle)
		assert.Len(t, svc.Friends(), 1)

		_, err = svc.AddFriend("mike_bloom")
		assertCode(t, err, "E300")
		assert.Len(t, svc.Friends(), 1)
	})

	t.Run("handle lookup is case-insensitive", func(t *testing.T) {
		svc, _ := newTestService(t)

		friend, err := svc.AddFriend("Mike_Bloom")
		require.NoError(t, err)
		assert.Equal(t, "mike_bloom", friend.Handle)
	})

	t.Run("self", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.AddFriend("sarah_green")
		assertCode(t, err, "E300")
		assert.Empty(t, svc.Friends())
	})

	t.Run("unknown handle", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.AddFriend("nobody")
		assertCode(t, err, "E200")
	})

	t.Run("empty handle", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.AddFriend("@ ")
		assertCode(t, err, "E100")
	})
}

func TestFriendAchievements(t *testing.T) {
	svc, _ := newTestService(t)

	handles := []string{"mike_bloom", "emma_rose", "alex_leaf"}
	for _, handle := range handles {
		_, err := svc.AddFriend(handle)
		require.NoError(t, err)
	}

	// Social Butterfly needs 3 friends, Community Builder needs 5.
	assert.True(t, achievementUnlocked(svc, "4"))
	assert.False(t, achievementUnlocked(svc, "10"))
}

func TestCreatePost(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.CreatePost("Day one of meditation!")
	require.NoError(t, err)
	assert.Equal(t, store.CurrentUserID, first.AuthorID)
	assert.Equal(t, "sarah_green", first.Author.Handle)

	second, err := svc.CreatePost("Day two!")
	require.NoError(t, err)

	// Newest first.
	feed := svc.Feed()
	require.Len(t, feed, 2)
	assert.Equal(t, second.ID, feed[0].ID)
	assert.Equal(t, first.ID, feed[1].ID)

	t.Run("empty content", func(t *testing.T) {
		_, err := svc.CreatePost("   ")
		assertCode(t, err, "E100")
	})
}

func TestToggleLikeInvolution(t *testing.T) {
	svc, _ := newTestService(t)

	post, err := svc.CreatePost("Like me!")
	require.NoError(t, err)
	require.Equal(t, 0, post.LikeCount)

	liked, err := svc.ToggleLike(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikeCount)
	assert.True(t, liked.LikedByMe)

	unliked, err := svc.ToggleLike(post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.LikeCount)
	assert.False(t, unliked.LikedByMe)

	t.Run("unknown post", func(t *testing.T) {
		_, err := svc.ToggleLike("missing")
		assertCode(t, err, "E200")
	})
}

func TestAddComment(t *testing.T) {
	svc, _ := newTestService(t)

	post, err := svc.CreatePost("Comment on me!")
	require.NoError(t, err)

	commented, err := svc.AddComment(post.ID, "Nice work!")
	require.NoError(t, err)
	require.Len(t, commented.Comments, 1)
	assert.Equal(t, "Nice work!", commented.Comments[0].Content)
	assert.Equal(t, store.CurrentUserID, commented.Comments[0].AuthorID)

	t.Run("empty comment", func(t *testing.T) {
		_, err := svc.AddComment(post.ID, "")
		assertCode(t, err, "E100")
	})

	t.Run("unknown post", func(t *testing.T) {
		_, err := svc.AddComment("missing", "hello")
		assertCode(t, err, "E200")
	})
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)

	bio := "Growing one day at a time"
	updated, err := svc.UpdateProfile(store.ProfilePatch{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, bio, svc.CurrentUser().Bio)

	t.Run("blank display name rejected", func(t *testing.T) {
		empty := "  "
		_, err := svc.UpdateProfile(store.ProfilePatch{DisplayName: &empty})
		assertCode(t, err, "E100")
	})
}

func TestStreakGrowsWithCheckIns(t *testing.T) {
	svc, clock := newTestService(t)

	input := validHabitInput()
	input.Duration = 30
	view, err := svc.CreateHabit(input)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		view, _, err = svc.CheckIn(view.ID)
		require.NoError(t, err)
		clock.Advance(24 * time.Hour)
	}

	current, ok := svc.Habit(view.ID)
	require.True(t, ok)
	assert.Equal(t, 3, current.Streak)
}

func achievementUnlocked(svc *Service, id string) bool {
	for _, achievement := range svc.Achievements() {
		if achievement.ID == id {
			return achievement.Unlocked
		}
	}
	return false
}

func TestSevenDayRoseScenario(t *testing.T) {
	svc, clock := newTestService(t)

	input := CreateHabitInput{Name: "Water the roses", Duration: 7, PlantType: domain.PlantRose}
	view, err := svc.CreateHabit(input)
	require.NoError(t, err)
	require.Equal(t, derive.StageSeedling, view.Stage)

	stages := make([]derive.Stage, 0, 7)
	for i := 0; i < 7; i++ {
		view, _, err = svc.CheckIn(view.ID)
		require.NoError(t, err)
		stages = append(stages, view.Stage)
		clock.Advance(24 * time.Hour)
	}

	// 7-day goal: seedling through day 2, growing through day 4, mature after.
	expected := []derive.Stage{
		derive.StageSeedling, derive.StageSeedling,
		derive.StageGrowing, derive.StageGrowing,
		derive.StageMature, derive.StageMature, derive.StageMature,
	}
	assert.Equal(t, expected, stages)
	assert.True(t, view.Completed)
	assert.True(t, achievementUnlocked(svc, "2"))
	assert.True(t, achievementUnlocked(svc, "6"))
}

func TestTenPostsUnlockSocialStar(t *testing.T) {
	svc, _ := newTestService(t)

	for i := 0; i < 9; i++ {
		_, err := svc.CreatePost("update")
		require.NoError(t, err)
	}
	assert.False(t, achievementUnlocked(svc, "9"))

	_, err := svc.CreatePost("number ten")
	require.NoError(t, err)
	assert.True(t, achievementUnlocked(svc, "9"))
}

func TestDemoSeedUnlocksAchievementsAtConstruction(t *testing.T) {
	clock := &testClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	gardenStore := store.New(derive.Catalog())
	gardenStore.Seed(clock.Now(), true)

	svc := NewService(gardenStore, testLogger(), WithClock(clock.Now))

	// Two seeded habits satisfy the first rule before any command runs.
	assert.True(t, achievementUnlocked(svc, "1"))
	assert.False(t, achievementUnlocked(svc, "4"))
}

func TestRosterOnlySeedStaysLocked(t *testing.T) {
	svc, _ := newTestService(t)

	for _, achievement := range svc.Achievements() {
		assert.False(t, achievement.Unlocked, "achievement %s", achievement.ID)
	}
}
