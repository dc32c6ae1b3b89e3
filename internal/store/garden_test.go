package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlab/gardenbot/internal/derive"
	"github.com/verdantlab/gardenbot/internal/domain"
)

func newTestGarden() *Garden {
	g := New(derive.Catalog())
	g.SetUsers(Roster(), CurrentUserID)
	return g
}

func testHabit(id string) *domain.Habit {
	return &domain.Habit{
		ID:        id,
		Name:      "Test Habit",
		Duration:  7,
		PlantType: domain.PlantFern,
		CheckIns:  []string{},
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestHabitsReturnClones(t *testing.T) {
	g := newTestGarden()
	g.InsertHabit(testHabit("h1"))

	first := g.Habits()[0]
	first.Name = "mutated"
	first.CheckIns = append(first.CheckIns, "2025-06-01")

	second, ok := g.Habit("h1")
	require.True(t, ok)
	assert.Equal(t, "Test Habit", second.Name)
	assert.Empty(t, second.CheckIns)
}

func TestAppendCheckIn(t *testing.T) {
	g := newTestGarden()
	g.InsertHabit(testHabit("h1"))

	habit, appended, ok := g.AppendCheckIn("h1", "2025-06-01")
	require.True(t, ok)
	assert.True(t, appended)
	assert.Equal(t, []string{"2025-06-01"}, habit.CheckIns)

	// Same day again is a no-op.
	habit, appended, ok = g.AppendCheckIn("h1", "2025-06-01")
	require.True(t, ok)
	assert.False(t, appended)
	assert.Len(t, habit.CheckIns, 1)

	_, _, ok = g.AppendCheckIn("missing", "2025-06-01")
	assert.False(t, ok)
}

func TestPatchHabit(t *testing.T) {
	g := newTestGarden()
	g.InsertHabit(testHabit("h1"))

	name := "Renamed"
	position := domain.Position{X: 10, Y: 20}
	habit, ok := g.PatchHabit("h1", HabitPatch{Name: &name, Position: &position})
	require.True(t, ok)
	assert.Equal(t, "Renamed", habit.Name)
	assert.Equal(t, position, habit.Position)

	// Untouched fields survive the patch.
	assert.Equal(t, 7, habit.Duration)

	_, ok = g.PatchHabit("missing", HabitPatch{Name: &name})
	assert.False(t, ok)
}

func TestFriends(t *testing.T) {
	g := newTestGarden()

	assert.False(t, g.IsFriend("2"))
	g.AddFriend("2")
	assert.True(t, g.IsFriend("2"))
	assert.Equal(t, 1, g.FriendCount())

	// Duplicate adds do not grow the set.
	g.AddFriend("2")
	assert.Equal(t, 1, g.FriendCount())
}

func TestInsertPostPrepends(t *testing.T) {
	g := newTestGarden()

	g.InsertPost(&domain.Post{ID: "p1", AuthorID: "1", Content: "first"})
	g.InsertPost(&domain.Post{ID: "p2", AuthorID: "1", Content: "second"})

	posts := g.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)
	assert.Equal(t, "p1", posts[1].ID)
}

func TestToggleLike(t *testing.T) {
	g := newTestGarden()
	g.InsertPost(&domain.Post{ID: "p1", AuthorID: "1", Content: "hi", Likes: []string{}})

	post, ok := g.ToggleLike("p1", "2")
	require.True(t, ok)
	assert.Equal(t, []string{"2"}, post.Likes)
	assert.Equal(t, 1, g.TotalLikes())

	post, ok = g.ToggleLike("p1", "2")
	require.True(t, ok)
	assert.Empty(t, post.Likes)
	assert.Equal(t, 0, g.TotalLikes())

	_, ok = g.ToggleLike("missing", "2")
	assert.False(t, ok)
}

func TestUnlockOnlyFlipsForward(t *testing.T) {
	g := newTestGarden()

	assert.True(t, g.Unlock("1"))
	assert.False(t, g.Unlock("1"))
	assert.False(t, g.Unlock("missing"))

	for _, achievement := range g.Achievements() {
		if achievement.ID == "1" {
			assert.True(t, achievement.Unlocked)
		} else {
			assert.False(t, achievement.Unlocked)
		}
	}
}

func TestUserByHandleIsCaseInsensitive(t *testing.T) {
	g := newTestGarden()

	user, ok := g.UserByHandle("SARAH_GREEN")
	require.True(t, ok)
	assert.Equal(t, "1", user.ID)

	_, ok = g.UserByHandle("nobody")
	assert.False(t, ok)
}

func TestSeedDemoData(t *testing.T) {
	g := New(derive.Catalog())
	g.Seed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), true)

	assert.Equal(t, "sarah_green", g.CurrentUser().Handle)
	assert.Len(t, g.Users(), 7)
	assert.Len(t, g.Habits(), 2)
	assert.Equal(t, 2, g.FriendCount())
	assert.Len(t, g.Posts(), 2)
	assert.NotEmpty(t, g.FriendHabits("2"))
}

func TestSeedWithoutDemoData(t *testing.T) {
	g := New(derive.Catalog())
	g.Seed(time.Now(), false)

	assert.Len(t, g.Users(), 7)
	assert.Empty(t, g.Habits())
	assert.Equal(t, 0, g.FriendCount())
	assert.Empty(t, g.Posts())
}
