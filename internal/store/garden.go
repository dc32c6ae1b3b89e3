// Package store holds the canonical in-memory collections for one garden
// session: users, habits, friends, posts and the achievement catalog.
package store

import (
	"strings"
	"sync"

	"github.com/verdantlab/gardenbot/internal/domain"
)

// Garden is the single-writer state container. One RWMutex guards every
// collection, so a networked front (the Telegram bot) sees each mutation as
// a single serialization point. All list accessors return copies; callers
// never alias store-owned slices.
type Garden struct {
	mu            sync.RWMutex
	users         []domain.User
	currentUserID string
	habits        []*domain.Habit
	friendIDs     []string
	friendHabits  map[string][]*domain.Habit
	posts         []*domain.Post
	achievements  []*domain.Achievement
}

// HabitPatch is a partial-merge update for a habit. Nil fields are left
// untouched.
type HabitPatch struct {
	Name        *string
	Description *string
	Duration    *int
	PlantType   *domain.PlantType
	Position    *domain.Position
}

// ProfilePatch is a partial-merge update for the current user.
type ProfilePatch struct {
	DisplayName     *string
	Avatar          *string
	Bio             *string
	BackgroundColor *string
}

// New creates an empty garden backed by the provided achievement catalog.
func New(catalog []*domain.Achievement) *Garden {
	return &Garden{
		friendHabits: make(map[string][]*domain.Habit),
		achievements: catalog,
	}
}

// SetUsers installs the fixed user roster and designates the current user.
func (g *Garden) SetUsers(users []domain.User, currentUserID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.users = append([]domain.User(nil), users...)
	g.currentUserID = currentUserID
}

// CurrentUser returns the designated current user record.
func (g *Garden) CurrentUser() domain.User {
	g.mu.RLock()
	defer g.mu.RUnlock()

	user, _ := g.userByIDLocked(g.currentUserID)
	return user
}

// Users returns the full user catalog in roster order.
func (g *Garden) Users() []domain.User {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]domain.User(nil), g.users...)
}

// UserByID looks up a user by identity.
func (g *Garden) UserByID(id string) (domain.User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.userByIDLocked(id)
}

// UserByHandle looks up a user by handle, case-insensitively.
func (g *Garden) UserByHandle(handle string) (domain.User, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, user := range g.users {
		if strings.EqualFold(user.Handle, handle) {
			return user, true
		}
	}

	return domain.User{}, false
}

// PatchCurrentUser merges the patch into the current user record and returns
// the new value.
func (g *Garden) PatchCurrentUser(patch ProfilePatch) domain.User {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.users {
		if g.users[i].ID != g.currentUserID {
			continue
		}

		if patch.DisplayName != nil {
			g.users[i].DisplayName = *patch.DisplayName
		}
		if patch.Avatar != nil {
			g.users[i].Avatar = *patch.Avatar
		}
		if patch.Bio != nil {
			g.users[i].Bio = *patch.Bio
		}
		if patch.BackgroundColor != nil {
			g.users[i].BackgroundColor = *patch.BackgroundColor
		}

		return g.users[i]
	}

	return domain.User{}
}

// Habits returns deep copies of all habits in insertion order.
func (g *Garden) Habits() []*domain.Habit {
	g.mu.RLock()
	defer g.mu.RUnlock()

	habits := make([]*domain.Habit, 0, len(g.habits))
	for _, habit := range g.habits {
		habits = append(habits, habit.Clone())
	}

	return habits
}

// Habit returns a deep copy of the habit with the given id.
func (g *Garden) Habit(id string) (*domain.Habit, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, habit := range g.habits {
		if habit.ID == id {
			return habit.Clone(), true
		}
	}

	return nil, false
}

// InsertHabit appends a new habit to the garden.
func (g *Garden) InsertHabit(habit *domain.Habit) {
	if habit == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.habits = append(g.habits, habit.Clone())
}

// PatchHabit merges the patch into the identified habit and returns the new
// value, or false when the habit does not exist.
func (g *Garden) PatchHabit(id string, patch HabitPatch) (*domain.Habit, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, habit := range g.habits {
		if habit.ID != id {
			continue
		}

		if patch.Name != nil {
			habit.Name = *patch.Name
		}
		if patch.Description != nil {
			habit.Description = *patch.Description
		}
		if patch.Duration != nil {
			habit.Duration = *patch.Duration
		}
		if patch.PlantType != nil {
			habit.PlantType = *patch.PlantType
		}
		if patch.Position != nil {
			habit.Position = *patch.Position
		}

		return habit.Clone(), true
	}

	return nil, false
}

// AppendCheckIn records the given day on the habit unless it is already
// present. The returned appended flag is false for the idempotent repeat case.
func (g *Garden) AppendCheckIn(id, day string) (habit *domain.Habit, appended, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, stored := range g.habits {
		if stored.ID != id {
			continue
		}

		if stored.HasCheckIn(day) {
			return stored.Clone(), false, true
		}

		stored.CheckIns = append(stored.CheckIns, day)
		return stored.Clone(), true, true
	}

	return nil, false, false
}

// RemoveHabit deletes the habit unconditionally.
func (g *Garden) RemoveHabit(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, habit := range g.habits {
		if habit.ID == id {
			g.habits = append(g.habits[:i], g.habits[i+1:]...)
			return true
		}
	}

	return false
}

// Friends returns the friend roster in insertion order.
func (g *Garden) Friends() []domain.User {
	g.mu.RLock()
	defer g.mu.RUnlock()

	friends := make([]domain.User, 0, len(g.friendIDs))
	for _, id := range g.friendIDs {
		if user, ok := g.userByIDLocked(id); ok {
			friends = append(friends, user)
		}
	}

	return friends
}

// FriendCount returns the size of the friend set.
func (g *Garden) FriendCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.friendIDs)
}

// IsFriend reports whether the user id is already in the friend set.
func (g *Garden) IsFriend(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, friendID := range g.friendIDs {
		if friendID == id {
			return true
		}
	}

	return false
}

// AddFriend appends the user id to the friend set, preserving insertion
// order. A duplicate id is a no-op, so the set invariant holds even if a
// caller skips the command layer's precondition checks.
func (g *Garden) AddFriend(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, friendID := range g.friendIDs {
		if friendID == id {
			return
		}
	}

	g.friendIDs = append(g.friendIDs, id)
}

// FriendHabits returns deep copies of the seeded habit list for a friend.
func (g *Garden) FriendHabits(userID string) []*domain.Habit {
	g.mu.RLock()
	defer g.mu.RUnlock()

	stored := g.friendHabits[userID]
	habits := make([]*domain.Habit, 0, len(stored))
	for _, habit := range stored {
		habits = append(habits, habit.Clone())
	}

	return habits
}

// SetFriendHabits installs the read-only habit list exposed for a friend.
func (g *Garden) SetFriendHabits(userID string, habits []*domain.Habit) {
	g.mu.Lock()
	defer g.mu.Unlock()

	copied := make([]*domain.Habit, 0, len(habits))
	for _, habit := range habits {
		copied = append(copied, habit.Clone())
	}

	g.friendHabits[userID] = copied
}

// Posts returns deep copies of the feed, newest first.
func (g *Garden) Posts() []*domain.Post {
	g.mu.RLock()
	defer g.mu.RUnlock()

	posts := make([]*domain.Post, 0, len(g.posts))
	for _, post := range g.posts {
		posts = append(posts, post.Clone())
	}

	return posts
}

// Post returns a deep copy of the identified post.
func (g *Garden) Post(id string) (*domain.Post, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, post := range g.posts {
		if post.ID == id {
			return post.Clone(), true
		}
	}

	return nil, false
}

// InsertPost prepends the post so the feed stays newest-first.
func (g *Garden) InsertPost(post *domain.Post) {
	if post == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.posts = append([]*domain.Post{post.Clone()}, g.posts...)
}

// ToggleLike flips the user's membership in the post's like set.
func (g *Garden) ToggleLike(postID, userID string) (*domain.Post, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, post := range g.posts {
		if post.ID != postID {
			continue
		}

		if post.LikedBy(userID) {
			likes := make([]string, 0, len(post.Likes)-1)
			for _, id := range post.Likes {
				if id != userID {
					likes = append(likes, id)
				}
			}
			post.Likes = likes
		} else {
			post.Likes = append(post.Likes, userID)
		}

		return post.Clone(), true
	}

	return nil, false
}

// AppendComment adds the comment to the identified post's comment list.
func (g *Garden) AppendComment(postID string, comment domain.Comment) (*domain.Post, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, post := range g.posts {
		if post.ID != postID {
			continue
		}

		post.Comments = append(post.Comments, comment)
		return post.Clone(), true
	}

	return nil, false
}

// TotalLikes sums like counts across all posts.
func (g *Garden) TotalLikes() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	total := 0
	for _, post := range g.posts {
		total += len(post.Likes)
	}

	return total
}

// Achievements returns the catalog in its fixed order with current flags.
func (g *Garden) Achievements() []domain.Achievement {
	g.mu.RLock()
	defer g.mu.RUnlock()

	catalog := make([]domain.Achievement, 0, len(g.achievements))
	for _, achievement := range g.achievements {
		catalog = append(catalog, *achievement)
	}

	return catalog
}

// Unlock flips an achievement to unlocked. It never resets a flag and
// reports whether this call performed the flip.
func (g *Garden) Unlock(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, achievement := range g.achievements {
		if achievement.ID != id {
			continue
		}

		if achievement.Unlocked {
			return false
		}

		achievement.Unlocked = true
		return true
	}

	return false
}

func (g *Garden) userByIDLocked(id string) (domain.User, bool) {
	for _, user := range g.users {
		if user.ID == id {
			return user, true
		}
	}

	return domain.User{}, false
}
