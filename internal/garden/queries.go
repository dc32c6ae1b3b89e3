package garden

import (
	"time"

	"github.com/verdantlab/gardenbot/internal/derive"
	"github.com/verdantlab/gardenbot/internal/domain"
)

// HabitView is a habit with its derived growth attributes attached. Views
// are computed from live store contents at query time, so they can never be
// stale relative to the last completed command.
type HabitView struct {
	domain.Habit
	Progress       float64
	Percent        int
	Stage          derive.Stage
	Completed      bool
	CheckedInToday bool
	Streak         int
}

// PostView is a feed entry with its author and live like state resolved.
type PostView struct {
	domain.Post
	Author    domain.User
	LikeCount int
	LikedByMe bool
}

// CurrentUser returns the session owner's record.
func (s *Service) CurrentUser() domain.User {
	return s.store.CurrentUser()
}

// Users returns the full user catalog.
func (s *Service) Users() []domain.User {
	return s.store.Users()
}

// Friends returns the friend roster ordered by addition.
func (s *Service) Friends() []domain.User {
	return s.store.Friends()
}

// Habits returns every habit with live derived attributes, in creation order.
func (s *Service) Habits() []HabitView {
	now := s.localNow()

	habits := s.store.Habits()
	views := make([]HabitView, 0, len(habits))
	for _, habit := range habits {
		views = append(views, s.habitView(habit, now))
	}

	return views
}

// Habit returns a single habit view by id.
func (s *Service) Habit(id string) (HabitView, bool) {
	habit, ok := s.store.Habit(id)
	if !ok {
		return HabitView{}, false
	}

	return s.habitView(habit, s.localNow()), true
}

// FriendHabits returns the seeded, read-only garden of a friend.
func (s *Service) FriendHabits(userID string) []HabitView {
	now := s.localNow()

	habits := s.store.FriendHabits(userID)
	views := make([]HabitView, 0, len(habits))
	for _, habit := range habits {
		views = append(views, s.habitView(habit, now))
	}

	return views
}

// Achievements returns the fixed catalog with live unlock flags.
func (s *Service) Achievements() []domain.Achievement {
	return s.store.Achievements()
}

// Feed returns the post feed newest-first with like counts and comments.
func (s *Service) Feed() []PostView {
	posts := s.store.Posts()
	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, s.postView(post))
	}

	return views
}

func (s *Service) habitView(habit *domain.Habit, now time.Time) HabitView {
	return HabitView{
		Habit:          *habit.Clone(),
		Progress:       derive.Progress(habit),
		Percent:        derive.Percent(habit),
		Stage:          derive.StageOf(habit),
		Completed:      derive.Completed(habit, now),
		CheckedInToday: habit.HasCheckIn(now.Format(domain.DayFormat)),
		Streak:         len(habit.CheckIns),
	}
}

func (s *Service) postView(post *domain.Post) PostView {
	author, _ := s.store.UserByID(post.AuthorID)

	return PostView{
		Post:      *post.Clone(),
		Author:    author,
		LikeCount: len(post.Likes),
		LikedByMe: post.LikedBy(s.store.CurrentUser().ID),
	}
}
