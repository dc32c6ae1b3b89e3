// Package garden implements the command layer and query facade over the
// entity store: validated mutations, eager re-derivation of growth and
// achievement state, and read-only projections for presentation fronts.
package garden

import (
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/verdantlab/gardenbot/internal/derive"
	"github.com/verdantlab/gardenbot/internal/domain"
	errors "github.com/verdantlab/gardenbot/internal/errors"
	"github.com/verdantlab/gardenbot/internal/store"
)

var unlockRecorder = func(id, name string) {}

// RegisterUnlockRecorder allows external packages to observe achievement
// unlocks, e.g. for metrics.
func RegisterUnlockRecorder(recorder func(id, name string)) {
	if recorder == nil {
		unlockRecorder = func(string, string) {}
		return
	}

	unlockRecorder = recorder
}

// Service executes commands against the garden store. A single mutex
// serializes mutating commands, so each one runs to completion, including
// re-derivation, before the next is accepted.
type Service struct {
	mu       sync.Mutex
	store    *store.Garden
	validate *validator.Validate
	log      *slog.Logger
	now      func() time.Time
	loc      *time.Location
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the timezone that defines the calendar-date boundary for
// check-ins and completion. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewService constructs the command layer over the provided store.
func NewService(st *store.Garden, log *slog.Logger, opts ...Option) *Service {
	if log == nil {
		log = slog.Default()
	}

	s := &Service{
		store:    st,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
		now:      time.Now,
		loc:      time.UTC,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Seeded content can already satisfy achievement rules, so evaluate once
	// up front instead of waiting for the first command.
	if st != nil {
		s.mu.Lock()
		s.rederive(s.localNow())
		s.mu.Unlock()
	}

	return s
}

// CreateHabitInput carries the fields required to plant a new habit.
type CreateHabitInput struct {
	Name        string           `validate:"required"`
	Description string
	Duration    int              `validate:"required,gt=0"`
	PlantType   domain.PlantType `validate:"required,oneof=sunflower rose cactus fern tulip orchid"`
	Position    domain.Position
}

// CreateHabit plants a new habit with a fresh id, empty check-ins and
// creation time now. There is no duplicate-name constraint.
func (s *Service) CreateHabit(in CreateHabitInput) (HabitView, error) {
	if err := s.checkInput(in); err != nil {
		return HabitView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.localNow()
	habit := &domain.Habit{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Duration:    in.Duration,
		PlantType:   in.PlantType,
		CheckIns:    []string{},
		CreatedAt:   now,
		Position:    in.Position,
	}

	s.store.InsertHabit(habit)
	s.rederive(now)

	s.log.Info("habit created",
		slog.String("habit_id", habit.ID),
		slog.String("name", habit.Name),
		slog.String("plant_type", string(habit.PlantType)),
		slog.Int("duration", habit.Duration),
	)

	return s.habitView(habit, now), nil
}

// UpdateHabit merges the patch into the identified habit. Patched fields are
// validated before any mutation happens.
func (s *Service) UpdateHabit(id string, patch store.HabitPatch) (HabitView, error) {
	if err := validatePatch(patch); err != nil {
		return HabitView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	habit, ok := s.store.PatchHabit(id, patch)
	if !ok {
		return HabitView{}, errors.NewNotFoundError("habit", id)
	}

	now := s.localNow()
	s.rederive(now)

	return s.habitView(habit, now), nil
}

// DeleteHabit removes the habit unconditionally. Already-unlocked
// achievements are never relocked by the deletion.
func (s *Service) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.RemoveHabit(id) {
		return errors.NewNotFoundError("habit", id)
	}

	s.rederive(s.localNow())

	s.log.Info("habit deleted", slog.String("habit_id", id))
	return nil
}

// CheckIn records today's calendar date on the habit. Checking in twice on
// the same day is a no-op, so the command is idempotent within a day. The
// second return value reports whether a new check-in was actually recorded.
func (s *Service) CheckIn(id string) (HabitView, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.localNow()
	today := now.Format(domain.DayFormat)

	habit, appended, ok := s.store.AppendCheckIn(id, today)
	if !ok {
		return HabitView{}, false, errors.NewNotFoundError("habit", id)
	}

	s.rederive(now)

	if appended {
		s.log.Info("check-in recorded",
			slog.String("habit_id", id),
			slog.String("day", today),
			slog.Int("check_ins", len(habit.CheckIns)),
		)
	}

	return s.habitView(habit, now), appended, nil
}

// AddFriend resolves a handle case-insensitively against the user catalog
// and appends the user to the friend set. Unknown handles, existing friends
// and the current user's own handle are all rejected before any mutation.
func (s *Service) AddFriend(handle string) (domain.User, error) {
	handle = strings.TrimSpace(strings.TrimPrefix(handle, "@"))
	if handle == "" {
		return domain.User{}, errors.NewValidationError("Handle must not be empty.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	friend, ok := s.store.UserByHandle(handle)
	if !ok {
		return domain.User{}, errors.NewNotFoundError("user", handle)
	}

	if friend.ID == s.store.CurrentUser().ID {
		return domain.User{}, errors.NewAlreadyExistsError("You can't add yourself as a friend.")
	}

	if s.store.IsFriend(friend.ID) {
		return domain.User{}, errors.NewAlreadyExistsError(fmt.Sprintf("%s is already in your circle.", friend.DisplayName))
	}

	s.store.AddFriend(friend.ID)
	s.rederive(s.localNow())

	s.log.Info("friend added", slog.String("user_id", friend.ID), slog.String("handle", friend.Handle))
	return friend, nil
}

// UpdateProfile merges the patch into the current user record.
func (s *Service) UpdateProfile(patch store.ProfilePatch) (domain.User, error) {
	if patch.DisplayName != nil && strings.TrimSpace(*patch.DisplayName) == "" {
		return domain.User{}, errors.NewValidationError("Display name must not be empty.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.PatchCurrentUser(patch), nil
}

// CreatePost publishes a post authored by the current user at the head of
// the feed.
func (s *Service) CreatePost(content string) (PostView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return PostView{}, errors.NewValidationError("Post content must not be empty.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.localNow()
	post := &domain.Post{
		ID:        uuid.NewString(),
		AuthorID:  s.store.CurrentUser().ID,
		Content:   content,
		CreatedAt: now,
		Likes:     []string{},
		Comments:  []domain.Comment{},
	}

	s.store.InsertPost(post)
	s.rederive(now)

	s.log.Info("post created", slog.String("post_id", post.ID))
	return s.postView(post), nil
}

// ToggleLike flips the current user's like on the post. Toggling twice
// restores the original like set.
func (s *Service) ToggleLike(postID string) (PostView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.store.ToggleLike(postID, s.store.CurrentUser().ID)
	if !ok {
		return PostView{}, errors.NewNotFoundError("post", postID)
	}

	s.rederive(s.localNow())

	return s.postView(post), nil
}

// AddComment appends a comment by the current user to the post.
func (s *Service) AddComment(postID, content string) (PostView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return PostView{}, errors.NewValidationError("Comment must not be empty.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comment := domain.Comment{
		ID:        uuid.NewString(),
		AuthorID:  s.store.CurrentUser().ID,
		Content:   content,
		CreatedAt: s.localNow(),
	}

	post, ok := s.store.AppendComment(postID, comment)
	if !ok {
		return PostView{}, errors.NewNotFoundError("post", postID)
	}

	return s.postView(post), nil
}

// rederive re-evaluates the achievement rules against the current store
// contents and flips any newly earned flags. Flags only ever move from
// locked to unlocked.
func (s *Service) rederive(now time.Time) {
	snap := derive.Snapshot{
		Habits:      s.store.Habits(),
		FriendCount: s.store.FriendCount(),
		PostCount:   len(s.store.Posts()),
		TotalLikes:  s.store.TotalLikes(),
		Now:         now,
	}

	catalog := s.store.Achievements()
	names := make(map[string]string, len(catalog))
	for _, achievement := range catalog {
		names[achievement.ID] = achievement.Name
	}

	for _, id := range derive.Evaluate(snap, catalog) {
		if !s.store.Unlock(id) {
			continue
		}

		unlockRecorder(id, names[id])
		s.log.Info("achievement unlocked",
			slog.String("achievement_id", id),
			slog.String("name", names[id]),
		)
	}
}

func (s *Service) localNow() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) checkInput(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stdErrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return errors.NewValidationError(fmt.Sprintf("Field %q failed the %q rule.", first.Field(), first.Tag()))
	}

	return errors.NewValidationError(err.Error())
}

func validatePatch(patch store.HabitPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return errors.NewValidationError("Name must not be empty.")
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return errors.NewValidationError("Description must not be empty.")
	}
	if patch.Duration != nil && *patch.Duration <= 0 {
		return errors.NewValidationError("Duration must be a positive number of days.")
	}
	if patch.PlantType != nil && !patch.PlantType.Valid() {
		return errors.NewValidationError("Unknown plant type.")
	}

	return nil
}
