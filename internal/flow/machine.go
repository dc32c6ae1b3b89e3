package flow

import (
	"context"
	"errors"
	"log/slog"
)

var (
	// ErrInvalidTransition indicates that a requested transition is not allowed.
	ErrInvalidTransition = errors.New("invalid conversation transition")
	// ErrStateNotFound indicates that a user state record does not exist.
	ErrStateNotFound = errors.New("conversation state not found")
)

var transitionRecorder = func(from, to string) {}

// RegisterTransitionRecorder allows external packages to observe transitions.
func RegisterTransitionRecorder(recorder func(from, to string)) {
	if recorder == nil {
		transitionRecorder = func(string, string) {}
		return
	}

	transitionRecorder = recorder
}

// Machine describes the operations supported by the conversation controller.
type Machine interface {
	GetState(ctx context.Context, userID int64) (*UserState, error)
	SetState(ctx context.Context, userID int64, state State, contextData map[string]interface{}) error
	TransitionTo(ctx context.Context, userID int64, newState State) error
	ClearState(ctx context.Context, userID int64) error
	AllStates(ctx context.Context) ([]*UserState, error)
}

// machine is a concrete Machine backed by Storage. The process is the only
// writer of conversation state, so no distributed locking is involved; the
// storage's own mutex serializes access.
type machine struct {
	storage Storage
	log     *slog.Logger
}

// NewMachine creates a conversation controller using the provided storage.
func NewMachine(storage Storage, log *slog.Logger) Machine {
	if log == nil {
		log = slog.Default()
	}

	return &machine{
		storage: storage,
		log:     log,
	}
}

// GetState proxies to the underlying storage implementation.
func (m *machine) GetState(ctx context.Context, userID int64) (*UserState, error) {
	return m.storage.GetState(ctx, userID)
}

// AllStates returns every stored user state.
func (m *machine) AllStates(ctx context.Context) ([]*UserState, error) {
	return m.storage.AllStates(ctx)
}

// SetState composes a UserState and persists it via storage.
func (m *machine) SetState(ctx context.Context, userID int64, state State, contextData map[string]interface{}) error {
	return m.saveState(ctx, userID, state, contextData)
}

// TransitionTo changes the state if the transition is allowed.
func (m *machine) TransitionTo(ctx context.Context, userID int64, newState State) error {
	current := StateIdle

	storedState, err := m.storage.GetState(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrStateNotFound) {
			return err
		}
	} else if storedState != nil {
		current = storedState.CurrentState
	}

	if !IsTransitionAllowed(current, newState) {
		if m.log != nil {
			m.log.Warn("invalid conversation transition", "user_id", userID, "from", current, "to", newState)
		}
		return ErrInvalidTransition
	}

	transitionRecorder(string(current), string(newState))

	var contextData map[string]interface{}
	if storedState != nil {
		contextData = storedState.Context
	}

	return m.saveState(ctx, userID, newState, contextData)
}

// ClearState removes the stored state via the backing storage.
func (m *machine) ClearState(ctx context.Context, userID int64) error {
	return m.storage.ClearState(ctx, userID)
}

func (m *machine) saveState(ctx context.Context, userID int64, state State, contextData map[string]interface{}) error {
	userState := &UserState{
		UserID:       userID,
		CurrentState: state,
		Context:      contextData,
	}

	return m.storage.SetState(ctx, userID, userState)
}
