package flow

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage keeps conversation state in process memory. Session state is
// process-lifetime by design; there is no durable backend.
type MemoryStorage struct {
	mu     sync.RWMutex
	states map[int64]*UserState
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{states: make(map[int64]*UserState)}
}

// GetState returns the stored state or ErrStateNotFound.
func (m *MemoryStorage) GetState(ctx context.Context, userID int64) (*UserState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[userID]
	if !ok {
		return nil, ErrStateNotFound
	}

	copied := *state
	return &copied, nil
}

// SetState stores the state, stamping the update time.
func (m *MemoryStorage) SetState(ctx context.Context, userID int64, state *UserState) error {
	if state == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *state
	copied.UpdatedAt = time.Now()
	m.states[userID] = &copied
	return nil
}

// ClearState removes the state for the user if present.
func (m *MemoryStorage) ClearState(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, userID)
	return nil
}

// AllStates returns a copy of every stored state.
func (m *MemoryStorage) AllStates(ctx context.Context) ([]*UserState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states := make([]*UserState, 0, len(m.states))
	for _, state := range m.states {
		copied := *state
		states = append(states, &copied)
	}

	return states, nil
}

// Cleanup removes states that have been idle for longer than maxAge.
func (m *MemoryStorage) Cleanup(maxAge time.Duration) int {
	if maxAge <= 0 {
		return 0
	}

	cutoff := time.Now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for userID, state := range m.states {
		if state.UpdatedAt.Before(cutoff) {
			delete(m.states, userID)
			removed++
		}
	}

	return removed
}
