package idempotency

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type entry struct {
	record    Record
	expiresAt time.Time
}

// MemoryStore keeps idempotency records and locks in process memory with
// lazy TTL expiry. One process handles all updates, so no distributed
// locking is needed.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]entry
	locks   map[string]time.Time
	log     *slog.Logger
}

// NewMemoryStore constructs an in-memory idempotency store.
func NewMemoryStore(log *slog.Logger) *MemoryStore {
	if log == nil {
		log = slog.Default()
	}

	return &MemoryStore{
		records: make(map[string]entry),
		locks:   make(map[string]time.Time),
		log:     log,
	}
}

// Lock acquires a short-lived lock for the key, failing if one is held.
func (s *MemoryStore) Lock(ctx context.Context, key string, lockTTL time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deadline, held := s.locks[key]; held && time.Now().Before(deadline) {
		return false, nil
	}

	s.locks[key] = time.Now().Add(lockTTL)
	return true, nil
}

// Get returns the stored record, or nil when absent or expired.
func (s *MemoryStore) Get(ctx context.Context, key string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.records[key]
	if !ok {
		return nil, nil
	}

	if time.Now().After(stored.expiresAt) {
		delete(s.records, key)
		return nil, nil
	}

	record := stored.record
	return &record, nil
}

// Set stores the record with the provided TTL.
func (s *MemoryStore) Set(ctx context.Context, key string, record *Record, ttl time.Duration) error {
	if record == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = entry{
		record:    *record,
		expiresAt: time.Now().Add(ttl),
	}

	return nil
}

// ReleaseLock drops the lock for the key.
func (s *MemoryStore) ReleaseLock(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, key)
	return nil
}

// Cleanup removes expired records and stale locks.
func (s *MemoryStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0

	for key, stored := range s.records {
		if now.After(stored.expiresAt) {
			delete(s.records, key)
			removed++
		}
	}

	for key, deadline := range s.locks {
		if now.After(deadline) {
			delete(s.locks, key)
		}
	}

	return removed
}
