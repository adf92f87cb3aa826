package memory

import (
	"context"
	"sync"
	"time"
)

type idempotencyEntry struct {
	response  []byte
	expiresAt time.Time
}

// IdempotencyStore is an in-memory idempotency key store. The system is
// single-process by design, so no shared store is needed.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	now     func() time.Time
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		entries: make(map[string]idempotencyEntry),
		now:     time.Now,
	}
}

// CheckAndSet atomically checks if key exists, sets if not.
// Returns (exists, existingValue, error).
func (s *IdempotencyStore) CheckAndSet(_ context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if entry, ok := s.entries[key]; ok && now.Before(entry.expiresAt) {
		return true, entry.response, nil
	}

	s.entries[key] = idempotencyEntry{response: response, expiresAt: now.Add(ttl)}
	return false, nil, nil
}

// Update updates an existing key with the final response.
func (s *IdempotencyStore) Update(_ context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = idempotencyEntry{response: response, expiresAt: s.now().Add(ttl)}
	return nil
}
