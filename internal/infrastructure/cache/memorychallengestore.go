package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MaxMemoryChallenges caps the number of unexpired ceremonies held in memory.
const MaxMemoryChallenges = 10000

type memoryEntry struct {
	ceremony  PendingCeremony
	expiresAt time.Time
}

// MemoryChallengeStore is the single-process ChallengeStore used when no
// Redis server is configured.
type MemoryChallengeStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	limit   int
	now     func() time.Time
}

func NewMemoryChallengeStore(ttl time.Duration) *MemoryChallengeStore {
	if ttl <= 0 {
		ttl = DefaultChallengeTTL
	}
	return &MemoryChallengeStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		limit:   MaxMemoryChallenges,
		now:     time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *MemoryChallengeStore) WithClock(now func() time.Time) *MemoryChallengeStore {
	s.now = now
	return s
}

func (s *MemoryChallengeStore) Save(_ context.Context, ceremony *PendingCeremony) error {
	if ceremony == nil {
		return errors.New("ceremony cannot be nil")
	}
	if ceremony.Session.Challenge == "" {
		return errEmptyChallenge
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	if _, exists := s.entries[ceremony.Session.Challenge]; !exists && len(s.entries) >= s.limit {
		return ErrChallengeStoreFull
	}
	s.entries[ceremony.Session.Challenge] = memoryEntry{
		ceremony:  *ceremony,
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

func (s *MemoryChallengeStore) Consume(_ context.Context, challenge string) (*PendingCeremony, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[challenge]
	if !ok {
		return nil, nil
	}
	delete(s.entries, challenge)

	if !s.now().Before(e.expiresAt) {
		return nil, nil
	}
	c := e.ceremony
	return &c, nil
}
