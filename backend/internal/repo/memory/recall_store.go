package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type recallEntry struct {
	target    uuid.UUID
	expiresAt time.Time
}

// RecallStore is the in-process recall token slot per actor.
type RecallStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]recallEntry
	now     func() time.Time
}

func NewRecallStore(ttl time.Duration) *RecallStore {
	return &RecallStore{
		ttl:     ttl,
		entries: make(map[uuid.UUID]recallEntry),
		now:     time.Now,
	}
}

func (s *RecallStore) Set(_ context.Context, actor, target uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := recallEntry{target: target}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[actor] = entry
	return nil
}

func (s *RecallStore) Get(_ context.Context, actor uuid.UUID) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[actor]
	if !ok {
		return uuid.Nil, false, nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.entries, actor)
		return uuid.Nil, false, nil
	}
	return entry.target, true, nil
}

func (s *RecallStore) Clear(_ context.Context, actor uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, actor)
	return nil
}
