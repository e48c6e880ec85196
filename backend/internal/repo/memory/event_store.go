package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/datemarket/app/backend/internal/domain/model"
	analyticsvc "github.com/datemarket/app/backend/internal/services/analytics"
)

// EventStore is the in-process event log used with the memory ledger.
type EventStore struct {
	mu     sync.Mutex
	events []model.Event
	nextID int64
}

func NewEventStore() *EventStore {
	return &EventStore{}
}

func (s *EventStore) InsertBatch(_ context.Context, userID *uuid.UUID, events []analyticsvc.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var uid *uuid.UUID
	if userID != nil && *userID != uuid.Nil {
		id := *userID
		uid = &id
	}

	for _, event := range events {
		s.nextID++
		s.events = append(s.events, model.Event{
			ID:         s.nextID,
			UserID:     uid,
			Name:       event.Name,
			OccurredAt: event.OccurredAt.UTC(),
			Payload:    event.Props,
		})
	}
	return nil
}

func (s *EventStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	var deleted int64
	for _, event := range s.events {
		if event.OccurredAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, event)
	}
	s.events = kept
	return deleted, nil
}

// Events returns a copy of the log in insertion order.
func (s *EventStore) Events() []model.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Event, len(s.events))
	copy(out, s.events)
	return out
}
