package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type analyticsStoreStub struct {
	userID    *uuid.UUID
	events    []Record
	insertErr error
	cutoff    time.Time
	deleted   int64
}

func (s *analyticsStoreStub) InsertBatch(_ context.Context, userID *uuid.UUID, events []Record) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.userID = userID
	s.events = append([]Record(nil), events...)
	return nil
}

func (s *analyticsStoreStub) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return s.deleted, nil
}

func TestIngestBatchLimitValidation(t *testing.T) {
	store := &analyticsStoreStub{}
	svc := NewService(store, Config{MaxBatchSize: 100}, nil)

	events := make([]BatchEvent, 0, 101)
	for i := 0; i < 101; i++ {
		events = append(events, BatchEvent{Name: "evt", TS: 1})
	}

	err := svc.IngestBatch(context.Background(), nil, events)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestIngestBatchRejectsBlankName(t *testing.T) {
	svc := NewService(&analyticsStoreStub{}, Config{}, nil)

	err := svc.IngestBatch(context.Background(), nil, []BatchEvent{{Name: "  "}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestIngestBatchSavesRows(t *testing.T) {
	store := &analyticsStoreStub{}
	svc := NewService(store, Config{MaxBatchSize: 100}, nil)
	fixedNow := time.Date(2026, 2, 8, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixedNow }

	uid := uuid.MustParse("8f8b2c1e-58a4-4f57-9a3c-1b2f4d6e8a10")
	err := svc.IngestBatch(context.Background(), &uid, []BatchEvent{
		{Name: "feed_open", TS: 1_700_000_000, Props: map[string]any{"tab": "feed"}},
		{Name: "like_click", TS: 1_700_000_000_500, Props: map[string]any{"target_id": "x"}},
		{Name: "app_background", TS: 0, Props: nil},
	})
	if err != nil {
		t.Fatalf("ingest batch: %v", err)
	}

	if store.userID == nil || *store.userID != uid {
		t.Fatalf("unexpected user id in store: %+v", store.userID)
	}
	if len(store.events) != 3 {
		t.Fatalf("unexpected event rows count: got %d want 3", len(store.events))
	}
	if store.events[0].OccurredAt.Unix() != 1_700_000_000 {
		t.Fatalf("unexpected seconds ts conversion: %v", store.events[0].OccurredAt)
	}
	if store.events[1].OccurredAt.UnixMilli() != 1_700_000_000_500 {
		t.Fatalf("unexpected milliseconds ts conversion: %v", store.events[1].OccurredAt)
	}
	if !store.events[2].OccurredAt.Equal(fixedNow) {
		t.Fatalf("unexpected fallback ts: got %v want %v", store.events[2].OccurredAt, fixedNow)
	}
	if store.events[2].Props == nil {
		t.Fatalf("nil props must be replaced with an empty map")
	}
}

func TestEmitSwallowsStoreErrors(t *testing.T) {
	store := &analyticsStoreStub{insertErr: errors.New("db down")}
	svc := NewService(store, Config{}, nil)

	svc.Emit(context.Background(), uuid.New(), "swipe_recorded", map[string]any{"direction": "right"})

	if len(store.events) != 0 {
		t.Fatalf("expected no stored events, got %d", len(store.events))
	}
}

func TestEmitOnNilServiceIsNoop(t *testing.T) {
	var svc *Service
	svc.Emit(context.Background(), uuid.New(), "swipe_recorded", nil)
}

func TestPrunePassesCutoff(t *testing.T) {
	store := &analyticsStoreStub{deleted: 7}
	svc := NewService(store, Config{}, nil)
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	deleted, err := svc.Prune(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 7 || !store.cutoff.Equal(cutoff) {
		t.Fatalf("unexpected prune result: deleted=%d cutoff=%v", deleted, store.cutoff)
	}
}
