package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	analyticsvc "github.com/datemarket/app/backend/internal/services/analytics"
)

func TestEventStoreInsertAndPrune(t *testing.T) {
	store := NewEventStore()
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := store.InsertBatch(ctx, &userID, []analyticsvc.Record{
		{Name: "old", OccurredAt: now.Add(-48 * time.Hour)},
		{Name: "fresh", OccurredAt: now},
	}); err != nil {
		t.Fatalf("insert batch: %v", err)
	}
	if err := store.InsertBatch(ctx, nil, []analyticsvc.Record{{Name: "anon", OccurredAt: now}}); err != nil {
		t.Fatalf("insert anonymous batch: %v", err)
	}

	events := store.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].UserID == nil || *events[0].UserID != userID {
		t.Fatalf("user id not stored: %+v", events[0])
	}
	if events[2].UserID != nil {
		t.Fatalf("anonymous event must have nil user id")
	}

	deleted, err := store.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("delete older than: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted event, got %d", deleted)
	}
	if got := store.Events(); len(got) != 2 || got[0].Name != "fresh" {
		t.Fatalf("unexpected remaining events: %+v", got)
	}
}
