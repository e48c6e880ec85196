package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRecallStoreSingleSlotPerActor(t *testing.T) {
	store := NewRecallStore(0)
	ctx := context.Background()
	actor, first, second := uuid.New(), uuid.New(), uuid.New()

	_ = store.Set(ctx, actor, first)
	_ = store.Set(ctx, actor, second)

	got, ok, err := store.Get(ctx, actor)
	if err != nil || !ok || got != second {
		t.Fatalf("expected latest target: got=%s ok=%v err=%v", got, ok, err)
	}

	_ = store.Clear(ctx, actor)
	if _, ok, _ := store.Get(ctx, actor); ok {
		t.Fatalf("token must be gone after clear")
	}
}

func TestRecallStoreExpiresTokens(t *testing.T) {
	store := NewRecallStore(time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()
	actor := uuid.New()

	_ = store.Set(ctx, actor, uuid.New())
	now = now.Add(59 * time.Second)
	if _, ok, _ := store.Get(ctx, actor); !ok {
		t.Fatalf("token expired too early")
	}

	now = now.Add(time.Second)
	if _, ok, _ := store.Get(ctx, actor); ok {
		t.Fatalf("token must expire after ttl")
	}
}
