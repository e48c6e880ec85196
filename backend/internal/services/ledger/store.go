package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/datemarket/app/backend/internal/domain/enums"
	"github.com/datemarket/app/backend/internal/domain/model"
)

// Tx is one atomic unit of work against the swipe and match tables.
type Tx interface {
	// LockPair serializes concurrent transactions touching the same unordered pair.
	LockPair(ctx context.Context, a, b uuid.UUID) error
	UpsertSwipe(ctx context.Context, swipe model.Swipe) error
	HasSwipe(ctx context.Context, actor, target uuid.UUID, direction enums.SwipeDirection) (bool, error)
	DeleteSwipe(ctx context.Context, actor, target uuid.UUID) (bool, error)
	// CreateMatch is idempotent; it reports whether a new row was inserted.
	CreateMatch(ctx context.Context, a, b uuid.UUID, now time.Time) (bool, error)
	DeleteMatch(ctx context.Context, a, b uuid.UUID) (bool, error)
}

type Store interface {
	WithTx(ctx context.Context, fn func(context.Context, Tx) error) error
	ListMatches(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListSwipedTargets(ctx context.Context, actor uuid.UUID, direction enums.SwipeDirection) ([]uuid.UUID, error)
}

// RecallStore keeps one pending undo target per actor.
type RecallStore interface {
	Set(ctx context.Context, actor, target uuid.UUID) error
	Get(ctx context.Context, actor uuid.UUID) (uuid.UUID, bool, error)
	Clear(ctx context.Context, actor uuid.UUID) error
}

type RateLimiter interface {
	Enabled() bool
	AllowSwipe(ctx context.Context, userID uuid.UUID) (int64, bool, error)
	RetryAfterSwipe(ctx context.Context, userID uuid.UUID) (int64, error)
}

type EventSink interface {
	Emit(ctx context.Context, userID uuid.UUID, name string, props map[string]any)
}
