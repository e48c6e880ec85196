package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/datemarket/app/backend/internal/domain/enums"
	"github.com/datemarket/app/backend/internal/domain/model"
	"github.com/datemarket/app/backend/internal/domain/rules"
	ledgersvc "github.com/datemarket/app/backend/internal/services/ledger"
)

type swipeKey struct {
	actor  uuid.UUID
	target uuid.UUID
}

type pairKey struct {
	a uuid.UUID
	b uuid.UUID
}

// LedgerStore keeps swipes and matches in process. A transaction holds the
// store mutex until it returns and is discarded on error.
type LedgerStore struct {
	mu      sync.Mutex
	swipes  map[swipeKey]model.Swipe
	matches map[pairKey]model.Match
	nextID  int64
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		swipes:  make(map[swipeKey]model.Swipe),
		matches: make(map[pairKey]model.Match),
	}
}

func (s *LedgerStore) WithTx(ctx context.Context, fn func(context.Context, ledgersvc.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &ledgerTx{
		store:   s,
		swipes:  make(map[swipeKey]*model.Swipe),
		matches: make(map[pairKey]*model.Match),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (s *LedgerStore) ListMatches(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.Match, 0)
	for _, m := range s.matches {
		if _, ok := m.Counterpart(userID); ok {
			items = append(items, m)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})

	out := make([]uuid.UUID, 0, len(items))
	for _, m := range items {
		other, _ := m.Counterpart(userID)
		out = append(out, other)
	}
	return out, nil
}

func (s *LedgerStore) ListSwipedTargets(_ context.Context, actor uuid.UUID, direction enums.SwipeDirection) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.Swipe, 0)
	for key, swipe := range s.swipes {
		if key.actor == actor && swipe.Direction == direction {
			items = append(items, swipe)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].TargetUserID.String() < items[j].TargetUserID.String()
	})

	out := make([]uuid.UUID, 0, len(items))
	for _, swipe := range items {
		out = append(out, swipe.TargetUserID)
	}
	return out, nil
}

// ledgerTx buffers writes; a nil entry marks a deletion.
type ledgerTx struct {
	store   *LedgerStore
	swipes  map[swipeKey]*model.Swipe
	matches map[pairKey]*model.Match
}

func (t *ledgerTx) LockPair(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (t *ledgerTx) UpsertSwipe(_ context.Context, swipe model.Swipe) error {
	if swipe.CreatedAt.IsZero() {
		swipe.CreatedAt = time.Now().UTC()
	}
	key := swipeKey{actor: swipe.ActorUserID, target: swipe.TargetUserID}
	t.swipes[key] = &swipe
	return nil
}

func (t *ledgerTx) HasSwipe(_ context.Context, actor, target uuid.UUID, direction enums.SwipeDirection) (bool, error) {
	swipe, ok := t.swipe(swipeKey{actor: actor, target: target})
	return ok && swipe.Direction == direction, nil
}

func (t *ledgerTx) DeleteSwipe(_ context.Context, actor, target uuid.UUID) (bool, error) {
	key := swipeKey{actor: actor, target: target}
	_, ok := t.swipe(key)
	t.swipes[key] = nil
	return ok, nil
}

func (t *ledgerTx) CreateMatch(_ context.Context, a, b uuid.UUID, now time.Time) (bool, error) {
	key := newPairKey(a, b)
	if _, ok := t.match(key); ok {
		return false, nil
	}
	t.store.nextID++
	t.matches[key] = &model.Match{
		ID:        t.store.nextID,
		UserAID:   key.a,
		UserBID:   key.b,
		CreatedAt: now,
	}
	return true, nil
}

func (t *ledgerTx) DeleteMatch(_ context.Context, a, b uuid.UUID) (bool, error) {
	key := newPairKey(a, b)
	_, ok := t.match(key)
	t.matches[key] = nil
	return ok, nil
}

func (t *ledgerTx) swipe(key swipeKey) (model.Swipe, bool) {
	if pending, ok := t.swipes[key]; ok {
		if pending == nil {
			return model.Swipe{}, false
		}
		return *pending, true
	}
	swipe, ok := t.store.swipes[key]
	return swipe, ok
}

func (t *ledgerTx) match(key pairKey) (model.Match, bool) {
	if pending, ok := t.matches[key]; ok {
		if pending == nil {
			return model.Match{}, false
		}
		return *pending, true
	}
	m, ok := t.store.matches[key]
	return m, ok
}

func (t *ledgerTx) commit() {
	for key, swipe := range t.swipes {
		if swipe == nil {
			delete(t.store.swipes, key)
			continue
		}
		t.store.swipes[key] = *swipe
	}
	for key, m := range t.matches {
		if m == nil {
			delete(t.store.matches, key)
			continue
		}
		t.store.matches[key] = *m
	}
}

func newPairKey(a, b uuid.UUID) pairKey {
	first, second := rules.OrderedPair(a, b)
	return pairKey{a: first, b: second}
}
