package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/datemarket/app/backend/internal/domain/enums"
	"github.com/datemarket/app/backend/internal/domain/model"
)

const (
	EventSwipeRecorded = "swipe_recorded"
	EventMatchCreated  = "match_created"
	EventSwipeRecalled = "swipe_recalled"
)

type Service struct {
	store   Store
	recall  RecallStore
	limiter RateLimiter
	events  EventSink
	logger  *zap.Logger
	now     func() time.Time
}

type Dependencies struct {
	Store       Store
	Recall      RecallStore
	RateLimiter RateLimiter
	Events      EventSink
	Logger      *zap.Logger
}

type SwipeResult struct {
	// IsMatch is true when the reciprocal right swipe exists after this swipe.
	IsMatch bool
	// MatchCreated is false when the match already existed.
	MatchCreated bool
	// MatchDissolved is set when a left swipe overwrote a right swipe that held a match.
	MatchDissolved bool
}

type RecallResult struct {
	Recalled       bool
	TargetID       uuid.UUID
	MatchDissolved bool
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:   deps.Store,
		recall:  deps.Recall,
		limiter: deps.RateLimiter,
		events:  deps.Events,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Service) RecordSwipe(ctx context.Context, actor, target uuid.UUID, direction enums.SwipeDirection) (SwipeResult, error) {
	return s.recordSwipe(ctx, actor, target, direction, false)
}

// SuperLike is a right swipe; the flag only travels to storage and events.
func (s *Service) SuperLike(ctx context.Context, actor, target uuid.UUID) (SwipeResult, error) {
	return s.recordSwipe(ctx, actor, target, enums.SwipeDirectionRight, true)
}

func (s *Service) recordSwipe(ctx context.Context, actor, target uuid.UUID, direction enums.SwipeDirection, isSuper bool) (SwipeResult, error) {
	if actor == uuid.Nil || target == uuid.Nil || actor == target || !direction.Valid() {
		return SwipeResult{}, ErrInvalidOperation
	}
	if s.store == nil || s.recall == nil {
		return SwipeResult{}, fmt.Errorf("ledger dependencies are not configured")
	}

	if s.limiter != nil && s.limiter.Enabled() {
		retryAfter, allowed, err := s.limiter.AllowSwipe(ctx, actor)
		if err != nil {
			return SwipeResult{}, persistence("apply swipe rate limiter", err)
		}
		if !allowed {
			return SwipeResult{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	now := s.now().UTC()
	var result SwipeResult
	if err := s.store.WithTx(ctx, func(txCtx context.Context, tx Tx) error {
		result = SwipeResult{}
		if err := tx.LockPair(txCtx, actor, target); err != nil {
			return err
		}
		if err := tx.UpsertSwipe(txCtx, model.Swipe{
			ActorUserID:  actor,
			TargetUserID: target,
			Direction:    direction,
			IsSuperLike:  isSuper,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		if direction == enums.SwipeDirectionLeft {
			dissolved, err := tx.DeleteMatch(txCtx, actor, target)
			if err != nil {
				return err
			}
			result.MatchDissolved = dissolved
			return nil
		}

		reciprocal, err := tx.HasSwipe(txCtx, target, actor, enums.SwipeDirectionRight)
		if err != nil {
			return err
		}
		if !reciprocal {
			return nil
		}

		created, err := tx.CreateMatch(txCtx, actor, target, now)
		if err != nil {
			return err
		}
		result.IsMatch = true
		result.MatchCreated = created
		return nil
	}); err != nil {
		return SwipeResult{}, persistence("record swipe", err)
	}

	// The swipe is committed from here on; nothing below may fail the call.
	s.emit(ctx, actor, EventSwipeRecorded, map[string]any{
		"target_id": target.String(),
		"direction": direction.String(),
		"super":     isSuper,
	})
	if result.MatchCreated {
		s.emit(ctx, actor, EventMatchCreated, map[string]any{"counterpart_id": target.String()})
		s.emit(ctx, target, EventMatchCreated, map[string]any{"counterpart_id": actor.String()})
	}

	s.rememberRecall(ctx, actor, target)

	return result, nil
}

// rememberRecall points the actor's recall token at target. On failure the
// token is dropped, since a stale one would undo an older swipe.
func (s *Service) rememberRecall(ctx context.Context, actor, target uuid.UUID) {
	err := s.recall.Set(ctx, actor, target)
	if err == nil {
		return
	}

	s.logger.Warn("set recall token failed",
		zap.String("actor_id", actor.String()),
		zap.String("target_id", target.String()),
		zap.Error(err),
	)
	if clearErr := s.recall.Clear(ctx, actor); clearErr != nil {
		s.logger.Warn("clear stale recall token failed",
			zap.String("actor_id", actor.String()),
			zap.Error(clearErr),
		)
	}
}

// SwipeCooldown reports how many seconds remain before the actor may swipe
// again. It is zero when no rate window is full or limiting is off.
func (s *Service) SwipeCooldown(ctx context.Context, actor uuid.UUID) (int64, error) {
	if actor == uuid.Nil {
		return 0, ErrInvalidOperation
	}
	if s.limiter == nil || !s.limiter.Enabled() {
		return 0, nil
	}

	retryAfter, err := s.limiter.RetryAfterSwipe(ctx, actor)
	if err != nil {
		return 0, persistence("read swipe cooldown", err)
	}
	return retryAfter, nil
}

// Recall undoes the actor's latest swipe. Without a pending token it is a no-op.
func (s *Service) Recall(ctx context.Context, actor uuid.UUID) (RecallResult, error) {
	if actor == uuid.Nil {
		return RecallResult{}, ErrInvalidOperation
	}
	if s.store == nil || s.recall == nil {
		return RecallResult{}, fmt.Errorf("ledger dependencies are not configured")
	}

	target, ok, err := s.recall.Get(ctx, actor)
	if err != nil {
		return RecallResult{}, persistence("read recall token", err)
	}
	if !ok {
		return RecallResult{}, nil
	}

	var dissolved bool
	if err := s.store.WithTx(ctx, func(txCtx context.Context, tx Tx) error {
		if err := tx.LockPair(txCtx, actor, target); err != nil {
			return err
		}
		if _, err := tx.DeleteSwipe(txCtx, actor, target); err != nil {
			return err
		}
		deleted, err := tx.DeleteMatch(txCtx, actor, target)
		if err != nil {
			return err
		}
		dissolved = deleted
		return nil
	}); err != nil {
		return RecallResult{}, persistence("recall swipe", err)
	}

	if err := s.recall.Clear(ctx, actor); err != nil {
		return RecallResult{}, persistence("clear recall token", err)
	}

	s.emit(ctx, actor, EventSwipeRecalled, map[string]any{
		"target_id":       target.String(),
		"match_dissolved": dissolved,
	})

	return RecallResult{
		Recalled:       true,
		TargetID:       target,
		MatchDissolved: dissolved,
	}, nil
}

func (s *Service) ListMatches(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidOperation
	}
	if s.store == nil {
		return nil, fmt.Errorf("ledger store is nil")
	}

	ids, err := s.store.ListMatches(ctx, userID)
	if err != nil {
		return nil, persistence("list matches", err)
	}
	return ids, nil
}

func (s *Service) ListSwipedTargets(ctx context.Context, actor uuid.UUID, direction enums.SwipeDirection) ([]uuid.UUID, error) {
	if actor == uuid.Nil || !direction.Valid() {
		return nil, ErrInvalidOperation
	}
	if s.store == nil {
		return nil, fmt.Errorf("ledger store is nil")
	}

	ids, err := s.store.ListSwipedTargets(ctx, actor, direction)
	if err != nil {
		return nil, persistence("list swiped targets", err)
	}
	return ids, nil
}

// FilterUndecided keeps the candidates the actor has not swiped yet, in input order.
func (s *Service) FilterUndecided(ctx context.Context, actor uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error) {
	if actor == uuid.Nil {
		return nil, ErrInvalidOperation
	}

	decided := make(map[uuid.UUID]struct{})
	for _, direction := range []enums.SwipeDirection{enums.SwipeDirectionLeft, enums.SwipeDirectionRight} {
		ids, err := s.ListSwipedTargets(ctx, actor, direction)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			decided[id] = struct{}{}
		}
	}

	out := make([]uuid.UUID, 0, len(candidates))
	seen := make(map[uuid.UUID]struct{}, len(candidates))
	for _, candidate := range candidates {
		if candidate == uuid.Nil || candidate == actor {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		if _, ok := decided[candidate]; ok {
			continue
		}
		out = append(out, candidate)
	}
	return out, nil
}

func (s *Service) emit(ctx context.Context, userID uuid.UUID, name string, props map[string]any) {
	if s.events == nil {
		return
	}
	s.events.Emit(ctx, userID, name, props)
}
