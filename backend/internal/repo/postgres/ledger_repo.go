package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/datemarket/app/backend/internal/domain/enums"
	"github.com/datemarket/app/backend/internal/domain/model"
	"github.com/datemarket/app/backend/internal/domain/rules"
	ledgersvc "github.com/datemarket/app/backend/internal/services/ledger"
)

type LedgerRepo struct {
	pool *pgxpool.Pool
}

func NewLedgerRepo(pool *pgxpool.Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

func (r *LedgerRepo) WithTx(ctx context.Context, fn func(context.Context, ledgersvc.Tx) error) error {
	return WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
		return fn(txCtx, ledgerTx{tx: tx})
	})
}

func (r *LedgerRepo) ListMatches(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT CASE WHEN m.user_a_id = $1 THEN m.user_b_id ELSE m.user_a_id END
FROM matches m
WHERE m.user_a_id = $1 OR m.user_b_id = $1
ORDER BY m.created_at DESC, m.id DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return collectIDs(rows, "match")
}

func (r *LedgerRepo) ListSwipedTargets(ctx context.Context, actor uuid.UUID, direction enums.SwipeDirection) ([]uuid.UUID, error) {
	if actor == uuid.Nil || !direction.Valid() {
		return nil, fmt.Errorf("invalid swipe lookup payload")
	}
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT target_user_id
FROM swipes
WHERE actor_user_id = $1 AND direction = $2
ORDER BY created_at DESC, target_user_id
`, actor, direction.String())
	if err != nil {
		return nil, fmt.Errorf("list swiped targets: %w", err)
	}
	return collectIDs(rows, "swipe target")
}

func collectIDs(rows pgx.Rows, what string) ([]uuid.UUID, error) {
	defer rows.Close()

	items := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		items = append(items, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", what, rows.Err())
	}
	return items, nil
}

type ledgerTx struct {
	tx pgx.Tx
}

func (t ledgerTx) LockPair(ctx context.Context, a, b uuid.UUID) error {
	if _, err := t.tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, rules.PairLockKey(a, b)); err != nil {
		return fmt.Errorf("lock swipe pair: %w", err)
	}
	return nil
}

func (t ledgerTx) UpsertSwipe(ctx context.Context, swipe model.Swipe) error {
	if swipe.ActorUserID == uuid.Nil || swipe.TargetUserID == uuid.Nil || !swipe.Direction.Valid() {
		return fmt.Errorf("invalid swipe payload")
	}
	createdAt := swipe.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if _, err := t.tx.Exec(ctx, `
INSERT INTO swipes (
	actor_user_id,
	target_user_id,
	direction,
	is_super_like,
	created_at
) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (actor_user_id, target_user_id) DO UPDATE SET
	direction = EXCLUDED.direction,
	is_super_like = EXCLUDED.is_super_like,
	created_at = EXCLUDED.created_at
`, swipe.ActorUserID, swipe.TargetUserID, swipe.Direction.String(), swipe.IsSuperLike, createdAt.UTC()); err != nil {
		return fmt.Errorf("upsert swipe: %w", err)
	}
	return nil
}

func (t ledgerTx) HasSwipe(ctx context.Context, actor, target uuid.UUID, direction enums.SwipeDirection) (bool, error) {
	var one int
	err := t.tx.QueryRow(ctx, `
SELECT 1
FROM swipes
WHERE actor_user_id = $1 AND target_user_id = $2 AND direction = $3
LIMIT 1
`, actor, target, direction.String()).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup swipe: %w", err)
	}
	return true, nil
}

func (t ledgerTx) DeleteSwipe(ctx context.Context, actor, target uuid.UUID) (bool, error) {
	result, err := t.tx.Exec(ctx, `
DELETE FROM swipes
WHERE actor_user_id = $1 AND target_user_id = $2
`, actor, target)
	if err != nil {
		return false, fmt.Errorf("delete swipe: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (t ledgerTx) CreateMatch(ctx context.Context, a, b uuid.UUID, now time.Time) (bool, error) {
	userA, userB := rules.OrderedPair(a, b)
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var matchID int64
	err := t.tx.QueryRow(ctx, `
INSERT INTO matches (
	user_a_id,
	user_b_id,
	created_at
) VALUES ($1, $2, $3)
ON CONFLICT (user_a_id, user_b_id) DO NOTHING
RETURNING id
`, userA, userB, now.UTC()).Scan(&matchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("create match: %w", err)
	}

	return matchID > 0, nil
}

func (t ledgerTx) DeleteMatch(ctx context.Context, a, b uuid.UUID) (bool, error) {
	userA, userB := rules.OrderedPair(a, b)

	result, err := t.tx.Exec(ctx, `
DELETE FROM matches
WHERE user_a_id = $1 AND user_b_id = $2
`, userA, userB)
	if err != nil {
		return false, fmt.Errorf("delete match: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
