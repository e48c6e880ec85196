package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const recallPrefix = "recall:"

// RecallRepo stores the last swiped target per actor as a plain string key.
type RecallRepo struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewRecallRepo(client *goredis.Client, ttl time.Duration) *RecallRepo {
	return &RecallRepo{client: client, ttl: ttl}
}

func (r *RecallRepo) Set(ctx context.Context, actor, target uuid.UUID) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if actor == uuid.Nil || target == uuid.Nil {
		return fmt.Errorf("invalid recall token payload")
	}

	if err := r.client.Set(ctx, recallKey(actor), target.String(), r.ttl).Err(); err != nil {
		return fmt.Errorf("set recall token: %w", err)
	}
	return nil
}

func (r *RecallRepo) Get(ctx context.Context, actor uuid.UUID) (uuid.UUID, bool, error) {
	if r.client == nil {
		return uuid.Nil, false, fmt.Errorf("redis client is nil")
	}

	raw, err := r.client.Get(ctx, recallKey(actor)).Result()
	if errors.Is(err, goredis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("get recall token: %w", err)
	}

	target, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("parse recall token %q: %w", raw, err)
	}
	return target, true, nil
}

func (r *RecallRepo) Clear(ctx context.Context, actor uuid.UUID) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, recallKey(actor)).Err(); err != nil {
		return fmt.Errorf("clear recall token: %w", err)
	}
	return nil
}

func recallKey(actor uuid.UUID) string {
	return recallPrefix + actor.String()
}
