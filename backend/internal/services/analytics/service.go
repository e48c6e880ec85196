package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultMaxBatchSize = 100

var ErrValidation = errors.New("validation error")

type Store interface {
	InsertBatch(ctx context.Context, userID *uuid.UUID, events []Record) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Config struct {
	MaxBatchSize int
}

type Service struct {
	store  Store
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

type BatchEvent struct {
	Name  string
	TS    int64
	Props map[string]any
}

// Record is the row shape handed to the store.
type Record struct {
	Name       string
	OccurredAt time.Time
	Props      map[string]any
}

func NewService(store Store, cfg Config, logger *zap.Logger) *Service {
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = defaultMaxBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) IngestBatch(ctx context.Context, userID *uuid.UUID, events []BatchEvent) error {
	if s.store == nil {
		return fmt.Errorf("analytics store is nil")
	}
	if len(events) == 0 || len(events) > s.cfg.MaxBatchSize {
		return ErrValidation
	}

	now := s.now().UTC()
	rows := make([]Record, 0, len(events))
	for _, event := range events {
		name := strings.TrimSpace(event.Name)
		if name == "" {
			return ErrValidation
		}

		rows = append(rows, Record{
			Name:       name,
			OccurredAt: parseTS(event.TS, now),
			Props:      cloneProps(event.Props),
		})
	}

	if err := s.store.InsertBatch(ctx, userID, rows); err != nil {
		return fmt.Errorf("insert events batch: %w", err)
	}

	return nil
}

// Emit writes one server-side event. Failures are logged and swallowed.
func (s *Service) Emit(ctx context.Context, userID uuid.UUID, name string, props map[string]any) {
	if s == nil || s.store == nil {
		return
	}
	uid := userID
	if err := s.IngestBatch(ctx, &uid, []BatchEvent{{
		Name:  name,
		TS:    s.now().UTC().UnixMilli(),
		Props: props,
	}}); err != nil {
		s.logger.Warn("emit event failed",
			zap.String("event", name),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	if s.store == nil {
		return 0, fmt.Errorf("analytics store is nil")
	}
	deleted, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	return deleted, nil
}

func parseTS(ts int64, fallback time.Time) time.Time {
	if ts <= 0 {
		return fallback
	}
	if ts >= 1_000_000_000_000 {
		return time.UnixMilli(ts).UTC()
	}
	return time.Unix(ts, 0).UTC()
}

func cloneProps(props map[string]any) map[string]any {
	if len(props) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(props))
	for key, value := range props {
		out[key] = value
	}
	return out
}
