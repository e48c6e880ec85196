package retention

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	defaultRetention = 90 * 24 * time.Hour
	defaultInterval  = time.Hour
)

type eventPruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

// Job removes ledger and client events older than the retention window.
type Job struct {
	pruner    eventPruner
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

func New(pruner eventPruner, retention, interval time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = defaultRetention
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		pruner:    pruner,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.pruner == nil {
		return nil
	}

	cutoff := j.now().UTC().Add(-j.retention)
	deleted, err := j.pruner.Prune(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune stale events: %w", err)
	}
	if deleted > 0 {
		j.logger.Info("event retention completed",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
	return nil
}

// Loop runs the job immediately and then on every interval until ctx ends.
// A failed pass is logged and retried on the next tick.
func (j *Job) Loop(ctx context.Context) {
	if err := j.Run(ctx); err != nil {
		j.logger.Warn("event retention failed", zap.Error(err))
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("event retention failed", zap.Error(err))
			}
		}
	}
}
