package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	swipesMinuteWindow = time.Minute
	swipes10SecWindow  = 10 * time.Second
)

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
}

type Limiter struct {
	store     WindowStore
	perMinute int
	per10Sec  int
}

func NewLimiter(store WindowStore, perMinute, per10Sec int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}
	if per10Sec < 0 {
		per10Sec = 0
	}

	return &Limiter{
		store:     store,
		perMinute: perMinute,
		per10Sec:  per10Sec,
	}
}

// Enabled reports whether any window is configured.
func (l *Limiter) Enabled() bool {
	return l != nil && (l.perMinute > 0 || l.per10Sec > 0)
}

type window struct {
	key    string
	length time.Duration
	limit  int64
}

// windows lists the configured windows for a user, minute window first.
func (l *Limiter) windows(userID uuid.UUID) []window {
	out := make([]window, 0, 2)
	if l.perMinute > 0 {
		out = append(out, window{key: "rate:swipes:min:" + userID.String(), length: swipesMinuteWindow, limit: int64(l.perMinute)})
	}
	if l.per10Sec > 0 {
		out = append(out, window{key: "rate:swipes:10s:" + userID.String(), length: swipes10SecWindow, limit: int64(l.per10Sec)})
	}
	return out
}

func (l *Limiter) check(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("invalid user id")
	}
	if l.store == nil {
		return fmt.Errorf("rate limiter store is nil")
	}
	return nil
}

// AllowSwipe counts one swipe in every window. When any window overflows it
// reports the longest remaining wait in seconds.
func (l *Limiter) AllowSwipe(ctx context.Context, userID uuid.UUID) (int64, bool, error) {
	if err := l.check(userID); err != nil {
		return 0, false, err
	}

	var retryAfterSec int64
	blocked := false
	for _, w := range l.windows(userID) {
		count, ttl, err := l.store.IncrementWindow(ctx, w.key, w.length)
		if err != nil {
			return 0, false, err
		}
		if count > w.limit {
			blocked = true
			retryAfterSec = max(retryAfterSec, ceilSeconds(ttl), 1)
		}
	}

	if blocked {
		return retryAfterSec, false, nil
	}
	return 0, true, nil
}

// RetryAfterSwipe reads the windows without counting. A full window means the
// next swipe would be rejected, so its remaining time is reported.
func (l *Limiter) RetryAfterSwipe(ctx context.Context, userID uuid.UUID) (int64, error) {
	if err := l.check(userID); err != nil {
		return 0, err
	}

	var retryAfterSec int64
	for _, w := range l.windows(userID) {
		count, ttl, err := l.store.WindowState(ctx, w.key)
		if err != nil {
			return 0, err
		}
		if count >= w.limit {
			retryAfterSec = max(retryAfterSec, ceilSeconds(ttl))
		}
	}

	return retryAfterSec, nil
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
