package retention

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunPrunesWithRetentionCutoff(t *testing.T) {
	now := time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)
	pruner := &fakePruner{deleted: 3}

	job := New(pruner, 48*time.Hour, time.Minute, nil)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run retention job: %v", err)
	}

	want := now.Add(-48 * time.Hour)
	if len(pruner.cutoffs) != 1 || !pruner.cutoffs[0].Equal(want) {
		t.Fatalf("unexpected cutoffs: %v want %s", pruner.cutoffs, want)
	}
}

func TestRunWrapsPrunerError(t *testing.T) {
	cause := errors.New("db down")
	job := New(&fakePruner{err: cause}, time.Hour, time.Minute, nil)

	if err := job.Run(context.Background()); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped pruner error, got %v", err)
	}
}

func TestRunWithoutPrunerIsNoop(t *testing.T) {
	if err := New(nil, 0, 0, nil).Run(context.Background()); err != nil {
		t.Fatalf("run without pruner: %v", err)
	}
}

func TestLoopStopsOnContextCancel(t *testing.T) {
	pruner := &fakePruner{}
	job := New(pruner, time.Hour, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Loop(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("loop did not stop after cancel")
	}
}

type fakePruner struct {
	deleted int64
	err     error
	cutoffs []time.Time
}

func (f *fakePruner) Prune(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.deleted, f.err
}
