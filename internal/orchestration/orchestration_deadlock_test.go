package orchestration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/agbru/headergen/internal/generator"
	"github.com/agbru/headergen/internal/job"
	"github.com/agbru/headergen/internal/progress"
)

// behaviorUnit simulates unit behaviors for deadlock testing.
func behaviorUnit(behavior string, delay time.Duration) UnitFunc {
	return func(ctx context.Context, p job.Payload, _ generator.Factory, out chan<- progress.Message) {
		defer close(out)
		r := p.Job.Range
		switch behavior {
		case "slow":
			for i := r.Start; i <= r.End; i++ {
				if ctx.Err() != nil {
					out <- progress.Failed(p.Job.Group, r, ctx.Err())
					return
				}
				out <- progress.NewProgress(p.Job.Group, p.OutputRoot, r, i-r.Start+1)
				time.Sleep(delay)
			}
		case "error":
			out <- progress.Failed(p.Job.Group, r, fmt.Errorf("simulated error"))
			return
		case "progress_flood":
			for i := 0; i < 10000; i++ {
				out <- progress.NewProgress(p.Job.Group, p.OutputRoot, r, 1)
			}
		}
		out <- progress.Done(p.Job.Group, r)
	}
}

func noIndex(string, []string, int) error { return nil }

// TestCoordinatorNoDeadlock_MixedBehaviors verifies that Run completes
// without deadlocking under various unit behaviors, including a reporter
// that consumes slowly.
func TestCoordinatorNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name     string
		behavior string
		delay    time.Duration
		failFast bool
	}{
		{name: "all_instant", behavior: "instant"},
		{name: "slow", behavior: "slow", delay: time.Millisecond},
		{name: "errors", behavior: "error"},
		{name: "errors_fail_fast", behavior: "error", failFast: true},
		{name: "progress_flood", behavior: "progress_flood"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			c := NewCoordinator(nil,
				WithUnit(behaviorUnit(tc.behavior, tc.delay)),
				WithIndexBuilder(noIndex),
				WithFailFast(tc.failFast))
			cfg := RunConfig{Quantity: 20, Workers: 4, OutputRoot: t.TempDir(), Groups: testGroups("desktop", "mobile")}

			done := make(chan struct{})
			go func() {
				defer close(done)
				_, _ = c.Run(ctx, cfg)
			}()

			select {
			case <-done:
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: Run did not complete within timeout")
			}
		})
	}
}

// TestCoordinatorNoDeadlock_ContextCancellation verifies that cancelling the
// context during a run does not cause a deadlock.
func TestCoordinatorNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	c := NewCoordinator(nil, WithUnit(behaviorUnit("slow", 20*time.Millisecond)), WithIndexBuilder(noIndex))
	cfg := RunConfig{Quantity: 100, Workers: 2, OutputRoot: t.TempDir(), Groups: testGroups()}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Run(ctx, cfg)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
}
