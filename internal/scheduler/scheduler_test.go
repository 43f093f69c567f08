package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gevornos/Life-is-RPG/internal/testing/leaktest"
	"github.com/gevornos/Life-is-RPG/internal/worker"
)

type tickJob struct {
	count *atomic.Int64
}

func (j tickJob) Process(_ context.Context) error {
	j.count.Add(1)
	return nil
}

func TestSchedulerRunsJobOnInterval(t *testing.T) {
	var count atomic.Int64

	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := worker.NewPool(1, 4)
		pool.Start()

		s := New(pool)
		s.Schedule(10*time.Millisecond, tickJob{count: &count})

		deadline := time.Now().Add(2 * time.Second)
		for count.Load() < 3 && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}

		s.Stop()
		pool.Stop()
	})

	if count.Load() < 3 {
		t.Fatalf("expected at least 3 runs, got %d", count.Load())
	}
}

func TestSchedulerStopPreventsFurtherRuns(t *testing.T) {
	var count atomic.Int64

	pool := worker.NewPool(1, 4)
	pool.Start()
	defer pool.Stop()

	s := New(pool)
	s.Schedule(10*time.Millisecond, tickJob{count: &count})

	deadline := time.Now().Add(2 * time.Second)
	for count.Load() < 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	s.Stop()

	settled := count.Load()
	time.Sleep(50 * time.Millisecond)
	if count.Load() > settled+1 {
		t.Fatalf("jobs kept running after Stop: %d -> %d", settled, count.Load())
	}
}
