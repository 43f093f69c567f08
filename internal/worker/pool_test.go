package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gevornos/Life-is-RPG/internal/testing/leaktest"
)

type countingJob struct {
	count *atomic.Int64
}

func (j countingJob) Process(_ context.Context) error {
	j.count.Add(1)
	return nil
}

type failingJob struct{}

func (failingJob) Process(_ context.Context) error {
	return assert.AnError
}

func TestPoolProcessesJobs(t *testing.T) {
	var count atomic.Int64

	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(2, 10)
		pool.Start()

		for i := 0; i < 5; i++ {
			pool.Enqueue(countingJob{count: &count})
		}

		waitFor(t, func() bool { return count.Load() == 5 })
		pool.Stop()
	})

	assert.Equal(t, int64(5), count.Load())
}

func TestPoolSurvivesFailingJobs(t *testing.T) {
	var count atomic.Int64

	pool := NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(failingJob{})
	pool.Enqueue(countingJob{count: &count})

	waitFor(t, func() bool { return count.Load() == 1 })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
