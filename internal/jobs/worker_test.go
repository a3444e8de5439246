package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_EnqueueRunsJobs(t *testing.T) {
	w := NewWorker(2)
	defer w.Shutdown()

	var ran int32
	done := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		require.True(t, w.Enqueue("count", func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			done <- struct{}{}
			return nil
		}))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("job did not run")
		}
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&ran))
}

func TestWorker_FailuresAndPanicsAreCounted(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	w.Enqueue("fail", func(ctx context.Context) error { return errors.New("boom") })
	w.Enqueue("panic", func(ctx context.Context) error { panic("boom") })

	assert.Eventually(t, func() bool {
		stats := w.GetStats()
		return stats.CompletedJobs == 2 && stats.FailedJobs == 2 && stats.ActiveJobs == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWorker_ScheduleEveryImmediateRunsAtStart(t *testing.T) {
	w := NewWorker(1)
	defer w.Shutdown()

	ran := make(chan struct{}, 1)
	w.ScheduleEveryImmediate("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled job did not run at start")
	}
}

func TestWorker_EnqueueAfterShutdown(t *testing.T) {
	w := NewWorker(1)
	w.Shutdown()
	assert.False(t, w.Enqueue("late", func(ctx context.Context) error { return nil }))
}
