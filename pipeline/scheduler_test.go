package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerBoundsConcurrency(t *testing.T) {
	sched := NewScheduler(2)
	var inFlight, maxSeen int32

	for i := 0; i < 6; i++ {
		n := uint64(i)
		err := sched.Submit(context.Background(), n, func(ctx context.Context) error {
			cur := atomic.AddInt32(&inFlight, 1)
			for {
				old := atomic.LoadInt32(&maxSeen)
				if cur <= old || atomic.CompareAndSwapInt32(&maxSeen, old, cur) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, sched.Wait())
	require.LessOrEqual(t, int(atomic.LoadInt32(&maxSeen)), 2)
}

func TestSchedulerWaitReturnsFirstError(t *testing.T) {
	sched := NewScheduler(4)
	boom := errors.New("boom")

	require.NoError(t, sched.Submit(context.Background(), 1, func(ctx context.Context) error {
		return boom
	}))
	require.NoError(t, sched.Submit(context.Background(), 2, func(ctx context.Context) error {
		return nil
	}))

	err := sched.Wait()
	require.ErrorIs(t, err, boom)
}

func TestSchedulerRejectsAfterClose(t *testing.T) {
	sched := NewScheduler(1)
	sched.Close()

	err := sched.Submit(context.Background(), 1, func(ctx context.Context) error { return nil })
	require.ErrorIs(t, err, errSchedulerClosed)
}

func TestSchedulerSubmitRespectsContextCancellation(t *testing.T) {
	sched := NewScheduler(1)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, sched.Submit(ctx, 1, func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		return nil
	}))

	cancel()
	err := sched.Submit(ctx, 2, func(ctx context.Context) error { return nil })
	require.Error(t, err)

	require.NoError(t, sched.Wait())
}
