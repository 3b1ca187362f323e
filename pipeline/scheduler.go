package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// errSchedulerClosed is returned by Submit once Close has been called.
var errSchedulerClosed = fmt.Errorf("pipeline: scheduler is closed")

// blockJob is one unit of dispatch: a block number and the work to run for
// it.
type blockJob struct {
	number uint64
	fn     func(ctx context.Context) error
}

// Scheduler bounds the number of blocks in flight at once while letting
// their stages overlap freely (block N's inspect stage can run alongside
// block N+1's trace stage), the same shape peer.Network uses to bound
// outbound requests: a weighted semaphore gates admission, an RWMutex
// guards the in-flight set, and an atomic flag makes Close idempotent and
// observable without taking the lock.
type Scheduler struct {
	sem *semaphore.Weighted

	mu       sync.RWMutex
	inFlight map[uint64]struct{}

	closed atomic.Bool

	wg      sync.WaitGroup
	errOnce sync.Once
	errCh   chan error
}

// NewScheduler returns a Scheduler admitting at most maxInFlight blocks
// concurrently.
func NewScheduler(maxInFlight int64) *Scheduler {
	return &Scheduler{
		sem:      semaphore.NewWeighted(maxInFlight),
		inFlight: make(map[uint64]struct{}),
		errCh:    make(chan error, 1),
	}
}

// Submit blocks until a slot is free (or ctx is cancelled), then runs fn for
// blockNumber in its own goroutine. The first fn to return a non-nil error
// is recorded and retrievable from Wait; later errors are logged by the
// caller of fn and otherwise dropped, matching spec.md's "one bad block
// doesn't sink the run" posture.
func (s *Scheduler) Submit(ctx context.Context, blockNumber uint64, fn func(ctx context.Context) error) error {
	if s.closed.Load() {
		return errSchedulerClosed
	}
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	s.mu.Lock()
	s.inFlight[blockNumber] = struct{}{}
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.sem.Release(1)
		defer func() {
			s.mu.Lock()
			delete(s.inFlight, blockNumber)
			s.mu.Unlock()
		}()

		if err := fn(ctx); err != nil {
			s.errOnce.Do(func() { s.errCh <- fmt.Errorf("block %d: %w", blockNumber, err) })
		}
	}()
	return nil
}

// InFlight returns the block numbers currently running.
func (s *Scheduler) InFlight() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]uint64, 0, len(s.inFlight))
	for n := range s.inFlight {
		out = append(out, n)
	}
	return out
}

// Wait blocks until every submitted job has completed, then returns the
// first job error recorded, if any.
func (s *Scheduler) Wait() error {
	s.wg.Wait()
	select {
	case err := <-s.errCh:
		return err
	default:
		return nil
	}
}

// Close marks the scheduler as no longer accepting new jobs. Idempotent.
func (s *Scheduler) Close() {
	s.closed.Store(true)
}
