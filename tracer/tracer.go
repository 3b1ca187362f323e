// Package tracer defines the engine's one external collaborator: the
// component that turns a bare block number into the header and transaction
// traces everything downstream classifies and prices. Production wiring
// talks to a tracing node (e.g. an execution client exposing debug_trace*);
// tests use a hand-written fake.
package tracer

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mevtrace/engine/types"
	"golang.org/x/time/rate"
)

// Tracer produces a block's header and per-transaction traces. A transient
// failure (node unreachable, request timeout) is expected and the caller's
// job to retry; a permanent failure (block number beyond chain tip,
// malformed response) is returned as-is.
type Tracer interface {
	Trace(ctx context.Context, blockNumber uint64) (types.BlockHeader, []types.TxTrace, error)
}

// RetryConfig bounds the exponential backoff a RetryingTracer applies to a
// transient tracer error.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryConfig matches spec: up to 3 attempts total, backing off from
// a 1-second base delay.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxAttempts: 3, BaseDelay: time.Second}
}

// RetryingTracer wraps a Tracer with exponential-backoff retry. On
// exhaustion the last error is returned, and the caller (the pipeline's
// per-block task) is expected to skip the block and log it rather than
// fail the whole run.
type RetryingTracer struct {
	inner Tracer
	cfg   RetryConfig
}

// NewRetryingTracer wraps inner with cfg's retry policy.
func NewRetryingTracer(inner Tracer, cfg RetryConfig) *RetryingTracer {
	return &RetryingTracer{inner: inner, cfg: cfg}
}

// Trace attempts inner.Trace up to cfg.MaxAttempts times, pacing retries
// with a rate.Limiter whose interval doubles each attempt — the same
// token-bucket primitive used to pace outbound RPC elsewhere in the
// ecosystem, here repurposed as a per-attempt backoff clock rather than a
// steady-state throughput cap.
func (r *RetryingTracer) Trace(ctx context.Context, blockNumber uint64) (types.BlockHeader, []types.TxTrace, error) {
	var lastErr error
	delay := r.cfg.BaseDelay

	for attempt := 1; attempt <= r.cfg.MaxAttempts; attempt++ {
		header, traces, err := r.inner.Trace(ctx, blockNumber)
		if err == nil {
			return header, traces, nil
		}
		lastErr = err
		log.Warn("tracer call failed", "block", blockNumber, "attempt", attempt, "err", err)

		if attempt == r.cfg.MaxAttempts {
			break
		}
		// A freshly constructed limiter starts with its burst token already
		// available, so the first reservation against it is free; the
		// second is what actually carries the backoff interval as its
		// delay.
		limiter := rate.NewLimiter(rate.Every(delay), 1)
		now := time.Now()
		limiter.ReserveN(now, 1)
		reservation := limiter.ReserveN(now, 1)
		select {
		case <-time.After(reservation.Delay()):
		case <-ctx.Done():
			return types.BlockHeader{}, nil, ctx.Err()
		}
		delay *= 2
	}
	log.Error("tracer exhausted retries, skipping block", "block", blockNumber, "attempts", r.cfg.MaxAttempts, "err", lastErr)
	return types.BlockHeader{}, nil, lastErr
}
