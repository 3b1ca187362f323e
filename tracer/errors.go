package tracer

import (
	"context"
	"errors"

	"github.com/mevtrace/engine/types"
)

var (
	errTransient    = errors.New("tracer: transient error")
	errUnknownBlock = errors.New("tracer: unknown block")

	// ErrNotConfigured is returned by NotConfiguredTracer, the engine's
	// default Tracer until a node-backed one (debug_traceBlock* glue, out
	// of this module's scope per spec.md §1) is wired in its place.
	ErrNotConfigured = errors.New("tracer: no tracing node configured")
)

// NotConfiguredTracer is the zero-value Tracer: every call fails with
// ErrNotConfigured. It exists so `run` can start up and fail loudly at the
// first block rather than silently returning fabricated data.
type NotConfiguredTracer struct{}

// Trace implements Tracer.
func (NotConfiguredTracer) Trace(ctx context.Context, blockNumber uint64) (types.BlockHeader, []types.TxTrace, error) {
	return types.BlockHeader{}, nil, ErrNotConfigured
}
