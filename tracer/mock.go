package tracer

import (
	"context"

	"github.com/mevtrace/engine/types"
)

// MockTracer is a hand-written Tracer fake for tests: a fixed table of
// per-block results, with an optional per-block failure count letting a
// test exercise RetryingTracer's backoff path.
type MockTracer struct {
	Blocks map[uint64]mockBlock

	// FailuresBeforeSuccess lets a test simulate N transient failures
	// before a block call finally succeeds.
	FailuresBeforeSuccess map[uint64]int
	calls                 map[uint64]int
}

type mockBlock struct {
	header types.BlockHeader
	traces []types.TxTrace
	err    error
}

// NewMockTracer builds an empty MockTracer.
func NewMockTracer() *MockTracer {
	return &MockTracer{
		Blocks:                make(map[uint64]mockBlock),
		FailuresBeforeSuccess: make(map[uint64]int),
		calls:                 make(map[uint64]int),
	}
}

// SetBlock registers a block's header and traces for future Trace calls.
func (m *MockTracer) SetBlock(number uint64, header types.BlockHeader, traces []types.TxTrace) {
	m.Blocks[number] = mockBlock{header: header, traces: traces}
}

// SetErr makes every call for number return err until overwritten.
func (m *MockTracer) SetErr(number uint64, err error) {
	m.Blocks[number] = mockBlock{err: err}
}

// Trace implements Tracer.
func (m *MockTracer) Trace(ctx context.Context, number uint64) (types.BlockHeader, []types.TxTrace, error) {
	m.calls[number]++
	if need := m.FailuresBeforeSuccess[number]; need >= m.calls[number] {
		return types.BlockHeader{}, nil, errTransient
	}
	b, ok := m.Blocks[number]
	if !ok {
		return types.BlockHeader{}, nil, errUnknownBlock
	}
	if b.err != nil {
		return types.BlockHeader{}, nil, b.err
	}
	return b.header, b.traces, nil
}

// Calls reports how many times Trace was called for number.
func (m *MockTracer) Calls(number uint64) int {
	return m.calls[number]
}
