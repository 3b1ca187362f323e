package pipeline

import (
	"context"
	"testing"

	"github.com/mevtrace/engine/tracer"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func TestRunnerHistoricalProcessesWholeRange(t *testing.T) {
	deps, st := newTestDeps(t)
	mt := deps.Tracer.(*tracer.MockTracer)
	for n := uint64(1); n <= 3; n++ {
		mt.SetBlock(n, types.BlockHeader{Number: n, Timestamp: 1_700_000_000 + n}, nil)
	}

	r := &Runner{
		Scheduler:  NewScheduler(2),
		Deps:       deps,
		Mode:       ModeHistorical,
		StartBlock: 1,
		EndBlock:   3,
	}
	require.NoError(t, r.Run(context.Background()))

	for n := uint64(1); n <= 3; n++ {
		_, ok, err := st.GetMevBlock(n)
		require.NoError(t, err)
		require.True(t, ok, "block %d should have been processed", n)
	}
}

type fixedHead struct{ n uint64 }

func (f fixedHead) HeadNumber(ctx context.Context) (uint64, error) { return f.n, nil }

func TestRunnerTipFollowerStopsAtBehindTip(t *testing.T) {
	deps, st := newTestDeps(t)
	mt := deps.Tracer.(*tracer.MockTracer)
	for n := uint64(1); n <= 5; n++ {
		mt.SetBlock(n, types.BlockHeader{Number: n, Timestamp: 1_700_000_000 + n}, nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	r := &Runner{
		Scheduler:  NewScheduler(2),
		Deps:       deps,
		Mode:       ModeTipFollower,
		StartBlock: 1,
		BehindTip:  2,
		Head:       fixedHead{n: 5},
		PollInterval: func(ctx context.Context) error {
			calls++
			cancel()
			return ctx.Err()
		},
	}
	err := r.Run(ctx)
	require.NoError(t, err) // a cancelled PollInterval stops the loop but isn't itself a run error
	require.Equal(t, 1, calls)

	for n := uint64(1); n <= 3; n++ {
		_, ok, getErr := st.GetMevBlock(n)
		require.NoError(t, getErr)
		require.True(t, ok, "block %d (tip-2) should have been processed", n)
	}
	_, ok, getErr := st.GetMevBlock(4)
	require.NoError(t, getErr)
	require.False(t, ok, "block 4 is within behind_tip and should not be processed yet")
}
