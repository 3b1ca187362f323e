package tracer

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mevtrace/engine/types"
	"github.com/stretchr/testify/require"
)

func TestRetryingTracerSucceedsOnFirstTry(t *testing.T) {
	mock := NewMockTracer()
	mock.SetBlock(10, types.BlockHeader{Number: 10, Hash: common.HexToHash("0xa")}, nil)

	r := NewRetryingTracer(mock, RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond})
	header, _, err := r.Trace(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, uint64(10), header.Number)
	require.Equal(t, 1, mock.Calls(10))
}

func TestRetryingTracerRecoversAfterTransientFailures(t *testing.T) {
	mock := NewMockTracer()
	mock.SetBlock(11, types.BlockHeader{Number: 11}, nil)
	mock.FailuresBeforeSuccess[11] = 2

	r := NewRetryingTracer(mock, RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond})
	header, _, err := r.Trace(context.Background(), 11)
	require.NoError(t, err)
	require.Equal(t, uint64(11), header.Number)
	require.Equal(t, 3, mock.Calls(11))
}

func TestRetryingTracerExhaustsAndReturnsLastError(t *testing.T) {
	mock := NewMockTracer()
	mock.FailuresBeforeSuccess[12] = 10

	r := NewRetryingTracer(mock, RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond})
	_, _, err := r.Trace(context.Background(), 12)
	require.Error(t, err)
	require.Equal(t, 3, mock.Calls(12))
}

func TestRetryingTracerRespectsContextCancellation(t *testing.T) {
	mock := NewMockTracer()
	mock.FailuresBeforeSuccess[13] = 10

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRetryingTracer(mock, RetryConfig{MaxAttempts: 3, BaseDelay: time.Hour})
	_, _, err := r.Trace(ctx, 13)
	require.Error(t, err)
}
