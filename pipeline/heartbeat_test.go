package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/mevtrace/engine/metrics"
	"github.com/stretchr/testify/require"
)

func TestHeartbeatMonitorFlushesAfterSilence(t *testing.T) {
	reg := metrics.New()
	flushed := make(chan struct{}, 1)
	m := &HeartbeatMonitor{
		Metrics: reg,
		Flush:   func() { flushed <- struct{}{} },
	}
	m.setSeen(time.Now().Add(-heartbeatTimeout - time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), heartbeatTimeout)
	defer cancel()
	go m.Watch(ctx)

	select {
	case <-flushed:
	case <-time.After(heartbeatTimeout):
		t.Fatal("expected Flush to fire after silence")
	}
}

func TestHeartbeatMonitorRecordsLastSeen(t *testing.T) {
	m := &HeartbeatMonitor{}
	m.setSeen(time.Now())
	require.WithinDuration(t, time.Now(), m.lastSeen(), time.Second)
}
