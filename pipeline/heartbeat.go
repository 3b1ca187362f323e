package pipeline

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/websocket"
	"github.com/mevtrace/engine/metrics"
)

// heartbeatTimeout is how long a monitor waits without a heartbeat before
// declaring its peer down and flushing local state, per spec.md §5's
// failover paragraph.
const heartbeatTimeout = 7 * time.Second

// heartbeatInterval is how often a client emits a heartbeat to its monitor.
const heartbeatInterval = 4 * time.Second

// FlushFunc is called by a HeartbeatMonitor when its peer goes silent for
// heartbeatTimeout; it is the runner's hook to flush whatever in-memory
// state would otherwise be lost on an ungraceful peer failure.
type FlushFunc func()

var upgrader = websocket.Upgrader{}

// HeartbeatMonitor accepts a single peer connection and watches for
// heartbeat frames, triggering Flush if none arrive for heartbeatTimeout.
type HeartbeatMonitor struct {
	Metrics *metrics.Registry
	Flush   FlushFunc

	mu   sync.Mutex
	seen time.Time
}

// Handler returns the http.Handler to mount the monitor's websocket
// endpoint on.
func (m *HeartbeatMonitor) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			log.Error("heartbeat monitor: upgrade failed", "err", err)
			return
		}
		defer conn.Close()
		m.setSeen(time.Now())
		m.setState(metrics.HeartbeatHealthy)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				log.Warn("heartbeat monitor: peer connection closed", "err", err)
				return
			}
			m.setSeen(time.Now())
			m.setState(metrics.HeartbeatHealthy)
		}
	})
}

// Watch polls for staleness every heartbeatTimeout/2 until ctx is
// cancelled, calling Flush (once per silence episode) whenever the peer has
// been quiet for heartbeatTimeout.
func (m *HeartbeatMonitor) Watch(ctx context.Context) {
	ticker := time.NewTicker(heartbeatTimeout / 2)
	defer ticker.Stop()
	flushed := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if time.Since(m.lastSeen()) >= heartbeatTimeout {
				m.setState(metrics.HeartbeatDegraded)
				if !flushed {
					flushed = true
					if m.Flush != nil {
						m.Flush()
					}
				}
			} else {
				flushed = false
			}
		}
	}
}

func (m *HeartbeatMonitor) setSeen(t time.Time) {
	m.mu.Lock()
	m.seen = t
	m.mu.Unlock()
}

func (m *HeartbeatMonitor) lastSeen() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seen
}

func (m *HeartbeatMonitor) setState(v float64) {
	if m.Metrics != nil {
		m.Metrics.HeartbeatState.Set(v)
	}
}

// HeartbeatClient dials a monitor and emits a heartbeat frame every
// heartbeatInterval until ctx is cancelled.
type HeartbeatClient struct {
	URL     string
	Metrics *metrics.Registry
}

// Run dials URL and emits heartbeats until ctx is cancelled or the
// connection drops; the caller is responsible for reconnecting if it wants
// to survive a dropped connection.
func (c *HeartbeatClient) Run(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.TextMessage, []byte("beat")); err != nil {
				return err
			}
		}
	}
}
