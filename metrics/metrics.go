// Package metrics exposes the engine's Prometheus-style scrape endpoint:
// per-stage block latency, traces-per-block, classifier unknown-selector
// counts, pricer cache hit rate, bundles emitted by type, and heartbeat
// state, per spec.md §6.
package metrics

import (
	"net/http"

	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stage names the pipeline phase a latency observation belongs to.
type Stage string

const (
	StageTrace    Stage = "trace"
	StageClassify Stage = "classify"
	StagePrice    Stage = "price"
	StageInspect  Stage = "inspect"
	StageCompose  Stage = "compose"
	StageStore    Stage = "store"
)

// Registry owns every collector the engine exports, registered against a
// private prometheus.Registry so tests can construct one per-test without
// colliding on the global default registry.
type Registry struct {
	registry *prometheus.Registry

	StageLatency         *prometheus.HistogramVec
	TracesPerBlock       prometheus.Histogram
	ClassifierUnknown    prometheus.Counter
	PricerCacheHits      prometheus.Counter
	PricerCacheMisses    prometheus.Counter
	BundlesByType        *prometheus.CounterVec
	HeartbeatState       prometheus.Gauge
}

// New builds and registers the engine's collector set.
func New() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.StageLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tracepilot",
		Name:      "stage_latency_seconds",
		Help:      "Per-block, per-stage processing latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})

	r.TracesPerBlock = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tracepilot",
		Name:      "traces_per_block",
		Help:      "Number of trace entries classified per block.",
		Buckets:   prometheus.ExponentialBuckets(4, 2, 12),
	})

	r.ClassifierUnknown = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracepilot",
		Name:      "classifier_unknown_selector_total",
		Help:      "Calls the classifier's dispatch table had no entry for.",
	})

	r.PricerCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracepilot",
		Name:      "pricer_cache_hits_total",
		Help:      "DEX quote cache hits.",
	})
	r.PricerCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tracepilot",
		Name:      "pricer_cache_misses_total",
		Help:      "DEX quote cache misses.",
	})

	r.BundlesByType = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tracepilot",
		Name:      "bundles_emitted_total",
		Help:      "MEV bundles emitted by type, after composition and profit filtering.",
	}, []string{"mev_type"})

	r.HeartbeatState = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tracepilot",
		Name:      "heartbeat_state",
		Help:      "Failover heartbeat state: 0=unknown, 1=healthy, 2=degraded.",
	})

	r.registry.MustRegister(
		r.StageLatency, r.TracesPerBlock, r.ClassifierUnknown,
		r.PricerCacheHits, r.PricerCacheMisses, r.BundlesByType, r.HeartbeatState,
	)
	return r
}

// CacheHitRate returns the pricer's observed cache hit rate in [0, 1],
// 0 if no lookups have been observed yet.
func (r *Registry) CacheHitRate() float64 {
	hits := getCounterValue(r.PricerCacheHits)
	misses := getCounterValue(r.PricerCacheMisses)
	total := hits + misses
	if total == 0 {
		return 0
	}
	return hits / total
}

func getCounterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// Handler returns the HTTP handler to mount on --metrics-port.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// HeartbeatState values, named for readability at call sites.
const (
	HeartbeatUnknown  = 0
	HeartbeatHealthy  = 1
	HeartbeatDegraded = 2
)
