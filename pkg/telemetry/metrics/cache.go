package metrics

import (
	"mercator-hq/ponyini/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics tracks the parse cache.
//
// Metrics:
//   - ponyini_cache_hits_total: Parsed documents served from the cache
//   - ponyini_cache_misses_total: Documents that had to be parsed
//   - ponyini_cache_entries: Current number of cached documents
//   - ponyini_cache_evictions_total: Documents pushed out of the cache
type CacheMetrics struct {
	hitsTotal      prometheus.Counter
	missesTotal    prometheus.Counter
	entries        prometheus.Gauge
	evictionsTotal prometheus.Counter
}

// NewCacheMetrics creates and registers cache metrics with the provided registry.
func NewCacheMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		hitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of parse cache hits",
			},
		),

		missesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of parse cache misses",
			},
		),

		entries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "cache_entries",
				Help:      "Current number of entries in the parse cache",
			},
		),

		evictionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "cache_evictions_total",
				Help:      "Total number of parse cache evictions",
			},
		),
	}

	registry.MustRegister(
		cm.hitsTotal,
		cm.missesTotal,
		cm.entries,
		cm.evictionsTotal,
	)

	return cm
}

// RecordHit records a cache hit.
func (cm *CacheMetrics) RecordHit() {
	cm.hitsTotal.Inc()
}

// RecordMiss records a cache miss.
func (cm *CacheMetrics) RecordMiss() {
	cm.missesTotal.Inc()
}

// UpdateSize updates the current size of the cache.
func (cm *CacheMetrics) UpdateSize(size int) {
	cm.entries.Set(float64(size))
}

// RecordEviction records a cache eviction.
func (cm *CacheMetrics) RecordEviction() {
	cm.evictionsTotal.Inc()
}
