package metrics

import (
	"time"

	"mercator-hq/ponyini/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric ponyini records and is the single
// entry point the pack pipeline reports through.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	conversion *ConversionMetrics
	pack       *PackMetrics
	cache      *CacheMetrics
}

// NewCollector creates a new metrics collector. If registry is nil, a fresh
// registry is created.
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg == nil {
		cfg = &config.MetricsConfig{}
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	return &Collector{
		config:     cfg,
		registry:   registry,
		conversion: NewConversionMetrics(cfg, registry),
		pack:       NewPackMetrics(cfg, registry),
		cache:      NewCacheMetrics(cfg, registry),
	}
}

// Registry returns the registry the collector registers into.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordConversion records one converted pony.ini.
//
// Parameters:
//   - status: StatusOK, StatusPartial or StatusFailed
//   - duration: parse plus transform time
//   - rows: rows read from the document
//   - skipped: rows whose record failed coercion
func (c *Collector) RecordConversion(status string, duration time.Duration, rows, skipped int) {
	c.conversion.RecordConversion(status, duration, rows, skipped)
}

// RecordRecords adds n records of the given tag.
func (c *Collector) RecordRecords(tag string, n int) {
	c.conversion.RecordRecords(tag, n)
}

// RecordDiagnostic counts one diagnostic.
//
//	collector.RecordDiagnostic("record", "invalid_boolean", "error")
func (c *Collector) RecordDiagnostic(kind, code, severity string) {
	c.conversion.RecordDiagnostic(kind, code, severity)
}

// RecordFile counts a file operation of the pack pipeline.
//
//	collector.RecordFile(metrics.OpWriteINI, metrics.StatusOK)
func (c *Collector) RecordFile(operation, status string) {
	c.pack.RecordFile(operation, status)
}

// RecordPackRun records a finished pack run and the number of ponies it saw.
func (c *Collector) RecordPackRun(trigger string, duration time.Duration, ponies int) {
	c.pack.RecordRun(trigger, duration, ponies)
}

// RecordPruned adds n catalog entries removed by retention.
func (c *Collector) RecordPruned(n int) {
	c.pack.RecordPruned(n)
}

// RecordCacheHit records a parse cache hit.
func (c *Collector) RecordCacheHit() {
	c.cache.RecordHit()
}

// RecordCacheMiss records a parse cache miss.
func (c *Collector) RecordCacheMiss() {
	c.cache.RecordMiss()
}

// UpdateCacheSize sets the number of cached documents.
func (c *Collector) UpdateCacheSize(n int) {
	c.cache.UpdateSize(n)
}

// RecordCacheEviction records an entry pushed out of the parse cache.
func (c *Collector) RecordCacheEviction() {
	c.cache.RecordEviction()
}
