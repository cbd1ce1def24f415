package metrics

import (
	"time"

	"mercator-hq/ponyini/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// File operations of the pack pipeline.
const (
	OpRename    = "rename"
	OpWriteINI  = "write_ini"
	OpWriteJSON = "write_json"
)

// PackMetrics tracks whole pack runs.
//
// Metrics:
//   - ponyini_pack_runs_total: Pack runs by trigger ("cli", "watch")
//   - ponyini_pack_run_duration_seconds: Pack run duration
//   - ponyini_pack_ponies: Ponies seen by the last run
//   - ponyini_files_total: File operations by operation and status
//   - ponyini_catalog_pruned_total: Catalog entries removed by retention
type PackMetrics struct {
	runsTotal   *prometheus.CounterVec
	runDuration prometheus.Histogram
	ponies      prometheus.Gauge
	filesTotal  *prometheus.CounterVec
	prunedTotal prometheus.Counter
}

// NewPackMetrics creates and registers pack metrics with the provided registry.
func NewPackMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *PackMetrics {
	pm := &PackMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "pack_runs_total",
				Help:      "Total number of pack runs",
			},
			[]string{"trigger"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "pack_run_duration_seconds",
				Help:      "Duration of pack runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
			},
		),

		ponies: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "pack_ponies",
				Help:      "Number of ponies found by the last pack run",
			},
		),

		filesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "files_total",
				Help:      "Total number of file operations",
			},
			[]string{"operation", "status"},
		),

		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "catalog_pruned_total",
				Help:      "Total number of catalog entries removed by retention",
			},
		),
	}

	registry.MustRegister(
		pm.runsTotal,
		pm.runDuration,
		pm.ponies,
		pm.filesTotal,
		pm.prunedTotal,
	)

	return pm
}

// RecordRun records a finished pack run.
func (pm *PackMetrics) RecordRun(trigger string, duration time.Duration, ponies int) {
	pm.runsTotal.WithLabelValues(trigger).Inc()
	pm.runDuration.Observe(duration.Seconds())
	pm.ponies.Set(float64(ponies))
}

// RecordFile counts a file operation.
func (pm *PackMetrics) RecordFile(operation, status string) {
	pm.filesTotal.WithLabelValues(operation, status).Inc()
}

// RecordPruned adds n pruned catalog entries.
func (pm *PackMetrics) RecordPruned(n int) {
	if n > 0 {
		pm.prunedTotal.Add(float64(n))
	}
}
