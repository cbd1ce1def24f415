package metrics

import (
	"time"

	"mercator-hq/ponyini/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Conversion statuses.
const (
	StatusOK      = "ok"
	StatusPartial = "partial"
	StatusFailed  = "failed"
)

// ConversionMetrics tracks pony.ini conversions.
//
// Metrics:
//   - ponyini_conversions_total: Conversions by status
//   - ponyini_conversion_duration_seconds: Parse plus transform duration
//   - ponyini_rows_total: Rows read
//   - ponyini_rows_skipped_total: Rows dropped by coercion failures
//   - ponyini_records_total: Records produced by tag
//   - ponyini_diagnostics_total: Diagnostics by type, code and severity
type ConversionMetrics struct {
	conversionsTotal   *prometheus.CounterVec
	conversionDuration prometheus.Histogram
	rowsTotal          prometheus.Counter
	skippedTotal       prometheus.Counter
	recordsTotal       *prometheus.CounterVec
	diagnosticsTotal   *prometheus.CounterVec
}

// NewConversionMetrics creates and registers conversion metrics with the provided registry.
func NewConversionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ConversionMetrics {
	cm := &ConversionMetrics{
		conversionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "conversions_total",
				Help:      "Total number of pony.ini conversions",
			},
			[]string{"status"},
		),

		conversionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "conversion_duration_seconds",
				Help:      "Duration of pony.ini parse and transform in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		rowsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "rows_total",
				Help:      "Total number of rows read from pony.ini files",
			},
		),

		skippedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "rows_skipped_total",
				Help:      "Total number of rows dropped because a field could not be coerced",
			},
		),

		recordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "records_total",
				Help:      "Total number of records produced by tag",
			},
			[]string{"tag"},
		),

		diagnosticsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "diagnostics_total",
				Help:      "Total number of diagnostics reported",
			},
			[]string{"type", "code", "severity"},
		),
	}

	registry.MustRegister(
		cm.conversionsTotal,
		cm.conversionDuration,
		cm.rowsTotal,
		cm.skippedTotal,
		cm.recordsTotal,
		cm.diagnosticsTotal,
	)

	return cm
}

// RecordConversion records a finished conversion.
func (cm *ConversionMetrics) RecordConversion(status string, duration time.Duration, rows, skipped int) {
	cm.conversionsTotal.WithLabelValues(status).Inc()
	cm.conversionDuration.Observe(duration.Seconds())
	cm.rowsTotal.Add(float64(rows))
	cm.skippedTotal.Add(float64(skipped))
}

// RecordRecords adds n records of tag.
func (cm *ConversionMetrics) RecordRecords(tag string, n int) {
	if n <= 0 {
		return
	}
	cm.recordsTotal.WithLabelValues(tag).Add(float64(n))
}

// RecordDiagnostic counts a diagnostic.
func (cm *ConversionMetrics) RecordDiagnostic(kind, code, severity string) {
	cm.diagnosticsTotal.WithLabelValues(kind, code, severity).Inc()
}
