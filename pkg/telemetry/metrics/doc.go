// Package metrics provides Prometheus metrics for pony pack conversions.
//
// # Metrics Categories
//
//   - Conversion Metrics: conversions, rows, records by tag and diagnostics by code
//   - Pack Metrics: pack runs, file operations and catalog pruning
//   - Cache Metrics: parse cache hits, misses and size
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordConversion(metrics.StatusOK, elapsed, 42, 0)
//	collector.RecordRecords("behavior", 12)
//
// The watch command serves the registry through Handler.
package metrics
