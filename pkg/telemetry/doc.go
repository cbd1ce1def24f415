// Package telemetry provides logging, metrics, tracing and health checks for
// ponyini.
//
// Each concern lives in its own sub-package:
//
//   - logging: structured logging on log/slog with run, pony and file
//     fields taken from the context
//   - metrics: Prometheus counters and histograms for conversions, pack runs
//     and the parse cache
//   - tracing: OpenTelemetry spans around pack stages and single ponies,
//     exported over OTLP gRPC
//   - health: liveness and readiness endpoints served by `ponyini watch`
//
// New builds all four from one TelemetryConfig:
//
//	tel, err := telemetry.New(&cfg.Telemetry, health.VersionInfo{Version: version}, os.Stderr)
//	if err != nil {
//		return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	p, err := pack.New(cfg,
//		pack.WithLogger(tel.Logger()),
//		pack.WithMetrics(tel.Metrics()),
//		pack.WithTracer(tel.Tracer()))
//
// Tracing is a no-op unless enabled; metrics are always collected so the
// watch endpoint and tests can read them.
package telemetry
