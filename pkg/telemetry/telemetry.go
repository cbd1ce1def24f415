package telemetry

import (
	"context"
	"fmt"
	"io"
	"time"

	"mercator-hq/ponyini/pkg/config"
	"mercator-hq/ponyini/pkg/telemetry/health"
	"mercator-hq/ponyini/pkg/telemetry/logging"
	"mercator-hq/ponyini/pkg/telemetry/metrics"
	"mercator-hq/ponyini/pkg/telemetry/tracing"
)

// CheckTimeout bounds each readiness check.
const CheckTimeout = 2 * time.Second

// Telemetry bundles the logger, metrics collector, tracer and health checker
// built from one TelemetryConfig.
type Telemetry struct {
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	health  *health.Checker
	version health.VersionInfo
}

// New builds every telemetry component. Logs are written to w, or to
// stderr when w is nil. Tracing stays a no-op unless cfg.Tracing.Enabled.
func New(cfg *config.TelemetryConfig, info health.VersionInfo, w io.Writer) (*Telemetry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("telemetry config is nil")
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Writer:    w,
	})
	if err != nil {
		return nil, err
	}

	tracer, err := tracing.New(&cfg.Tracing, info.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	return &Telemetry{
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Metrics, nil),
		tracer:  tracer,
		health:  health.New(CheckTimeout),
		version: info,
	}, nil
}

// Logger returns the logger.
func (t *Telemetry) Logger() *logging.Logger { return t.logger }

// Metrics returns the metrics collector.
func (t *Telemetry) Metrics() *metrics.Collector { return t.metrics }

// Tracer returns the tracer.
func (t *Telemetry) Tracer() *tracing.Tracer { return t.tracer }

// Health returns the health checker.
func (t *Telemetry) Health() *health.Checker { return t.health }

// Version returns the build information served on the version endpoint.
func (t *Telemetry) Version() health.VersionInfo { return t.version }

// Shutdown flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return t.tracer.Shutdown(ctx)
}
