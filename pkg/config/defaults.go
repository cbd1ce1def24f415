package config

import "time"

// Default values for configuration fields.
const (
	// Pack defaults
	DefaultPackRoot          = "./ponies"
	DefaultPackBaseURLPrefix = "ponies/"
	DefaultPackWorkers       = 4
	DefaultPackMaxFileSize   = int64(10 * 1024 * 1024) // 10MB
	DefaultPackCacheSize     = 256

	// Conversion defaults
	DefaultLegacyAutoSelectImages = true

	// Catalog defaults
	DefaultCatalogBackend       = "sqlite"
	DefaultCatalogSQLitePath    = "data/catalog.db"
	DefaultCatalogSQLiteDriver  = "sqlite"
	DefaultCatalogMaxOpenConns  = 4
	DefaultCatalogBusyTimeout   = 5 * time.Second
	DefaultCatalogRetentionDays = 30
	DefaultCatalogSchedule      = "0 3 * * *"

	// Watch defaults
	DefaultWatchDebounce = 500 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "console"
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "ponyini"
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
	DefaultTracingServiceName = "ponyini"
	DefaultOTLPTimeout        = 10 * time.Second
)

// DefaultDurationBuckets are the conversion duration histogram buckets in seconds.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Pack defaults
	if cfg.Pack.Root == "" {
		cfg.Pack.Root = DefaultPackRoot
	}
	if cfg.Pack.BaseURLPrefix == "" {
		cfg.Pack.BaseURLPrefix = DefaultPackBaseURLPrefix
	}
	if cfg.Pack.Workers == 0 {
		cfg.Pack.Workers = DefaultPackWorkers
	}
	if cfg.Pack.MaxFileSize == 0 {
		cfg.Pack.MaxFileSize = DefaultPackMaxFileSize
	}
	if cfg.Pack.CacheSize == 0 {
		cfg.Pack.CacheSize = DefaultPackCacheSize
	}

	// An explicit false must survive, so only an unset value is defaulted
	if cfg.Conversion.LegacyAutoSelectImages == nil {
		legacy := DefaultLegacyAutoSelectImages
		cfg.Conversion.LegacyAutoSelectImages = &legacy
	}

	applyCatalogDefaults(&cfg.Catalog)

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyCatalogDefaults(c *CatalogConfig) {
	if c.Backend == "" {
		c.Backend = DefaultCatalogBackend
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = DefaultCatalogSQLitePath
	}
	if c.SQLite.Driver == "" {
		c.SQLite.Driver = DefaultCatalogSQLiteDriver
	}
	if c.SQLite.MaxOpenConns == 0 {
		c.SQLite.MaxOpenConns = DefaultCatalogMaxOpenConns
	}
	if c.SQLite.BusyTimeout == 0 {
		c.SQLite.BusyTimeout = DefaultCatalogBusyTimeout
	}
	if c.Retention.Days == 0 {
		c.Retention.Days = DefaultCatalogRetentionDays
	}
	if c.Retention.Schedule == "" {
		c.Retention.Schedule = DefaultCatalogSchedule
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.Logging.Level == "" {
		t.Logging.Level = DefaultLoggingLevel
	}
	if t.Logging.Format == "" {
		t.Logging.Format = DefaultLoggingFormat
	}

	if t.Metrics.Path == "" {
		t.Metrics.Path = DefaultMetricsPath
	}
	if t.Metrics.Namespace == "" {
		t.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(t.Metrics.DurationBuckets) == 0 {
		t.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}

	if t.Tracing.Sampler == "" {
		t.Tracing.Sampler = DefaultTracingSampler
	}
	if t.Tracing.SampleRatio == 0 {
		t.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if t.Tracing.ServiceName == "" {
		t.Tracing.ServiceName = DefaultTracingServiceName
	}
	if t.Tracing.OTLP.Timeout == 0 {
		t.Tracing.OTLP.Timeout = DefaultOTLPTimeout
	}
}

// NewDefaultConfig returns a configuration with every default applied.
// Commands use it when no configuration file is given.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
