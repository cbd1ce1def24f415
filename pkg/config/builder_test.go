package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with sensible defaults for testing.
// The resulting configuration is valid and uses the in-memory catalog.
func NewTestConfig() *ConfigBuilder {
	cfg := Config{}
	ApplyDefaults(&cfg)
	cfg.Catalog.Backend = "memory"
	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithPackRoot sets the pack root directory.
func (b *ConfigBuilder) WithPackRoot(root string) *ConfigBuilder {
	b.cfg.Pack.Root = root
	return b
}

// WithWorkers sets the number of pack workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Pack.Workers = n
	return b
}

// WithLegacyAutoSelectImages sets the legacy auto_select_images flag.
func (b *ConfigBuilder) WithLegacyAutoSelectImages(v bool) *ConfigBuilder {
	b.cfg.Conversion.LegacyAutoSelectImages = &v
	return b
}

// WithCatalog sets the catalog backend and enables it.
func (b *ConfigBuilder) WithCatalog(backend string) *ConfigBuilder {
	b.cfg.Catalog.Enabled = true
	b.cfg.Catalog.Backend = backend
	return b
}

// WithRetentionSchedule sets the catalog pruning schedule.
func (b *ConfigBuilder) WithRetentionSchedule(spec string) *ConfigBuilder {
	b.cfg.Catalog.Retention.Schedule = spec
	return b
}

// WithDebounce sets the watch debounce.
func (b *ConfigBuilder) WithDebounce(d time.Duration) *ConfigBuilder {
	b.cfg.Watch.Debounce = d
	return b
}

// WithLogLevel sets the logging level.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	return b
}

// WithTracing enables tracing with the given endpoint.
func (b *ConfigBuilder) WithTracing(endpoint string) *ConfigBuilder {
	b.cfg.Telemetry.Tracing.Enabled = true
	b.cfg.Telemetry.Tracing.Endpoint = endpoint
	return b
}

// MinimalConfig returns the smallest configuration that passes validation.
func MinimalConfig() *Config {
	return NewTestConfig().Build()
}
