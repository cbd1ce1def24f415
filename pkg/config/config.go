package config

import "time"

// Config is the root configuration structure for ponyini.
// It is loaded from YAML and can be overridden by environment variables.
type Config struct {
	// Pack describes the pony pack directory the tool works on.
	Pack PackConfig `yaml:"pack"`

	// Conversion controls parsing and the record transform.
	Conversion ConversionConfig `yaml:"conversion"`

	// Catalog controls where conversion results are recorded.
	Catalog CatalogConfig `yaml:"catalog"`

	// Watch controls the file watcher of `ponyini watch`.
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains logging, metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// PackConfig describes a pony pack on disk.
type PackConfig struct {
	// Root is the directory holding one sub-directory per pony.
	// Default: "./ponies"
	Root string `yaml:"root"`

	// BaseURLPrefix is prepended to a pony's directory name to form the
	// baseurl written to the aggregate config.json.
	// Default: "ponies/"
	BaseURLPrefix string `yaml:"base_url_prefix"`

	// Workers is the number of ponies processed in parallel.
	// Default: 4
	Workers int `yaml:"workers"`

	// RepairNames renames files and directories to sanitized names before
	// repairing the ini files.
	// Default: false
	RepairNames bool `yaml:"repair_names"`

	// MaxFileSize is the largest pony.ini accepted, in bytes.
	// Default: 10MB
	MaxFileSize int64 `yaml:"max_file_size"`

	// CacheSize is the number of parsed files kept between watch cycles.
	// Default: 256
	CacheSize int `yaml:"cache_size"`
}

// ConversionConfig controls parsing and the record transform.
type ConversionConfig struct {
	// LegacyAutoSelectImages keeps auto_select_images always true, as
	// browser runtimes built against earlier output expect.
	// Default: true
	LegacyAutoSelectImages *bool `yaml:"legacy_auto_select_images"`

	// StrictCoercion fails a pony on its first bad boolean or point instead
	// of skipping the row.
	// Default: false
	StrictCoercion bool `yaml:"strict_coercion"`

	// StrictSyntax fails a pony on any syntax diagnostic.
	// Default: false
	StrictSyntax bool `yaml:"strict_syntax"`

	// JSONIndent indents written config.json files. Empty writes compact JSON.
	// Default: ""
	JSONIndent string `yaml:"json_indent"`
}

// LegacyAutoSelect reports the effective legacy auto_select_images setting.
func (c ConversionConfig) LegacyAutoSelect() bool {
	if c.LegacyAutoSelectImages == nil {
		return DefaultLegacyAutoSelectImages
	}
	return *c.LegacyAutoSelectImages
}

// CatalogConfig controls the conversion catalog.
type CatalogConfig struct {
	// Enabled turns recording of conversion results on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite backend configuration.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention controls pruning of old entries.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite backend configuration.
type SQLiteConfig struct {
	// Path is the database file.
	// Default: "data/catalog.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver.
	// Options: "sqlite3" (cgo, mattn/go-sqlite3), "sqlite" (pure Go, modernc.org/sqlite)
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// BusyTimeout is how long a writer waits for a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig controls pruning of old catalog entries.
type RetentionConfig struct {
	// Days is how long entries are kept. Zero keeps entries forever.
	// Default: 30
	Days int `yaml:"days"`

	// Schedule is the cron expression of the pruning job in watch mode.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// WatchConfig controls `ponyini watch`.
type WatchConfig struct {
	// Debounce is how long the watcher waits for more changes before
	// reconverting.
	// Default: 500ms
	Debounce time.Duration `yaml:"debounce"`

	// MetricsAddress is where Prometheus metrics are served while watching.
	// Empty disables the endpoint.
	// Default: ""
	MetricsAddress string `yaml:"metrics_address"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "ponyini"
	Namespace string `yaml:"namespace"`

	// DurationBuckets defines histogram buckets for conversion duration (seconds).
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "ponyini"
	ServiceName string `yaml:"service_name"`

	// OTLP contains OTLP exporter specific configuration.
	OTLP OTLPConfig `yaml:"otlp"`
}

// OTLPConfig contains OTLP exporter configuration.
type OTLPConfig struct {
	// Insecure disables TLS for OTLP connection.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}
