package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "PONYINI_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention PONYINI_SECTION_FIELD (e.g., PONYINI_PACK_ROOT).
// Environment variables always take precedence over file-based configuration.
//
// An empty path skips the file and starts from the defaults. Variables from a
// .env file in the working directory are loaded first; variables already set
// in the process environment win over the .env file.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = NewDefaultConfig()
	} else {
		var err error
		cfg, err = LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Values that fail to parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Pack overrides
	envString("PACK_ROOT", &cfg.Pack.Root)
	envString("PACK_BASE_URL_PREFIX", &cfg.Pack.BaseURLPrefix)
	envInt("PACK_WORKERS", &cfg.Pack.Workers)
	envBool("PACK_REPAIR_NAMES", &cfg.Pack.RepairNames)
	if val := os.Getenv(EnvPrefix + "PACK_MAX_FILE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Pack.MaxFileSize = i
		}
	}
	envInt("PACK_CACHE_SIZE", &cfg.Pack.CacheSize)

	// Conversion overrides
	if val := os.Getenv(EnvPrefix + "CONVERSION_LEGACY_AUTO_SELECT_IMAGES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Conversion.LegacyAutoSelectImages = &b
		}
	}
	envBool("CONVERSION_STRICT_COERCION", &cfg.Conversion.StrictCoercion)
	envBool("CONVERSION_STRICT_SYNTAX", &cfg.Conversion.StrictSyntax)
	envString("CONVERSION_JSON_INDENT", &cfg.Conversion.JSONIndent)

	// Catalog overrides
	envBool("CATALOG_ENABLED", &cfg.Catalog.Enabled)
	envString("CATALOG_BACKEND", &cfg.Catalog.Backend)
	envString("CATALOG_SQLITE_PATH", &cfg.Catalog.SQLite.Path)
	envString("CATALOG_SQLITE_DRIVER", &cfg.Catalog.SQLite.Driver)
	envInt("CATALOG_SQLITE_MAX_OPEN_CONNS", &cfg.Catalog.SQLite.MaxOpenConns)
	envDuration("CATALOG_SQLITE_BUSY_TIMEOUT", &cfg.Catalog.SQLite.BusyTimeout)
	envInt("CATALOG_RETENTION_DAYS", &cfg.Catalog.Retention.Days)
	envString("CATALOG_RETENTION_SCHEDULE", &cfg.Catalog.Retention.Schedule)

	// Watch overrides
	envDuration("WATCH_DEBOUNCE", &cfg.Watch.Debounce)
	envString("WATCH_METRICS_ADDRESS", &cfg.Watch.MetricsAddress)

	// Telemetry overrides
	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	envString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	envString("TELEMETRY_METRICS_NAMESPACE", &cfg.Telemetry.Metrics.Namespace)
	envBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	envString("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
	envString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	envString("TELEMETRY_TRACING_SERVICE_NAME", &cfg.Telemetry.Tracing.ServiceName)
	envBool("TELEMETRY_TRACING_OTLP_INSECURE", &cfg.Telemetry.Tracing.OTLP.Insecure)
	envDuration("TELEMETRY_TRACING_OTLP_TIMEOUT", &cfg.Telemetry.Tracing.OTLP.Timeout)
}

func envString(key string, dst *string) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		*dst = val
	}
}

func envInt(key string, dst *int) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envBool(key string, dst *bool) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
