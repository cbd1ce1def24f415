package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(NewDefaultConfig()); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if err := Validate(MinimalConfig()); err != nil {
		t.Fatalf("expected minimal config to validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{
			name:   "empty pack root",
			modify: func(c *Config) { c.Pack.Root = "" },
			field:  "pack.root",
		},
		{
			name:   "zero workers",
			modify: func(c *Config) { c.Pack.Workers = 0 },
			field:  "pack.workers",
		},
		{
			name:   "negative max file size",
			modify: func(c *Config) { c.Pack.MaxFileSize = -1 },
			field:  "pack.max_file_size",
		},
		{
			name:   "unknown catalog backend",
			modify: func(c *Config) { c.Catalog.Backend = "postgres" },
			field:  "catalog.backend",
		},
		{
			name: "unknown sqlite driver",
			modify: func(c *Config) {
				c.Catalog.Backend = "sqlite"
				c.Catalog.SQLite.Driver = "sqlite4"
			},
			field: "catalog.sqlite.driver",
		},
		{
			name: "empty sqlite path",
			modify: func(c *Config) {
				c.Catalog.Backend = "sqlite"
				c.Catalog.SQLite.Path = ""
			},
			field: "catalog.sqlite.path",
		},
		{
			name:   "bad cron schedule",
			modify: func(c *Config) { c.Catalog.Retention.Schedule = "every day" },
			field:  "catalog.retention.schedule",
		},
		{
			name:   "negative retention",
			modify: func(c *Config) { c.Catalog.Retention.Days = -3 },
			field:  "catalog.retention.days",
		},
		{
			name:   "negative debounce",
			modify: func(c *Config) { c.Watch.Debounce = -1 },
			field:  "watch.debounce",
		},
		{
			name:   "bad log level",
			modify: func(c *Config) { c.Telemetry.Logging.Level = "verbose" },
			field:  "telemetry.logging.level",
		},
		{
			name:   "bad log format",
			modify: func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			field:  "telemetry.logging.format",
		},
		{
			name:   "relative metrics path",
			modify: func(c *Config) { c.Telemetry.Metrics.Path = "metrics" },
			field:  "telemetry.metrics.path",
		},
		{
			name:   "unsorted buckets",
			modify: func(c *Config) { c.Telemetry.Metrics.DurationBuckets = []float64{1, 0.5} },
			field:  "telemetry.metrics.duration_buckets",
		},
		{
			name:   "tracing without endpoint",
			modify: func(c *Config) { c.Telemetry.Tracing.Enabled = true },
			field:  "telemetry.tracing.endpoint",
		},
		{
			name:   "sample ratio out of range",
			modify: func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 },
			field:  "telemetry.tracing.sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewTestConfig().Build()
			tt.modify(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got %v", tt.field, verr.Errors)
			}
		})
	}
}

func TestValidate_SQLiteOnlyChecksWhenSelected(t *testing.T) {
	cfg := NewTestConfig().WithCatalog("memory").Build()
	cfg.Catalog.SQLite.Driver = "bogus"
	if err := Validate(cfg); err != nil {
		t.Errorf("expected sqlite settings to be ignored for memory backend, got %v", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "pack.root", Message: "pack root is required"}}}
	if got := single.Error(); got != "configuration validation failed: pack.root: pack root is required" {
		t.Errorf("unexpected single error message: %q", got)
	}

	multi := ValidationError{Errors: []FieldError{
		{Field: "a", Message: "one"},
		{Field: "b", Message: "two"},
	}}
	got := multi.Error()
	if !strings.HasPrefix(got, "configuration validation failed with 2 errors:") {
		t.Errorf("unexpected multi error message: %q", got)
	}
	if !strings.Contains(got, "  - b: two") {
		t.Errorf("expected each field listed, got %q", got)
	}

	if (ValidationError{}).Error() != "configuration validation failed" {
		t.Error("unexpected empty error message")
	}
}
