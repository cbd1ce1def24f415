package config

import (
	"reflect"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Pack.Root != DefaultPackRoot {
		t.Errorf("expected root %q, got %q", DefaultPackRoot, cfg.Pack.Root)
	}
	if cfg.Pack.Workers != DefaultPackWorkers {
		t.Errorf("expected %d workers, got %d", DefaultPackWorkers, cfg.Pack.Workers)
	}
	if !cfg.Conversion.LegacyAutoSelect() {
		t.Error("expected legacy auto select enabled by default")
	}
	if cfg.Catalog.Backend != DefaultCatalogBackend {
		t.Errorf("expected backend %q, got %q", DefaultCatalogBackend, cfg.Catalog.Backend)
	}
	if cfg.Catalog.Retention.Schedule != DefaultCatalogSchedule {
		t.Errorf("expected schedule %q, got %q", DefaultCatalogSchedule, cfg.Catalog.Retention.Schedule)
	}
	if !reflect.DeepEqual(cfg.Telemetry.Metrics.DurationBuckets, DefaultDurationBuckets) {
		t.Errorf("unexpected buckets: %v", cfg.Telemetry.Metrics.DurationBuckets)
	}
	if cfg.Telemetry.Tracing.ServiceName != DefaultTracingServiceName {
		t.Errorf("expected service name %q, got %q", DefaultTracingServiceName, cfg.Telemetry.Tracing.ServiceName)
	}
}

func TestApplyDefaults_PreservesValues(t *testing.T) {
	legacy := false
	cfg := &Config{
		Pack:       PackConfig{Root: "/srv/ponies", Workers: 16},
		Conversion: ConversionConfig{LegacyAutoSelectImages: &legacy},
	}
	ApplyDefaults(cfg)
	ApplyDefaults(cfg)

	if cfg.Pack.Root != "/srv/ponies" || cfg.Pack.Workers != 16 {
		t.Errorf("defaults overwrote explicit pack values: %+v", cfg.Pack)
	}
	if cfg.Conversion.LegacyAutoSelect() {
		t.Error("defaults overwrote explicit false")
	}
}

func TestApplyDefaults_BucketsNotShared(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Telemetry.Metrics.DurationBuckets[0] = 42
	if DefaultDurationBuckets[0] == 42 {
		t.Error("ApplyDefaults must copy the default bucket slice")
	}
}
