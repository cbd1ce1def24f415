package watch

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mercator-hq/ponyini/pkg/catalog"
	"mercator-hq/ponyini/pkg/catalog/retention"
	"mercator-hq/ponyini/pkg/config"
	"mercator-hq/ponyini/pkg/pack"
	"mercator-hq/ponyini/pkg/telemetry/health"
	"mercator-hq/ponyini/pkg/telemetry/metrics"
)

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestService_Run(t *testing.T) {
	root := t.TempDir()
	ini := filepath.Join(root, "pip", "pony.ini")
	if err := os.MkdirAll(filepath.Dir(ini), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ini, []byte("Name,Pip\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewDefaultConfig()
	cfg.Pack.Root = root
	collector := metrics.NewCollector(nil, nil)
	store := catalog.NewMemoryStore()

	p, err := pack.New(cfg, pack.WithMetrics(collector), pack.WithCatalog(store))
	if err != nil {
		t.Fatal(err)
	}

	wcfg := DefaultConfig()
	wcfg.Path = root
	wcfg.DebounceInterval = 50 * time.Millisecond
	w, err := NewWatcher(wcfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	checker := health.New(time.Second)
	checker.RegisterCheck("catalog", store.Ping)
	svc := NewService(p, w,
		WithAddress("127.0.0.1:0"),
		WithMetrics(collector, "/metrics"),
		WithHealth(checker, health.VersionInfo{Version: "test"}),
		WithScheduler(retention.NewScheduler(retention.NewPruner(store, 30), "@every 1h")),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	eventually(t, "initial run", func() bool {
		report, _ := svc.LastRun()
		return report != nil && w.Running()
	})
	report, err := svc.LastRun()
	if err != nil || report.Trigger != pack.TriggerStartup {
		t.Fatalf("initial run = %+v, %v", report, err)
	}
	if _, err := os.Stat(filepath.Join(root, "pip", pack.ConfigName)); err != nil {
		t.Errorf("config.json not written: %v", err)
	}

	base := "http://" + svc.Addr()
	if code, _ := get(t, base+health.LivenessPath); code != http.StatusOK {
		t.Errorf("liveness = %d", code)
	}
	if code, body := get(t, base+health.ReadinessPath); code != http.StatusOK {
		t.Errorf("readiness = %d: %s", code, body)
	}
	if _, body := get(t, base+"/metrics"); !strings.Contains(body, "ponyini_pack_runs_total") {
		t.Error("metrics endpoint lacks pack runs")
	}

	if err := os.WriteFile(ini, []byte("Name,Pipsqueak\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	eventually(t, "watch run", func() bool {
		report, _ := svc.LastRun()
		return report != nil && report.Trigger == pack.TriggerWatch
	})

	entry, err := store.Get(context.Background(), "Pipsqueak")
	if err != nil {
		t.Fatalf("catalog lacks the watched conversion: %v", err)
	}
	if entry.Dir != "pip" {
		t.Errorf("entry.Dir = %q", entry.Dir)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
	if svc.Addr() != "" {
		t.Error("HTTP endpoint should be shut down")
	}
}

func TestService_RunOnceReportsFailures(t *testing.T) {
	root := t.TempDir()
	ini := filepath.Join(root, "bad", "pony.ini")
	if err := os.MkdirAll(filepath.Dir(ini), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ini, []byte("Name,\"Bad\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewDefaultConfig()
	cfg.Pack.Root = root
	cfg.Conversion.StrictSyntax = true
	p, err := pack.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Stop() }()

	checker := health.New(time.Second)
	svc := NewService(p, w, WithHealth(checker, health.VersionInfo{}))

	report, err := svc.RunOnce(context.Background(), pack.TriggerManual)
	if err == nil {
		t.Fatal("RunOnce() should report the failed pony")
	}
	if len(report.Failed()) != 1 {
		t.Errorf("failed = %d, want 1", len(report.Failed()))
	}
	if _, lastErr := svc.LastRun(); lastErr == nil {
		t.Error("LastRun() should keep the error")
	}

	status := checker.CheckReadiness(context.Background())
	if status.Status == health.StatusReady {
		t.Errorf("readiness = %+v, want not ready", status)
	}
}
