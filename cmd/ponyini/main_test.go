package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"mercator-hq/ponyini/pkg/cli"
	"mercator-hq/ponyini/pkg/config"
)

const pipIni = `'Pip
Name,Pip Squeak
Behavior,stand,0.5,3,1,0,"stand right.gif","stand left.gif",None,,,,false,0,0,,true,,,"0,0","0,0",false
Speak,hi,"Hello, there",,false,1
`

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

// useConfig installs cfg as the global configuration for one test.
func useConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	config.SetConfig(cfg)
	t.Cleanup(func() { config.SetConfig(nil) })
}

func testConfig(root string) *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Pack.Root = root
	cfg.Pack.Workers = 2
	cfg.Telemetry.Logging.Level = "error"
	return cfg
}

// newCommand returns a bare command capturing stdout and stderr.
func newCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetContext(context.Background())
	return cmd, &stdout, &stderr
}

func resetGlobalFlags() {
	cfgFile, packRoot, logLevel, logFormat, verbose = "", "", "", "", false
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	defer resetGlobalFlags()
	t.Cleanup(func() { config.SetConfig(nil) })

	dir := t.TempDir()
	cfgFile = writeFile(t, filepath.Join(dir, "ponyini.yaml"), `
pack:
  root: ./from-file
  workers: 3
telemetry:
  logging:
    level: info
`)
	packRoot = filepath.Join(dir, "from-flag")
	logFormat = "json"

	if err := loadConfig(nil, nil); err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	cfg := config.GetConfig()
	if cfg.Pack.Root != packRoot {
		t.Errorf("Pack.Root = %q, want the flag value %q", cfg.Pack.Root, packRoot)
	}
	if cfg.Pack.Workers != 3 {
		t.Errorf("Pack.Workers = %d, want 3 from the file", cfg.Pack.Workers)
	}
	if cfg.Telemetry.Logging.Format != "json" || cfg.Telemetry.Logging.Level != "info" {
		t.Errorf("Logging = %+v", cfg.Telemetry.Logging)
	}

	verbose = true
	if err := loadConfig(nil, nil); err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if level := config.GetConfig().Telemetry.Logging.Level; level != "debug" {
		t.Errorf("--verbose level = %q, want debug", level)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
	}{
		{
			name:  "missing file",
			setup: func() { cfgFile = filepath.Join(t.TempDir(), "missing.yaml") },
		},
		{
			name:  "invalid log level flag",
			setup: func() { logLevel = "loud" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer resetGlobalFlags()
			tt.setup()

			err := loadConfig(nil, nil)
			if err == nil {
				t.Fatal("loadConfig() should fail")
			}
			if code := cli.ExitCode(err); code != cli.ExitUsage {
				t.Errorf("ExitCode() = %d, want %d", code, cli.ExitUsage)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	cmd, stdout, _ := newCommand()
	versionCmd.Run(cmd, nil)

	out := stdout.String()
	if !strings.HasPrefix(out, "ponyini "+Version+"\n") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "Git Commit: "+GitCommit) {
		t.Errorf("output lacks the commit: %q", out)
	}
	if info := versionInfo(); info.Version != Version || info.GoVersion == "" {
		t.Errorf("versionInfo() = %+v", info)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"catalog", "completion", "convert", "fmt", "lint", "parse", "repair", "run", "version", "watch"}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	cmd, stdout, _ := newCommand()
	if err := completionCmd.RunE(cmd, []string{"bash"}); err != nil {
		t.Fatalf("completion bash failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "ponyini") {
		t.Error("bash completion should mention the command name")
	}
	if err := completionCmd.RunE(cmd, []string{"tcsh"}); err == nil {
		t.Error("unsupported shell should fail")
	}
}
