package main

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"brainstormer-hq/distill/pkg/cli"
	"brainstormer-hq/distill/pkg/config"
)

func TestRunDryRun(t *testing.T) {
	cfg := writeTestConfig(t, "")

	out, _, err := executeCommand(t, "", "run", "--config", cfg, "--dry-run", "--listen", "127.0.0.1:9999")
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !strings.Contains(out, "✓ Configuration valid") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		args  []string
	}{
		{name: "model lock", extra: "completion:\n  model: gpt-4\n"},
		{name: "bad log level flag", args: []string{"--log-level", "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeTestConfig(t, tt.extra)

			args := append([]string{"run", "--config", cfg, "--dry-run"}, tt.args...)
			_, _, err := executeCommand(t, "", args...)
			if err == nil {
				t.Fatal("expected configuration error")
			}
			if code := cli.ExitCode(err); code != cli.ExitConfig {
				t.Errorf("expected exit code %d, got %d (%v)", cli.ExitConfig, code, err)
			}
		})
	}
}

func TestWatchReloads(t *testing.T) {
	t.Cleanup(func() { config.SetConfig(nil) })
	verbose = false
	runFlags.listenAddress, runFlags.logLevel, runFlags.dryRun = "", "", false

	cfgFile = writeTestConfig(t, "telemetry:\n  logging:\n    level: warn\n")

	var level slog.LevelVar
	reloads := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		watchReloads(reloads, &level)
		close(done)
	}()

	reloads <- struct{}{}
	close(reloads)
	<-done

	if level.Level() != slog.LevelWarn {
		t.Errorf("expected reloaded level warn, got %v", level.Level())
	}
	if config.GetConfig() == nil || config.GetConfig().Telemetry.Logging.Level != "warn" {
		t.Error("expected reload to replace the process configuration")
	}

	if err := os.WriteFile(cfgFile, []byte("completion:\n  model: gpt-4\n"), 0o600); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	level.Set(slog.LevelInfo)

	reloads = make(chan struct{}, 1)
	reloads <- struct{}{}
	close(reloads)
	watchReloads(reloads, &level)

	if level.Level() != slog.LevelInfo {
		t.Errorf("invalid config must not change the level, got %v", level.Level())
	}
}

func TestWatchReloads_OverridesDoNotMutatePublishedConfig(t *testing.T) {
	t.Cleanup(func() {
		config.SetConfig(nil)
		runFlags.listenAddress = ""
	})
	verbose = false
	runFlags.listenAddress, runFlags.logLevel, runFlags.dryRun = "127.0.0.1:7000", "", false

	cfgFile = writeTestConfig(t, "server:\n  listen_address: \"127.0.0.1:9999\"\n")

	before := config.Defaults()
	before.Server.ListenAddress = "127.0.0.1:5555"
	config.SetConfig(before)

	var level slog.LevelVar
	reloads := make(chan struct{}, 1)
	reloads <- struct{}{}
	close(reloads)
	watchReloads(reloads, &level)

	if before.Server.ListenAddress != "127.0.0.1:5555" {
		t.Errorf("reload mutated the previously published config: %q", before.Server.ListenAddress)
	}
	after := config.GetConfig()
	if after == before {
		t.Fatal("expected reload to publish a new config")
	}
	if after.Server.ListenAddress != "127.0.0.1:7000" {
		t.Errorf("expected --listen override on reloaded config, got %q", after.Server.ListenAddress)
	}
}
