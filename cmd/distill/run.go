package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"brainstormer-hq/distill/pkg/cli"
	"brainstormer-hq/distill/pkg/config"
	"brainstormer-hq/distill/pkg/server"
	"brainstormer-hq/distill/pkg/telemetry/logging"

	"github.com/spf13/cobra"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the distill server",
	Long: `Start the distill HTTP server with the specified configuration.

The server answers POST /api/distill, plus /health, /ready, /version and
/metrics. The completion API key is read from the environment (or .env)
on every request, so the server starts without one and reports not ready.

Sending SIGHUP re-reads the config file and applies its log level. Other
settings take effect on the next start.

Examples:
  # Start with default config
  distill run

  # Start with custom config
  distill run --config /etc/distill/config.yaml

  # Override listen address
  distill run --listen 0.0.0.0:8080

  # Validate config without starting server
  distill run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(applyRunOverrides)
	if err != nil {
		return err
	}

	var level slog.LevelVar
	logger, err := logging.New(logging.Config{
		Level:         cfg.Telemetry.Logging.Level,
		Format:        cfg.Telemetry.Logging.Format,
		AddSource:     cfg.Telemetry.Logging.AddSource,
		RedactSecrets: cfg.Telemetry.Logging.RedactSecrets,
		Writer:        os.Stdout,
		LevelVar:      &level,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	out := cmd.OutOrStdout()

	if runFlags.dryRun {
		fmt.Fprintln(out, "✓ Configuration valid")
		return nil
	}

	printBanner(cmd, cfg)

	components, err := server.BuildComponents(cfg)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer components.Close()

	srv := server.NewServer(cfg, components, server.BuildInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
	})

	fmt.Fprintf(out, "✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Fprintf(out, "✓ Distill endpoint: http://%s%s\n", cfg.Server.ListenAddress, server.DistillPath)
	fmt.Fprintf(out, "✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Fprintf(out, "✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	reloadCtx, stopReloads := context.WithCancel(cmd.Context())
	defer stopReloads()
	go watchReloads(cli.ReloadNotifier(reloadCtx), &level)

	if err := srv.Start(cmd.Context()); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Fprintln(out, "✓ Server stopped")
	return nil
}

// applyRunOverrides applies command-line flags on top of cfg.
func applyRunOverrides(cfg *config.Config) {
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
}

// watchReloads re-reads the config file for every value on reloads. A file
// that fails to load or validate leaves the running configuration alone.
func watchReloads(reloads <-chan struct{}, level *slog.LevelVar) {
	for range reloads {
		cfg, err := config.ReloadConfig(cfgFile, applyRunOverrides)
		if err != nil {
			slog.Error("configuration reload failed, keeping current configuration", "error", err)
			continue
		}

		parsed, err := logging.ParseLevel(cfg.Telemetry.Logging.Level)
		if err != nil {
			slog.Error("configuration reload failed, keeping current configuration", "error", err)
			continue
		}
		level.Set(parsed)

		slog.Info("configuration reloaded", "path", cfgFile, "log_level", parsed.String())
	}
}

func printBanner(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Distill v%s\n", Version)
	fmt.Fprintf(out, "Loading configuration from: %s\n", cfgFile)
	fmt.Fprintln(out, "✓ Configuration loaded")

	slog.Debug("completion configured",
		"model", cfg.Completion.Model,
		"timeout", cfg.Completion.Timeout.String(),
	)
	slog.Debug("rate limit configured",
		"requests_per_window", cfg.Limits.RequestsPerWindow,
		"window", cfg.Limits.Window.String(),
	)
}
