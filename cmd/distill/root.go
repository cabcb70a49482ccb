package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"brainstormer-hq/distill/pkg/cli"
	"brainstormer-hq/distill/pkg/config"
	"brainstormer-hq/distill/pkg/telemetry/logging"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "distill",
	Short: "Distill - turn a brain dump into an actionable plan",
	Long: `Distill turns messy, free-form text into a short plan of titled sections
with concise action items.

It provides:
  - An HTTP endpoint (POST /api/distill) backed by a chat completion model
  - Per-client rate limiting, health checks and Prometheus metrics
  - A command line client with an offline fallback generator
  - A running list of action items persisted in SQLite`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a code derived from the
// returned error.
func Execute() {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration file with .env and DISTILL_*
// overrides, applies adjust and publishes it as the process configuration.
func loadConfig(adjust ...config.Adjuster) (*config.Config, error) {
	return config.ReloadConfig(cfgFile, adjust...)
}

// setupClientLogging installs a text logger on w for client-side commands.
// Only warnings are shown unless --verbose is set.
func setupClientLogging(w io.Writer) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{
		Level:         level,
		Format:        string(logging.FormatText),
		RedactSecrets: true,
		Writer:        w,
	})
	if err != nil {
		return
	}
	slog.SetDefault(logger)
}
