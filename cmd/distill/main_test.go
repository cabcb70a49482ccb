package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// executeCommand runs the root command with args and returns what it wrote.
func executeCommand(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	prevLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prevLogger) })

	cfgFile = "config.yaml"
	verbose = false
	runFlags.listenAddress, runFlags.logLevel, runFlags.dryRun = "", "", false
	planFlags = struct {
		file      string
		serverURL string
		offline   bool
		strict    bool
		expand    bool
		addToList bool
		format    string
	}{format: "text"}
	listFlags.format = "text"

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// writeTestConfig writes a config file that keeps the running list in a
// temporary SQLite database.
func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "runninglist:\n" +
		"  backend: sqlite\n" +
		"  sqlite_path: " + filepath.Join(dir, "list.db") + "\n" +
		extra

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}
