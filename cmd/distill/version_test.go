package main

import (
	"runtime"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })

	Version = "1.4.0-test"
	GitCommit = "abc123"

	out, _, err := executeCommand(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	for _, want := range []string{
		"Distill 1.4.0-test",
		"Git Commit: abc123",
		"Go Version: " + runtime.Version(),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"run": false, "plan": false, "list": false, "version": false, "completion": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := executeCommand(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	if !strings.Contains(out, "distill") {
		t.Error("expected bash completion script for distill")
	}
}
