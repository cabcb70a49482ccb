package main

import (
	"errors"
	"strings"
	"testing"

	"brainstormer-hq/distill/pkg/runninglist"

	"github.com/tidwall/gjson"
)

func TestList_Lifecycle(t *testing.T) {
	cfg := writeTestConfig(t, "")

	out, _, err := executeCommand(t, "", "list", "show", "--config", cfg)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if out != "Running List\n  (empty)\n" {
		t.Errorf("unexpected empty output %q", out)
	}

	for _, text := range []string{"Call mom", "Pay rent"} {
		if _, _, err := executeCommand(t, "", "list", "add", "--config", cfg, text); err != nil {
			t.Fatalf("add %q failed: %v", text, err)
		}
	}

	out, _, err = executeCommand(t, "", "list", "show", "--config", cfg, "--format", "json")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	items := gjson.Parse(out).Array()
	if len(items) != 2 || items[0].Get("text").String() != "Call mom" {
		t.Fatalf("unexpected items %s", out)
	}
	firstID := items[0].Get("id").String()
	secondID := items[1].Get("id").String()

	out, _, err = executeCommand(t, "", "list", "toggle", "--config", cfg, firstID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !strings.Contains(out, "marked completed") {
		t.Errorf("unexpected toggle output %q", out)
	}

	out, _, _ = executeCommand(t, "", "list", "show", "--config", cfg)
	if !strings.Contains(out, "[x] Call mom") {
		t.Errorf("toggle did not persist:\n%s", out)
	}

	if _, _, err := executeCommand(t, "", "list", "rm", "--config", cfg, secondID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	out, _, err = executeCommand(t, "", "list", "clear", "--config", cfg)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if out != "✓ Cleared 1 items\n" {
		t.Errorf("unexpected clear output %q", out)
	}

	out, _, _ = executeCommand(t, "", "list", "show", "--config", cfg, "--format", "json")
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("expected empty list after clear, got %q", out)
	}
}

func TestList_Errors(t *testing.T) {
	cfg := writeTestConfig(t, "")

	_, _, err := executeCommand(t, "", "list", "toggle", "--config", cfg, "nope")
	if !errors.Is(err, runninglist.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}

	_, _, err = executeCommand(t, "", "list", "add", "--config", cfg, "   ")
	if !errors.Is(err, runninglist.ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}

	if _, _, err := executeCommand(t, "", "list", "add", "--config", cfg); err == nil {
		t.Error("expected argument error for add without text")
	}
}
