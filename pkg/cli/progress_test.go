package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestProgress(buf *bytes.Buffer) (*SimpleProgress, *time.Time) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	p := NewProgressReporter(buf).(*SimpleProgress)
	p.now = func() time.Time { return now }
	return p, &now
}

func TestSimpleProgress(t *testing.T) {
	buf := &bytes.Buffer{}
	progress, now := newTestProgress(buf)

	progress.Start("Distilling")
	*now = now.Add(1500 * time.Millisecond)
	progress.Finish("2 sections")

	want := "Distilling...\n✓ 2 sections (1.5s)\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestSimpleProgressError(t *testing.T) {
	buf := &bytes.Buffer{}
	progress, now := newTestProgress(buf)

	progress.Start("Distilling")
	*now = now.Add(250 * time.Millisecond)
	progress.Error(errors.New("connection refused"))

	if !strings.Contains(buf.String(), "✗ Distilling failed after 250ms: connection refused") {
		t.Errorf("unexpected error output %q", buf.String())
	}
}

func TestSimpleProgressFinishWithoutStart(t *testing.T) {
	buf := &bytes.Buffer{}
	progress, _ := newTestProgress(buf)

	progress.Finish("nothing")

	if buf.String() != "✓ nothing (0s)\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNewProgressReporterNilWriter(t *testing.T) {
	if NewProgressReporter(nil) == nil {
		t.Error("NewProgressReporter(nil) should not return nil")
	}
}
