package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// ProgressReporter reports a single long-running step, such as waiting on
// the distill server.
type ProgressReporter interface {
	Start(label string)
	Finish(result string)
	Error(err error)
}

// SimpleProgress writes one status line per event. It is meant for
// stderr so stdout stays clean for piping.
type SimpleProgress struct {
	mu      sync.Mutex
	label   string
	started time.Time
	writer  io.Writer
	now     func() time.Time
}

// NewProgressReporter creates a progress reporter that writes to w.
// If w is nil, it defaults to os.Stderr.
func NewProgressReporter(w io.Writer) ProgressReporter {
	if w == nil {
		w = os.Stderr
	}
	return &SimpleProgress{
		writer: w,
		now:    time.Now,
	}
}

// Start records the start time and announces label.
func (p *SimpleProgress) Start(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.label = label
	p.started = p.now()
	fmt.Fprintf(p.writer, "%s...\n", label)
}

// Finish reports result with the elapsed time.
func (p *SimpleProgress) Finish(result string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.writer, "✓ %s (%s)\n", result, p.elapsed())
}

// Error reports a failure of the current step.
func (p *SimpleProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.writer, "✗ %s failed after %s: %v\n", p.label, p.elapsed(), err)
}

func (p *SimpleProgress) elapsed() time.Duration {
	if p.started.IsZero() {
		return 0
	}
	return p.now().Sub(p.started).Round(time.Millisecond)
}
