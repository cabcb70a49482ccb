package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"brainstormer-hq/distill/pkg/distill"

	"github.com/tidwall/gjson"
)

var testPlan = distill.Plan{Sections: []distill.Section{
	{ID: "s1", Title: "Work", Items: []distill.Item{
		{ID: "i1", Text: "Finish report"},
		{ID: "i2", Text: "Email boss", Completed: true},
	}},
	{ID: "s2", Title: "Personal", Items: []distill.Item{{ID: "i3", Text: "Call mom"}}},
}}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "text", want: FormatText},
		{in: "JSON", want: FormatJSON},
		{in: "md", want: FormatMarkdown},
		{in: "markdown", want: FormatMarkdown},
		{in: " html ", want: FormatHTML},
		{in: "csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if tt.wantErr {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected *ConfigError, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatPlan(&buf, testPlan); err != nil {
		t.Fatalf("FormatPlan() error = %v", err)
	}

	want := "Work\n" +
		"  [ ] Finish report  (i1)\n" +
		"  [x] Email boss  (i2)\n" +
		"\n" +
		"Personal\n" +
		"  [ ] Call mom  (i3)\n"
	if buf.String() != want {
		t.Errorf("FormatPlan() =\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := (&TextFormatter{}).FormatItems(&buf, "Running List", nil); err != nil {
		t.Fatalf("FormatItems() error = %v", err)
	}
	if buf.String() != "Running List\n  (empty)\n" {
		t.Errorf("unexpected empty list output %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{Indent: true}).FormatPlan(&buf, testPlan); err != nil {
		t.Fatalf("FormatPlan() error = %v", err)
	}
	if got := gjson.Get(buf.String(), "sections.0.items.1.completed").Bool(); !got {
		t.Errorf("expected completed flag in %s", buf.String())
	}

	buf.Reset()
	if err := (&JSONFormatter{}).FormatItems(&buf, "ignored", nil); err != nil {
		t.Fatalf("FormatItems() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}

func TestMarkdownFormatter(t *testing.T) {
	var md, html bytes.Buffer
	if err := NewFormatter(FormatMarkdown).FormatPlan(&md, testPlan); err != nil {
		t.Fatalf("markdown error = %v", err)
	}
	if err := NewFormatter(FormatHTML).FormatPlan(&html, testPlan); err != nil {
		t.Fatalf("html error = %v", err)
	}

	if !strings.HasPrefix(md.String(), "## Work\n") || !strings.Contains(md.String(), "- [x] Email boss") {
		t.Errorf("unexpected markdown %q", md.String())
	}
	if !strings.Contains(html.String(), "<h2>Personal</h2>") {
		t.Errorf("unexpected html %q", html.String())
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{format: FormatText, want: "*cli.TextFormatter"},
		{format: FormatJSON, want: "*cli.JSONFormatter"},
		{format: FormatMarkdown, want: "*cli.MarkdownFormatter"},
		{format: FormatHTML, want: "*cli.MarkdownFormatter"},
		{format: "unknown", want: "*cli.TextFormatter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got := fmt.Sprintf("%T", NewFormatter(tt.format))
			if got != tt.want {
				t.Errorf("NewFormatter(%q) type = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}
