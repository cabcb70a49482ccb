package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"brainstormer-hq/distill/pkg/distill"
	"brainstormer-hq/distill/pkg/render"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is indented JSON output.
	FormatJSON OutputFormat = "json"
	// FormatMarkdown is a Markdown task list.
	FormatMarkdown OutputFormat = "markdown"
	// FormatHTML is the Markdown rendered to an HTML fragment.
	FormatHTML OutputFormat = "html"
)

// ParseOutputFormat validates a --format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatMarkdown, FormatHTML:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", NewConfigError("format", fmt.Sprintf("unknown output format %q (expected text, json, markdown or html)", s))
	}
}

// Formatter writes plans and item lists in one output format.
type Formatter interface {
	FormatPlan(w io.Writer, plan distill.Plan) error
	FormatItems(w io.Writer, title string, items []distill.Item) error
}

// TextFormatter formats output as plain text.
type TextFormatter struct{}

// FormatPlan writes each section title followed by indented items.
func (f *TextFormatter) FormatPlan(w io.Writer, plan distill.Plan) error {
	for i, section := range plan.Sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := f.FormatItems(w, section.Title, section.Items); err != nil {
			return err
		}
	}
	return nil
}

// FormatItems writes title and one checkbox line per item with its id.
func (f *TextFormatter) FormatItems(w io.Writer, title string, items []distill.Item) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "  (empty)")
		return err
	}
	for _, item := range items {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		if _, err := fmt.Fprintf(w, "  [%s] %s  (%s)\n", mark, item.Text, item.ID); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatPlan writes the plan in its wire shape.
func (f *JSONFormatter) FormatPlan(w io.Writer, plan distill.Plan) error {
	return f.encode(w, plan)
}

// FormatItems writes the items array; title is dropped.
func (f *JSONFormatter) FormatItems(w io.Writer, title string, items []distill.Item) error {
	if items == nil {
		items = []distill.Item{}
	}
	return f.encode(w, items)
}

func (f *JSONFormatter) encode(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// MarkdownFormatter formats output as Markdown, optionally rendered to HTML.
type MarkdownFormatter struct {
	HTML bool
}

// FormatPlan writes the plan as Markdown or HTML.
func (f *MarkdownFormatter) FormatPlan(w io.Writer, plan distill.Plan) error {
	return f.write(w, render.Markdown(plan))
}

// FormatItems writes a titled task list.
func (f *MarkdownFormatter) FormatItems(w io.Writer, title string, items []distill.Item) error {
	return f.write(w, render.ItemsMarkdown(title, items))
}

func (f *MarkdownFormatter) write(w io.Writer, markdown string) error {
	out := markdown
	if f.HTML {
		html, err := render.HTML(markdown)
		if err != nil {
			return err
		}
		out = html
	}
	_, err := io.WriteString(w, out)
	return err
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	case FormatHTML:
		return &MarkdownFormatter{HTML: true}
	default:
		return &TextFormatter{}
	}
}
