// Package render formats plans and running lists as Markdown or HTML.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"brainstormer-hq/distill/pkg/distill"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.TaskList))

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
)

// Markdown renders plan as one level-two heading per section followed by
// a task list of its items.
func Markdown(plan distill.Plan) string {
	var b strings.Builder
	for i, section := range plan.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", escape(section.Title))
		writeItems(&b, section.Items)
	}
	return b.String()
}

// ItemsMarkdown renders a titled task list.
func ItemsMarkdown(title string, items []distill.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", escape(title))
	writeItems(&b, items)
	return b.String()
}

// HTML converts Markdown output to an HTML fragment.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// PlanHTML renders plan straight to HTML.
func PlanHTML(plan distill.Plan) (string, error) {
	return HTML(Markdown(plan))
}

func writeItems(b *strings.Builder, items []distill.Item) {
	if len(items) == 0 {
		b.WriteString("_No items_\n")
		return
	}
	for _, item := range items {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		fmt.Fprintf(b, "- [%s] %s\n", mark, escape(item.Text))
	}
}

// escape neutralizes inline Markdown and collapses newlines so one item
// stays one list entry.
func escape(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return escaper.Replace(s)
}
