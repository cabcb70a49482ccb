package distill

import (
	"fmt"
	"strings"
)

// systemPrompt fixes the assistant role and the output-format obligation.
const systemPrompt = "You are a helpful productivity assistant that extracts actionable tasks from brain dumps. " +
	"Always return valid JSON only, no markdown, no code blocks."

// responseSchema is the JSON shape the model is asked to produce.
const responseSchema = `{
  "sections": [
    {
      "title": "Section Name",
      "bullets": [
        "Action item 1",
        "Action item 2",
        "Action item 3"
      ]
    }
  ]
}`

var guidelines = []string{
	"Extract key ideas from the input",
	"For each idea: create 3-5 concise practical bullets (minimum 3)",
	"Create 2-5 sections based on natural categories in the content",
	"Make items clear and actionable (start with verbs when appropriate)",
	"Organize related tasks together",
	"No commentary, no prose outside JSON",
	"If the input is very short or unclear, still create at least one section with reasonable action items",
}

// Prompt is the pair of messages sent to the completion service.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt renders the brain dump into the fixed instruction template.
// The text is embedded as-is.
func BuildPrompt(text string) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a productivity assistant. Analyze the following brain dump and extract actionable tasks, ")
	sb.WriteString("organizing them into logical categories with descriptive section titles.\n\n")
	sb.WriteString("Brain dump:\n")
	sb.WriteString(text)
	sb.WriteString("\n\n")
	sb.WriteString("Return ONLY a valid JSON object in this exact format (no markdown, no code blocks, just the raw JSON):\n")
	sb.WriteString(responseSchema)
	sb.WriteString("\n\nGuidelines:\n")
	for _, g := range guidelines {
		sb.WriteString(fmt.Sprintf("- %s\n", g))
	}

	return Prompt{
		System: systemPrompt,
		User:   strings.TrimSuffix(sb.String(), "\n"),
	}
}
