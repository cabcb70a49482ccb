package distill

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Fallback content used when the model output cannot be turned into a plan.
const (
	fallbackSectionID    = "fallback-1"
	fallbackSectionTitle = "Action Items"
	fallbackItemID       = "fallback-item-1"
	fallbackItemText     = "Review and organize the input"

	processingErrorSectionID    = "error-1"
	processingErrorSectionTitle = "Processing Error"
	processingErrorItemID       = "error-item-1"
	processingErrorItemText     = "Unable to process input. Please try again."
)

// IDFunc returns the unique component appended to generated section and item IDs.
type IDFunc func() string

// Normalizer maps raw completion text into a Plan.
//
// A Normalizer is stateless apart from its ID source and is safe for
// concurrent use when the IDFunc is.
type Normalizer struct {
	newID IDFunc
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithIDFunc overrides the ID source. Tests use it for deterministic IDs.
func WithIDFunc(fn IDFunc) NormalizerOption {
	return func(n *Normalizer) {
		if fn != nil {
			n.newID = fn
		}
	}
}

// NewNormalizer creates a Normalizer that stamps IDs with random UUIDs.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{newID: uuid.NewString}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts raw model output into a Plan.
//
// The returned error is one of:
//   - nil: the plan is valid and non-empty
//   - ErrMalformedOutput: no parseable JSON; the plan is ProcessingErrorPlan
//   - ErrInvalidStructure: JSON without a sections array; the plan is empty
func (n *Normalizer) Normalize(raw string) (Plan, error) {
	candidate := ExtractJSON(raw)

	if !gjson.Valid(candidate) {
		return ProcessingErrorPlan(), fmt.Errorf("%w: no parseable JSON object in completion", ErrMalformedOutput)
	}

	sections := gjson.Get(candidate, "sections")
	if !sections.IsArray() {
		return Plan{}, ErrInvalidStructure
	}

	plan := Plan{Sections: make([]Section, 0, len(sections.Array()))}
	for si, sec := range sections.Array() {
		plan.Sections = append(plan.Sections, n.mapSection(si, sec))
	}

	if len(plan.Sections) == 0 || !plan.HasItems() {
		plan.Sections = append(plan.Sections, fallbackSection())
	}

	return plan, nil
}

// mapSection converts one model section (title + bullets) into a Section.
func (n *Normalizer) mapSection(index int, raw gjson.Result) Section {
	uid := n.newID()

	title := sectionTitle(raw.Get("title"))
	if title == "" {
		title = fmt.Sprintf("Section %d", index+1)
	}

	section := Section{
		ID:    fmt.Sprintf("section-%d-%s", index+1, uid),
		Title: title,
		Items: []Item{},
	}

	bullets := raw.Get("bullets")
	if !bullets.IsArray() {
		return section
	}

	for _, bullet := range bullets.Array() {
		text, ok := bulletText(bullet)
		if !ok {
			continue
		}
		section.Items = append(section.Items, Item{
			ID:        fmt.Sprintf("item-%d-%d-%s", index, len(section.Items), uid),
			Text:      text,
			Completed: false,
		})
	}

	return section
}

// sectionTitle returns the title when it is a non-blank string.
func sectionTitle(r gjson.Result) string {
	if r.Type != gjson.String || strings.TrimSpace(r.Str) == "" {
		return ""
	}
	return r.Str
}

// bulletText extracts the item text from a bullet. Strings are kept
// verbatim, other scalars are stringified, null and nested values are dropped.
func bulletText(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.String:
		if r.Str == "" {
			return "", false
		}
		return r.Str, true
	case gjson.Number, gjson.True, gjson.False:
		return r.Raw, true
	default:
		return "", false
	}
}

// ExtractJSON returns the widest substring bounded by the first '{' and the
// last '}'. Text without such a pair is returned unchanged so the parse
// step reports it as malformed.
func ExtractJSON(raw string) string {
	content := strings.TrimSpace(raw)
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return content
	}
	return content[start : end+1]
}

// ProcessingErrorPlan is the deterministic plan returned alongside
// ErrMalformedOutput.
func ProcessingErrorPlan() Plan {
	return Plan{Sections: []Section{{
		ID:    processingErrorSectionID,
		Title: processingErrorSectionTitle,
		Items: []Item{{ID: processingErrorItemID, Text: processingErrorItemText}},
	}}}
}

func fallbackSection() Section {
	return Section{
		ID:    fallbackSectionID,
		Title: fallbackSectionTitle,
		Items: []Item{{ID: fallbackItemID, Text: fallbackItemText}},
	}
}

// HasFallback reports whether Normalize appended the fallback section.
func (p Plan) HasFallback() bool {
	n := len(p.Sections)
	return n > 0 && p.Sections[n-1].ID == fallbackSectionID
}
