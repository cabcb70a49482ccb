package client

import (
	"fmt"
	"slices"
	"strings"

	"brainstormer-hq/distill/pkg/distill"
)

// category is a canned section emitted when any keyword appears as a word
// of the input.
type category struct {
	keywords []string
	section  distill.Section
}

var categories = []category{
	{
		keywords: []string{"work", "job", "career", "project", "task"},
		section: distill.Section{ID: "work-1", Title: "Work & Projects", Items: []distill.Item{
			{ID: "w1", Text: "Review project timeline and deliverables"},
			{ID: "w2", Text: "Schedule team sync meeting"},
			{ID: "w3", Text: "Update project documentation"},
		}},
	},
	{
		keywords: []string{"personal", "life", "home", "family"},
		section: distill.Section{ID: "personal-1", Title: "Personal", Items: []distill.Item{
			{ID: "p1", Text: "Plan weekend activities"},
			{ID: "p2", Text: "Organize home workspace"},
		}},
	},
	{
		keywords: []string{"health", "exercise", "fitness", "gym", "workout"},
		section: distill.Section{ID: "health-1", Title: "Health & Wellness", Items: []distill.Item{
			{ID: "h1", Text: "Schedule gym sessions for the week"},
			{ID: "h2", Text: "Meal prep for healthy lunches"},
		}},
	},
	{
		keywords: []string{"learn", "study", "course", "skill", "education"},
		section: distill.Section{ID: "learning-1", Title: "Learning & Growth", Items: []distill.Item{
			{ID: "l1", Text: "Complete online course module"},
			{ID: "l2", Text: "Practice new skill for 30 minutes"},
		}},
	},
}

var generalSection = distill.Section{ID: "general-1", Title: "Action Items", Items: []distill.Item{
	{ID: "g1", Text: "Prioritize and organize tasks"},
	{ID: "g2", Text: "Break down larger goals into steps"},
	{ID: "g3", Text: "Set deadlines for key actions"},
}}

var expansions = map[string][]string{
	"Work & Projects": {
		"Create detailed project roadmap",
		"Identify potential blockers",
		"Set up progress tracking system",
		"Schedule review checkpoint",
	},
	"Personal": {
		"Update personal calendar",
		"Reach out to friends and family",
		"Plan time for hobbies",
		"Review personal goals",
	},
	"Health & Wellness": {
		"Track daily water intake",
		"Plan active rest days",
		"Schedule health checkup",
		"Prepare workout playlist",
	},
	"Learning & Growth": {
		"Find learning resources",
		"Join relevant community",
		"Set learning milestones",
		"Create study schedule",
	},
	"Action Items": {
		"Review and prioritize",
		"Delegate if possible",
		"Set specific deadlines",
		"Track progress regularly",
	},
}

var defaultExpansion = []string{
	"Break down into smaller steps",
	"Identify dependencies",
	"Set success criteria",
	"Review and refine",
}

// MockPlan builds a plan offline by matching whole, lowercased words of
// text against fixed keyword sets. Matched categories appear in a fixed
// order; with no match a single generic section is returned.
func MockPlan(text string) distill.Plan {
	words := strings.Fields(strings.ToLower(text))

	var plan distill.Plan
	for _, cat := range categories {
		if slices.ContainsFunc(words, func(w string) bool { return slices.Contains(cat.keywords, w) }) {
			plan.Sections = append(plan.Sections, cloneSection(cat.section))
		}
	}

	if len(plan.Sections) == 0 {
		plan.Sections = append(plan.Sections, cloneSection(generalSection))
	}

	return plan
}

// ExpandSection suggests extra items for section based on its title.
// Ids are "<section id>-expand-<n>" counting from zero.
func ExpandSection(section distill.Section) []distill.Item {
	texts, ok := expansions[section.Title]
	if !ok {
		texts = defaultExpansion
	}

	items := make([]distill.Item, len(texts))
	for i, text := range texts {
		items[i] = distill.Item{
			ID:   fmt.Sprintf("%s-expand-%d", section.ID, i),
			Text: text,
		}
	}
	return items
}

func cloneSection(s distill.Section) distill.Section {
	s.Items = slices.Clone(s.Items)
	return s
}
