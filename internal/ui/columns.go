package ui

import (
	"strings"

	"github.com/marloe/standup/internal/project"
)

// Column keys are config-declared: built-in names, raw frontmatter keys, or
// "## Heading" to surface the first line of a section.

var columnLabels = map[string]string{
	"status":          "STATUS",
	"priority":        "PRI",
	"project":         "PROJECT",
	"type":            "TYPE",
	"next_action":     "NEXT ACTION",
	"energy_required": "ENERGY",
	"time_estimate":   "TIME",
	"tags":            "TAGS",
}

var columnWidths = map[string]int{
	"status":   12,
	"priority": 8,
	"project":  24,
	"type":     12,
}

const defaultColumnWidth = 28

// ColumnLabel returns the header text for a column key.
func ColumnLabel(key string) string {
	if heading, ok := strings.CutPrefix(key, "## "); ok {
		return strings.ToUpper(heading)
	}
	if label, ok := columnLabels[key]; ok {
		return label
	}
	return strings.ToUpper(strings.ReplaceAll(key, "_", " "))
}

// ColumnWidth returns the render width for a column key.
func ColumnWidth(key string) int {
	if w, ok := columnWidths[key]; ok {
		return w
	}
	return defaultColumnWidth
}

// CellValue maps a project and a column key to the displayed text. Projects
// without an overview document show their name and placeholders everywhere
// else.
func CellValue(p project.Project, key string) string {
	if key == "project" {
		return p.Name
	}
	if !p.HasOverview() {
		return "—"
	}

	switch key {
	case "status":
		return p.Status()
	case "priority":
		return p.Priority()
	case "type":
		return p.Type()
	case "next_action":
		return truncate(p.NextAction(), 40)
	case "energy_required":
		return p.Energy()
	case "time_estimate":
		return p.TimeEstimate()
	case "tags":
		if tags := p.Tags(); len(tags) > 0 {
			return strings.Join(tags, ", ")
		}
		return "—"
	}

	if heading, ok := strings.CutPrefix(key, "## "); ok {
		body := strings.TrimSpace(p.Doc.Section(heading))
		if body == "" {
			return "—"
		}
		first, _, _ := strings.Cut(body, "\n")
		return truncate(first, 30)
	}

	// Anything else is a raw frontmatter key.
	if v := p.Doc.Get(key, ""); v != "" {
		return truncate(v, 30)
	}
	return "—"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
