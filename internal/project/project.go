// Package project models project directories and their overview documents:
// scanning the projects tree, derived frontmatter fields, dashboard
// ordering, and name matching.
package project

import (
	"sort"
	"strings"

	"github.com/marloe/standup/internal/document"
)

// OverviewFile is the per-project document name.
const OverviewFile = "_OVERVIEW.md"

// Project is one directory under the projects tree. Doc is nil when the
// directory has no overview file; Err marks a directory whose overview
// exists but could not be read (distinct from "no file").
type Project struct {
	Name string
	Path string
	Doc  *document.Document
	Err  error
}

// HasOverview reports whether a parsed overview document is attached.
func (p Project) HasOverview() bool {
	return p.Doc != nil
}

// get is the nil-safe frontmatter accessor behind the derived fields.
func (p Project) get(key, def string) string {
	if p.Doc == nil {
		return def
	}
	return p.Doc.Get(key, def)
}

func (p Project) Status() string       { return p.get("Status", "Unknown") }
func (p Project) Priority() string     { return p.get("Priority", "Low") }
func (p Project) NextAction() string   { return p.get("Next_action", "") }
func (p Project) Type() string         { return p.get("Type", "") }
func (p Project) Energy() string       { return p.get("Energy_required", "") }
func (p Project) TimeEstimate() string { return p.get("Time_estimate", "") }
func (p Project) CodePath() string     { return p.get("code_path", "") }
func (p Project) DockerName() string   { return p.get("docker_name", "") }

// Tags returns the frontmatter tag sequence, or nil.
func (p Project) Tags() []string {
	if p.Doc == nil {
		return nil
	}
	return p.Doc.GetList("Tags")
}

// Title returns the document's # heading, falling back to the directory name.
func (p Project) Title() string {
	if p.Doc != nil {
		if t := p.Doc.Title(); t != "" {
			return t
		}
	}
	return p.Name
}

// Status and priority ranks for dashboard ordering; lower sorts first.
var statusRank = map[string]int{
	"active": 1, "in progress": 1, "running": 1,
	"ready": 2, "stuck": 2, "blocked": 2,
	"paused":  3,
	"backlog": 4,
}

var priorityRank = map[string]int{
	"high": 1, "medium": 2, "med": 2, "low": 3,
}

func rankOf(m map[string]int, v string, unknown int) int {
	if r, ok := m[strings.ToLower(v)]; ok {
		return r
	}
	return unknown
}

// SortForDashboard orders projects the way the dashboard lists them:
// overview-bearing projects first, then status rank, priority rank, and
// lowercase name. The ordering is total and stable across runs, which is
// what cursor restoration relies on.
func SortForDashboard(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		if a.HasOverview() != b.HasOverview() {
			return a.HasOverview()
		}
		sa, sb := rankOf(statusRank, a.Status(), 5), rankOf(statusRank, b.Status(), 5)
		if sa != sb {
			return sa < sb
		}
		pa, pb := rankOf(priorityRank, a.Priority(), 4), rankOf(priorityRank, b.Priority(), 4)
		if pa != pb {
			return pa < pb
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}
