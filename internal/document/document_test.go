package document

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var docCmp = cmp.AllowUnexported(Document{}, field{})

func TestParse_FrontmatterPreambleSection(t *testing.T) {
	doc := Parse("---\nStatus: Active\n---\nIntro line\n## Blockers\nNone\n")

	if got := doc.Get("Status", ""); got != "Active" {
		t.Errorf("Status = %q, want %q", got, "Active")
	}
	if doc.Preamble != "Intro line\n" {
		t.Errorf("Preamble = %q, want %q", doc.Preamble, "Intro line\n")
	}
	if len(doc.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(doc.Sections))
	}
	if doc.Sections[0].Heading != "Blockers" || doc.Sections[0].Body != "None\n" {
		t.Errorf("section = %+v", doc.Sections[0])
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	doc := Parse("# Just a title\nSome text.\n")
	if doc.HasFrontmatter() {
		t.Errorf("expected no frontmatter, keys = %v", doc.Keys())
	}
	if doc.Title() != "Just a title" {
		t.Errorf("Title = %q", doc.Title())
	}
	if len(doc.Sections) != 0 {
		t.Errorf("expected zero sections, got %d", len(doc.Sections))
	}
}

func TestParse_UnclosedFrontmatterIsBody(t *testing.T) {
	raw := "---\nStatus: Active\nno closing delimiter\n"
	doc := Parse(raw)
	if doc.HasFrontmatter() {
		t.Errorf("expected no frontmatter")
	}
	if doc.Preamble != raw {
		t.Errorf("Preamble = %q, want the whole input", doc.Preamble)
	}
}

func TestParse_MalformedYAMLFallsBackToLineScan(t *testing.T) {
	// "fix: the bug" makes the block invalid YAML; the line scan still
	// recovers both fields.
	doc := Parse("---\nStatus: Active\nNext_action: fix: the bug\n---\nbody\n")
	if got := doc.Get("Status", ""); got != "Active" {
		t.Errorf("Status = %q, want %q", got, "Active")
	}
	if got := doc.Get("Next_action", ""); got != "fix: the bug" {
		t.Errorf("Next_action = %q, want %q", got, "fix: the bug")
	}
}

func TestParse_GarbageNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"---",
		"---\n---",
		"---\n: invalid: yaml: {{{\n---\nBody\n",
		"\x00\xff binary-ish",
		"## \n## also empty heading text\n",
	}
	for _, in := range inputs {
		doc := Parse(in)
		if doc == nil {
			t.Fatalf("Parse(%q) returned nil", in)
		}
	}
}

func TestGet_KeyNormalization(t *testing.T) {
	doc := Parse("---\nNext_action: ship it\n---\n")
	for _, key := range []string{"Next_action", "next action", "NEXT-ACTION", "nextaction"} {
		if got := doc.Get(key, ""); got != "ship it" {
			t.Errorf("Get(%q) = %q, want %q", key, got, "ship it")
		}
	}
	if got := doc.Get("missing", "fallback"); got != "fallback" {
		t.Errorf("Get(missing) = %q, want fallback", got)
	}
}

func TestGet_SequenceReturnsDefault(t *testing.T) {
	doc := Parse("---\nTags:\n- go\n- infra\n---\n")
	if got := doc.Get("Tags", "none"); got != "none" {
		t.Errorf("Get on sequence = %q, want default", got)
	}
	tags := doc.GetList("tags")
	if len(tags) != 2 || tags[0] != "go" || tags[1] != "infra" {
		t.Errorf("GetList = %v", tags)
	}
	if got := doc.GetList("Next_action"); got != nil {
		t.Errorf("GetList on missing key = %v, want nil", got)
	}
}

func TestGet_NullValue(t *testing.T) {
	doc := Parse("---\nType:\ncode_path: /srv/x\n---\n")
	if got := doc.Get("Type", "def"); got != "def" {
		t.Errorf("Get(Type) = %q, want default", got)
	}
	if got := doc.Get("code_path", ""); got != "/srv/x" {
		t.Errorf("Get(code_path) = %q", got)
	}
}

func TestGet_CollidingKeysFirstSeenWins(t *testing.T) {
	doc := Parse("---\nNext Action: first\nnext_action: second\n---\n")
	if got := doc.Get("next-action", ""); got != "first" {
		t.Errorf("Get = %q, want first-seen value", got)
	}
	doc.SetField("NEXT ACTION", "updated")
	if got := doc.Get("Next Action", ""); got != "updated" {
		t.Errorf("Get after SetField = %q", got)
	}
	// The later duplicate is untouched and still rendered.
	if keys := doc.Keys(); len(keys) != 2 {
		t.Errorf("Keys = %v, want both spellings preserved", keys)
	}
}

func TestSection_CaseInsensitive(t *testing.T) {
	doc := Parse("## Blockers\nwaiting on DNS\n## Notes\n\nsome notes\n")
	if got := doc.Section("blockers"); got != "waiting on DNS\n" {
		t.Errorf("Section(blockers) = %q", got)
	}
	if got := doc.Section("NOTES"); got != "\nsome notes\n" {
		t.Errorf("Section(NOTES) = %q", got)
	}
	if got := doc.Section("absent"); got != "" {
		t.Errorf("Section(absent) = %q, want empty", got)
	}
}

func TestSetSection_ReplaceAndAppend(t *testing.T) {
	doc := Parse("# T\n## Blockers\nNone\n")
	doc.SetSection("blockers", "waiting on review")
	if got := doc.Section("Blockers"); got != "waiting on review\n" {
		t.Errorf("replaced body = %q", got)
	}
	doc.SetSection("Log", "first entry\n")
	if len(doc.Sections) != 2 || doc.Sections[1].Heading != "Log" {
		t.Fatalf("sections = %+v", doc.Sections)
	}

	reparsed := Parse(doc.Render())
	if diff := cmp.Diff(doc, reparsed, docCmp); diff != "" {
		t.Errorf("render after edits not stable (-want +got):\n%s", diff)
	}
}

func TestSetSectionAt_DuplicateHeadings(t *testing.T) {
	doc := Parse("# T\n\n## Tasks\nfirst\n\n## Tasks\nsecond\n")
	if len(doc.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(doc.Sections))
	}

	// A heading lookup cannot address the second of two same-named
	// sections; the index write must.
	doc.SetSectionAt(1, "rewritten")
	if got := doc.Sections[0].Body; got != "first\n\n" {
		t.Errorf("first section = %q, want untouched", got)
	}
	if got := doc.Sections[1].Body; got != "rewritten\n" {
		t.Errorf("second section = %q", got)
	}

	// Out-of-range indexes are no-ops.
	doc.SetSectionAt(-1, "x")
	doc.SetSectionAt(2, "x")
	if got := doc.Sections[1].Body; got != "rewritten\n" {
		t.Errorf("after out-of-range writes = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"---\nStatus: Active\nPriority: High\nTags:\n- go\n- web\nType:\n---\n# Title\nintro\n\n## What is this?\nA thing.\n\n## Blockers\nNone\n",
		"no frontmatter at all\njust text\n",
		"## Only\na section\n",
		"---\nStatus: Paused\n---\nbody without trailing newline",
		"# Title only",
		"---\nNext_action: fix: the bug\nweird line without colon-value !!\n---\ntext\n",
	}
	for _, in := range inputs {
		once := Parse(in)
		again := Parse(once.Render())
		if diff := cmp.Diff(once, again, docCmp); diff != "" {
			t.Errorf("round trip of %q (-first +reparsed):\n%s", in, diff)
		}
	}
}

func TestRender_ByteStableForWellFormedInput(t *testing.T) {
	in := "---\nStatus: Active\nTags:\n- go\n---\n# Title\n\n## Blockers\nNone\n"
	if got := Parse(in).Render(); got != in {
		t.Errorf("Render = %q, want input unchanged", got)
	}
}

func TestTitle_FromPreamble(t *testing.T) {
	doc := Parse("intro text\n# The Title\nmore\n## S\nx\n")
	if got := doc.Title(); got != "The Title" {
		t.Errorf("Title = %q", got)
	}
	if Parse("no heading here\n").Title() != "" {
		t.Errorf("expected empty title")
	}
}
