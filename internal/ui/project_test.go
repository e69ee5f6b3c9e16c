package ui

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marloe/standup/internal/config"
	"github.com/marloe/standup/internal/project"
	"github.com/marloe/standup/internal/testutil"
)

const duplicateHeadingsOverview = `---
Status: Active
---
# Demo

## Tasks
- [ ] first section task

## Tasks
- [ ] second section task
`

func newTestProjectScreen(t *testing.T, overview string) *projectScreen {
	t.Helper()
	root, store := testutil.TestTree(t)
	dir := testutil.AddProject(t, root, "demo", overview)
	deps := Deps{
		Config: config.NewDefaultConfig(),
		Store:  store,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return newProjectScreen(deps, NewStyles(config.ThemeDefault), project.FromDirectory(dir))
}

// focusItemFor moves the focus to the given section/checkbox pair.
func focusItemFor(t *testing.T, s *projectScreen, section, checkbox int) {
	t.Helper()
	for i, it := range s.items {
		if it.section == section && it.checkbox == checkbox {
			s.focus = i
			return
		}
	}
	t.Fatalf("no focus item for section %d checkbox %d", section, checkbox)
}

func TestToggleFocusedCheckbox_DuplicateHeadings(t *testing.T) {
	s := newTestProjectScreen(t, duplicateHeadingsOverview)
	if len(s.proj.Doc.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(s.proj.Doc.Sections))
	}

	// Toggle the checkbox in the second of two same-named sections.
	focusItemFor(t, s, 1, 0)
	s.toggleFocusedCheckbox()

	if body := s.proj.Doc.Sections[0].Body; !strings.Contains(body, "- [ ] first section task") {
		t.Errorf("first section changed: %q", body)
	}
	if body := s.proj.Doc.Sections[1].Body; !strings.Contains(body, "- [x] second section task") {
		t.Errorf("second section not toggled: %q", body)
	}

	// The write went to disk with the same shape.
	data, err := os.ReadFile(filepath.Join(s.proj.Path, project.OverviewFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "- [ ] first section task") ||
		!strings.Contains(string(data), "- [x] second section task") {
		t.Errorf("persisted file = %q", data)
	}
}

func TestEditSection_DuplicateHeadings(t *testing.T) {
	s := newTestProjectScreen(t, duplicateHeadingsOverview)

	// Edit the second Tasks section through the textarea path.
	focusItemFor(t, s, 1, -1)
	if _, _ = s.beginEditSection(); s.mode != modeEditSection {
		t.Fatalf("mode = %v, want edit", s.mode)
	}
	if got := s.editor.Value(); !strings.Contains(got, "second section task") {
		t.Fatalf("editor seeded with %q, want the second section body", got)
	}
	s.editor.SetValue("- [ ] rewritten task")
	if _, _ = s.updateEditSection(tea.KeyMsg{Type: tea.KeyCtrlS}); s.mode != modeView {
		t.Fatalf("mode = %v, want view after save", s.mode)
	}

	if body := s.proj.Doc.Sections[0].Body; !strings.Contains(body, "first section task") {
		t.Errorf("first section changed: %q", body)
	}
	if body := s.proj.Doc.Sections[1].Body; body != "- [ ] rewritten task\n" {
		t.Errorf("second section = %q", body)
	}
}
