package ui

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/marloe/standup/internal/document"
	"github.com/marloe/standup/internal/livedata"
	"github.com/marloe/standup/internal/project"
)

// OverviewTemplate seeds a new overview file when a project has none yet.
const OverviewTemplate = `---
Status: Backlog
Priority: Low
Type:
Next_action:
---
# %s

## Notes

## Tasks
- [ ]
`

// Detail-screen modes. View is the default; the others capture input.
type projectMode int

const (
	modeView projectMode = iota
	modeEditSection
	modePickStatus
	modePickPriority
	modeNextAction
	modeAddSection
	modeLogWork
)

// focusItem is one navigable row in the detail view: a section heading or a
// checkbox line inside a section body.
type focusItem struct {
	section  int // index into doc.Sections
	checkbox int // line within the section body, -1 for the heading itself
	label    string
}

type liveDataMsg struct {
	git      string
	branch   string
	docker   string
	modified string
}

type editorFinishedMsg struct{ err error }

// projectScreen shows one project: frontmatter summary, live git/docker
// data, and the sections with in-place checkbox toggling and editing.
type projectScreen struct {
	deps   Deps
	styles *Styles
	proj   project.Project

	mode    projectMode
	items   []focusItem
	focus   int
	vp      viewport.Model
	editor  textarea.Model
	input   textinput.Model
	pick    []string
	pickIdx int

	live   liveDataMsg
	errMsg string

	width  int
	height int
}

func newProjectScreen(deps Deps, styles *Styles, p project.Project) *projectScreen {
	s := &projectScreen{
		deps:   deps,
		styles: styles,
		proj:   p,
		vp:     viewport.New(80, 20),
	}
	s.rebuildItems()
	return s
}

func (s *projectScreen) SetSize(width, height int) {
	s.width, s.height = width, height
	s.vp.Width = width
	s.vp.Height = height - 9
	if s.vp.Height < 3 {
		s.vp.Height = 3
	}
	s.editor.SetWidth(width - 4)
	s.editor.SetHeight(s.vp.Height)
}

func (s *projectScreen) Init() tea.Cmd {
	s.reload()
	return s.loadLiveData()
}

// reload rereads the overview from disk so pops and watcher events show the
// current state.
func (s *projectScreen) reload() {
	s.proj = project.FromDirectory(s.proj.Path)
	s.rebuildItems()
}

// rebuildItems flattens the document into the navigable row list.
func (s *projectScreen) rebuildItems() {
	s.items = nil
	if s.proj.Doc == nil {
		return
	}
	for i, sec := range s.proj.Doc.Sections {
		s.items = append(s.items, focusItem{section: i, checkbox: -1, label: sec.Heading})
		for _, cb := range document.ScanCheckboxes(sec.Body) {
			s.items = append(s.items, focusItem{section: i, checkbox: cb.Line, label: cb.Label})
		}
	}
	if s.focus >= len(s.items) {
		s.focus = len(s.items) - 1
	}
	if s.focus < 0 {
		s.focus = 0
	}
}

// loadLiveData fans out the external checks concurrently; each one already
// degrades to a placeholder on failure.
func (s *projectScreen) loadLiveData() tea.Cmd {
	codePath := s.proj.CodePath()
	dockerName := s.proj.DockerName()
	host := s.deps.Config.DockerHost
	return func() tea.Msg {
		var msg liveDataMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error { msg.git = livedata.GitActivity(ctx, codePath); return nil })
		g.Go(func() error { msg.branch = livedata.GitBranch(ctx, codePath); return nil })
		g.Go(func() error { msg.docker = livedata.DockerStatus(ctx, dockerName, host); return nil })
		g.Go(func() error { msg.modified = livedata.LastModified(codePath); return nil })
		_ = g.Wait()
		return msg
	}
}

// save renders the document and writes it through the storage provider.
func (s *projectScreen) save() {
	if s.proj.Doc == nil {
		return
	}
	rel := filepath.Join(s.proj.Name, project.OverviewFile)
	if err := s.deps.Store.Write(rel, []byte(s.proj.Doc.Render())); err != nil {
		s.errMsg = "save failed: " + err.Error()
		s.deps.Logger.Error("overview save failed",
			"project", s.proj.Name, "error", err.Error())
		return
	}
	s.errMsg = ""
}

func (s *projectScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case liveDataMsg:
		s.live = msg
		return s, nil

	case ProjectsChangedMsg:
		// Outside edit while this screen is up. Input modes keep their
		// buffer; the view refreshes on return to view mode.
		if s.mode == modeView {
			s.reload()
		}
		return s, nil

	case editorFinishedMsg:
		s.reload()
		if msg.err != nil {
			s.errMsg = "editor: " + msg.err.Error()
		}
		return s, s.loadLiveData()

	case tea.KeyMsg:
		switch s.mode {
		case modeView:
			return s.updateView(msg)
		case modeEditSection:
			return s.updateEditSection(msg)
		case modePickStatus, modePickPriority:
			return s.updatePicker(msg)
		default:
			return s.updateInput(msg)
		}
	}
	return s, nil
}

func (s *projectScreen) updateView(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return s, popScreen
	case "j", "down":
		if s.focus < len(s.items)-1 {
			s.focus++
		}
	case "k", "up":
		if s.focus > 0 {
			s.focus--
		}
	case " ":
		s.toggleFocusedCheckbox()
	case "enter":
		return s.beginEditSection()
	case "u":
		return s.beginPicker(modePickStatus, s.deps.Config.StatusPresets, s.proj.Status())
	case "p":
		return s.beginPicker(modePickPriority, s.deps.Config.PriorityPresets, s.proj.Priority())
	case "n":
		return s.beginInput(modeNextAction, "next action", s.proj.NextAction())
	case "a":
		return s.beginInput(modeAddSection, "new section heading", "")
	case "w":
		return s.beginInput(modeLogWork, "what did you do?", "")
	case "e":
		return s, s.openEditor()
	case "r":
		s.reload()
		return s, s.loadLiveData()
	case "t":
		return s, func() tea.Msg { return cycleThemeMsg{} }
	}
	return s, nil
}

// toggleFocusedCheckbox flips the focused checkbox and persists the file.
func (s *projectScreen) toggleFocusedCheckbox() {
	if s.focus >= len(s.items) {
		return
	}
	item := s.items[s.focus]
	if item.checkbox < 0 || s.proj.Doc == nil {
		return
	}
	sec := s.proj.Doc.Sections[item.section]
	s.proj.Doc.SetSectionAt(item.section, document.ToggleCheckbox(sec.Body, item.checkbox))
	s.save()
	s.rebuildItems()
}

func (s *projectScreen) beginEditSection() (screen, tea.Cmd) {
	if s.focus >= len(s.items) || s.proj.Doc == nil {
		return s, nil
	}
	item := s.items[s.focus]
	sec := s.proj.Doc.Sections[item.section]

	s.editor = textarea.New()
	s.editor.SetValue(sec.Body)
	s.editor.SetWidth(s.width - 4)
	s.editor.SetHeight(s.vp.Height)
	s.mode = modeEditSection
	return s, s.editor.Focus()
}

func (s *projectScreen) updateEditSection(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeView
		return s, nil
	case "ctrl+s":
		item := s.items[s.focus]
		s.proj.Doc.SetSectionAt(item.section, s.editor.Value())
		s.save()
		s.rebuildItems()
		s.mode = modeView
		return s, notify("section saved")
	}
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

func (s *projectScreen) beginPicker(mode projectMode, presets []string, current string) (screen, tea.Cmd) {
	if s.proj.Doc == nil {
		return s, nil
	}
	s.mode = mode
	s.pick = presets
	s.pickIdx = 0
	for i, p := range presets {
		if strings.EqualFold(p, current) {
			s.pickIdx = i
			break
		}
	}
	return s, nil
}

func (s *projectScreen) updatePicker(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeView
		return s, nil
	case "j", "down":
		if s.pickIdx < len(s.pick)-1 {
			s.pickIdx++
		}
	case "k", "up":
		if s.pickIdx > 0 {
			s.pickIdx--
		}
	case "enter":
		key, presets := "Status", s.deps.Config.StatusPresets
		if s.mode == modePickPriority {
			key, presets = "Priority", s.deps.Config.PriorityPresets
		}
		s.proj.Doc.SetField(key, project.Normalize(s.pick[s.pickIdx], presets))
		s.save()
		s.mode = modeView
		return s, notify(key + " set")
	}
	return s, nil
}

func (s *projectScreen) beginInput(mode projectMode, placeholder, value string) (screen, tea.Cmd) {
	if mode != modeLogWork && s.proj.Doc == nil {
		return s, nil
	}
	s.input = textinput.New()
	s.input.Placeholder = placeholder
	s.input.SetValue(value)
	s.input.CharLimit = 200
	s.mode = mode
	return s, s.input.Focus()
}

func (s *projectScreen) updateInput(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.mode = modeView
		return s, nil
	case "enter":
		value := strings.TrimSpace(s.input.Value())
		mode := s.mode
		s.mode = modeView
		if value == "" {
			return s, nil
		}
		switch mode {
		case modeNextAction:
			s.proj.Doc.SetField("Next_action", value)
			s.save()
			return s, notify("next action set")
		case modeAddSection:
			s.proj.Doc.SetSection(value, "")
			s.save()
			s.rebuildItems()
			return s, notify("section added")
		case modeLogWork:
			if err := s.deps.Journal.Log(s.proj.Name, value); err != nil {
				return s, notify("journal: " + err.Error())
			}
			return s, notify("logged")
		}
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// openEditor suspends the program and runs the configured editor on the
// overview file, creating it from the template first when absent.
func (s *projectScreen) openEditor() tea.Cmd {
	path := filepath.Join(s.proj.Path, project.OverviewFile)
	if s.proj.Doc == nil {
		content := fmt.Sprintf(OverviewTemplate, s.proj.Name)
		rel := filepath.Join(s.proj.Name, project.OverviewFile)
		if err := s.deps.Store.Write(rel, []byte(content)); err != nil {
			s.errMsg = "create overview: " + err.Error()
			return nil
		}
	}
	cmd := exec.Command(s.deps.Config.ResolvedEditor(), path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (s *projectScreen) View() string {
	var b strings.Builder

	b.WriteString(s.styles.Header.Render(" " + s.proj.Title() + " "))
	b.WriteString("\n")
	b.WriteString(s.summaryLine())
	b.WriteString("\n")
	b.WriteString(s.liveLines())
	b.WriteString("\n")

	switch s.mode {
	case modeEditSection:
		item := s.items[s.focus]
		b.WriteString(s.styles.Heading.Render("## " + s.proj.Doc.Sections[item.section].Heading))
		b.WriteString("\n")
		b.WriteString(s.editor.View())
		b.WriteString("\n")
		b.WriteString(s.styles.Help.Render("ctrl+s save  esc cancel"))
	case modePickStatus, modePickPriority:
		b.WriteString(s.pickerView())
	case modeNextAction, modeAddSection, modeLogWork:
		b.WriteString(s.bodyView())
		b.WriteString("\n")
		b.WriteString(s.input.View())
		b.WriteString("\n")
		b.WriteString(s.styles.Help.Render("enter confirm  esc cancel"))
	default:
		b.WriteString(s.bodyView())
		b.WriteString("\n")
		b.WriteString(s.styles.Help.Render(
			"j/k move  space toggle  enter edit  u status  p priority  n next  a add  w log  e editor  esc back"))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(s.styles.Error.Render(s.errMsg))
	}
	return b.String()
}

func (s *projectScreen) summaryLine() string {
	status := s.styles.StatusStyle(s.proj.Status()).Render(s.proj.Status())
	priority := s.styles.PriorityStyle(s.proj.Priority()).Render(s.proj.Priority())
	parts := []string{status, priority}
	if t := s.proj.Type(); t != "" {
		parts = append(parts, t)
	}
	if tags := s.proj.Tags(); len(tags) > 0 {
		parts = append(parts, s.styles.Dim.Render("#"+strings.Join(tags, " #")))
	}
	if na := s.proj.NextAction(); na != "" {
		parts = append(parts, s.styles.Accent.Render("→ "+na))
	}
	return " " + strings.Join(parts, "  ")
}

func (s *projectScreen) liveLines() string {
	git := s.live.git
	if s.live.branch != "" {
		git = "[" + s.live.branch + "] " + git
	}
	if git == "" {
		git = livedata.Placeholder
	}
	docker := s.live.docker
	if docker == "" {
		docker = livedata.Placeholder
	}
	modified := s.live.modified
	if modified == "" {
		modified = livedata.Placeholder
	}
	return s.styles.Dim.Render(fmt.Sprintf(" git: %s\n docker: %s\n modified: %s", git, docker, modified))
}

// bodyView renders the sections through the viewport, keeping the focused
// row visible.
func (s *projectScreen) bodyView() string {
	if s.proj.Err != nil {
		return s.styles.Error.Render(" overview unreadable: " + s.proj.Err.Error())
	}
	if s.proj.Doc == nil {
		return s.styles.Dim.Render(" no overview yet, press e to create one")
	}

	content, focusLine := s.renderSections()
	s.vp.SetContent(content)
	if focusLine >= 0 {
		if focusLine < s.vp.YOffset {
			s.vp.SetYOffset(focusLine)
		} else if focusLine >= s.vp.YOffset+s.vp.Height {
			s.vp.SetYOffset(focusLine - s.vp.Height + 1)
		}
	}
	return s.vp.View()
}

// renderSections builds the scrollable body and reports the line number of
// the focused row.
func (s *projectScreen) renderSections() (string, int) {
	var b strings.Builder
	line := 0
	focusLine := -1

	itemAt := func(section, checkbox int) (int, bool) {
		for i, it := range s.items {
			if it.section == section && it.checkbox == checkbox {
				return i, true
			}
		}
		return 0, false
	}

	for i, sec := range s.proj.Doc.Sections {
		heading := "## " + sec.Heading
		if idx, ok := itemAt(i, -1); ok && idx == s.focus {
			focusLine = line
			b.WriteString(s.styles.Selected.Render("> " + heading))
		} else {
			b.WriteString(s.styles.Heading.Render("  " + heading))
		}
		b.WriteString("\n")
		line++

		for n, raw := range strings.Split(strings.TrimRight(sec.Body, "\n"), "\n") {
			if sec.Body == "" {
				break
			}
			rendered := "    " + raw
			if _, ok := document.ParseCheckboxLine(raw); ok {
				if idx, found := itemAt(i, n); found && idx == s.focus {
					focusLine = line
					rendered = s.styles.Selected.Render("  > " + raw)
				}
			}
			b.WriteString(rendered)
			b.WriteString("\n")
			line++
		}
	}
	return b.String(), focusLine
}

func (s *projectScreen) pickerView() string {
	var b strings.Builder
	label := "status"
	if s.mode == modePickPriority {
		label = "priority"
	}
	b.WriteString(s.styles.Title.Render(" set " + label))
	b.WriteString("\n")
	for i, p := range s.pick {
		if i == s.pickIdx {
			b.WriteString(s.styles.Selected.Render(" > " + p))
		} else {
			b.WriteString("   " + p)
		}
		b.WriteString("\n")
	}
	b.WriteString(s.styles.Help.Render("j/k move  enter select  esc cancel"))
	return b.String()
}
