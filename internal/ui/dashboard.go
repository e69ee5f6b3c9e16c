package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marloe/standup/internal/config"
	"github.com/marloe/standup/internal/project"
)

// projectsLoadedMsg carries a completed tree scan back to the dashboard.
type projectsLoadedMsg struct {
	projects []project.Project
	err      error
}

// dashboard is the top-level project table.
type dashboard struct {
	deps   Deps
	styles *Styles

	projects []project.Project
	visible  []project.Project
	cursor   int
	offset   int

	filter    textinput.Model
	filtering bool
	loadErr   string

	width  int
	height int
}

func newDashboard(deps Deps, styles *Styles) *dashboard {
	ti := textinput.New()
	ti.Placeholder = "filter projects"
	ti.Prompt = "/"
	ti.CharLimit = 64
	return &dashboard{deps: deps, styles: styles, filter: ti}
}

func (d *dashboard) SetSize(width, height int) {
	d.width, d.height = width, height
}

// prefill seeds the filter text, used when a command-line jump was ambiguous
// and the caller falls back to a narrowed dashboard.
func (d *dashboard) prefill(query string) {
	d.filter.SetValue(query)
}

// Init rescans the tree. Runs on every entry to the screen, including pops
// from a project view, so outside edits are always picked up.
func (d *dashboard) Init() tea.Cmd {
	return d.load()
}

func (d *dashboard) load() tea.Cmd {
	store := d.deps.Store
	return func() tea.Msg {
		projects, err := project.Scan(store)
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (d *dashboard) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case projectsLoadedMsg:
		if msg.err != nil {
			d.loadErr = msg.err.Error()
			return d, nil
		}
		d.loadErr = ""
		d.projects = msg.projects
		project.SortForDashboard(d.projects)
		d.applyFilter()
		d.restoreCursor()
		return d, nil

	case ProjectsChangedMsg:
		return d, d.load()

	case tea.KeyMsg:
		if d.filtering {
			return d.updateFilter(msg)
		}
		return d.updateTable(msg)
	}
	return d, nil
}

func (d *dashboard) updateFilter(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		d.filtering = false
		d.filter.SetValue("")
		d.filter.Blur()
		d.applyFilter()
		return d, nil
	case "enter":
		d.filtering = false
		d.filter.Blur()
		return d, nil
	}
	var cmd tea.Cmd
	d.filter, cmd = d.filter.Update(msg)
	d.applyFilter()
	return d, cmd
}

func (d *dashboard) updateTable(msg tea.KeyMsg) (screen, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return d, popScreen
	case "j", "down":
		d.moveCursor(1)
	case "k", "up":
		d.moveCursor(-1)
	case "g", "home":
		d.cursor = 0
	case "G", "end":
		d.cursor = len(d.visible) - 1
	case "/":
		d.filtering = true
		return d, d.filter.Focus()
	case "enter":
		if d.cursor >= 0 && d.cursor < len(d.visible) {
			p := d.visible[d.cursor]
			d.saveCursor(p.Name)
			return d, pushScreen(newProjectScreen(d.deps, d.styles, p))
		}
	case "r":
		return d, d.load()
	case "s":
		return d, pushScreen(newScratchpad(d.deps, d.styles))
	case "l":
		return d, pushScreen(newJournalScreen(d.deps, d.styles))
	case "?":
		return d, pushScreen(newGuide(d.deps, d.styles))
	case "t":
		return d, func() tea.Msg { return cycleThemeMsg{} }
	}
	return d, nil
}

func (d *dashboard) moveCursor(delta int) {
	d.cursor += delta
	if d.cursor < 0 {
		d.cursor = 0
	}
	if d.cursor >= len(d.visible) {
		d.cursor = len(d.visible) - 1
	}
}

// applyFilter narrows the visible rows to names containing the filter text
// and clamps the cursor.
func (d *dashboard) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(d.filter.Value()))
	if q == "" {
		d.visible = d.projects
	} else {
		d.visible = nil
		for _, p := range d.projects {
			if strings.Contains(strings.ToLower(p.Name), q) {
				d.visible = append(d.visible, p)
			}
		}
	}
	if d.cursor >= len(d.visible) {
		d.cursor = len(d.visible) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
}

// restoreCursor moves the cursor back to the project selected in the last
// session, when it still exists.
func (d *dashboard) restoreCursor() {
	state := config.LoadState()
	if state.LastProject == "" {
		return
	}
	for i, p := range d.visible {
		if p.Name == state.LastProject {
			d.cursor = i
			return
		}
	}
}

func (d *dashboard) saveCursor(name string) {
	if err := config.SaveState(config.State{LastProject: name}); err != nil {
		d.deps.Logger.Warn("state save failed", "error", err.Error())
	}
}

func (d *dashboard) View() string {
	var b strings.Builder

	title := fmt.Sprintf(" standup · %d projects ", len(d.visible))
	b.WriteString(d.styles.Header.Render(title))
	b.WriteString("\n\n")

	if d.loadErr != "" {
		b.WriteString(d.styles.Error.Render("scan failed: " + d.loadErr))
		b.WriteString("\n")
		return b.String()
	}

	cols := d.deps.Config.DashboardColumns
	b.WriteString(d.renderHeaderRow(cols))
	b.WriteString("\n")

	rows := d.rowWindow()
	if len(d.visible) == 0 {
		b.WriteString(d.styles.Dim.Render("  no projects"))
		b.WriteString("\n")
	}
	for i := d.offset; i < d.offset+rows && i < len(d.visible); i++ {
		b.WriteString(d.renderRow(d.visible[i], cols, i == d.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(d.styles.Stats.Render(d.statsLine()))
	b.WriteString("\n")

	if d.filtering || d.filter.Value() != "" {
		b.WriteString(d.filter.View())
		b.WriteString("\n")
	}
	b.WriteString(d.styles.Help.Render("j/k move  enter open  / filter  s scratch  l journal  t theme  ? guide  q quit"))
	return b.String()
}

// rowWindow sizes the visible slice of rows to the terminal and scrolls the
// offset to keep the cursor in view.
func (d *dashboard) rowWindow() int {
	rows := d.height - 8
	if rows < 3 {
		rows = 3
	}
	if d.cursor < d.offset {
		d.offset = d.cursor
	}
	if d.cursor >= d.offset+rows {
		d.offset = d.cursor - rows + 1
	}
	if d.offset < 0 {
		d.offset = 0
	}
	return rows
}

func (d *dashboard) renderHeaderRow(cols []string) string {
	cells := make([]string, 0, len(cols))
	for _, key := range cols {
		cells = append(cells, pad(ColumnLabel(key), ColumnWidth(key)))
	}
	return "  " + d.styles.ColHeader.Render(strings.Join(cells, " "))
}

func (d *dashboard) renderRow(p project.Project, cols []string, selected bool) string {
	cells := make([]string, 0, len(cols))
	for _, key := range cols {
		text := pad(CellValue(p, key), ColumnWidth(key))
		if selected {
			// Selection style covers the whole row below.
			cells = append(cells, text)
			continue
		}
		cells = append(cells, d.cellStyle(p, key).Render(text))
	}
	row := strings.Join(cells, " ")
	if selected {
		return d.styles.Selected.Render("> " + row)
	}
	return "  " + row
}

// cellStyle picks the style for an unselected cell. An unreadable overview
// is marked as an error, which is not the same row state as a directory
// that simply has no overview yet.
func (d *dashboard) cellStyle(p project.Project, key string) lipgloss.Style {
	switch {
	case p.Err != nil:
		return d.styles.Error
	case !p.HasOverview():
		return d.styles.Dim
	case key == "status":
		return d.styles.StatusStyle(p.Status())
	case key == "priority":
		return d.styles.PriorityStyle(p.Priority())
	default:
		return lipgloss.NewStyle()
	}
}

// statsLine summarizes the list: total, actionable, and per-family counts.
func (d *dashboard) statsLine() string {
	var active, blocked, backlog, bare int
	for _, p := range d.visible {
		if !p.HasOverview() {
			bare++
			continue
		}
		switch strings.ToLower(p.Status()) {
		case "active", "in progress", "running", "ready":
			active++
		case "blocked", "stuck":
			blocked++
		case "backlog", "paused":
			backlog++
		}
	}
	return fmt.Sprintf("%d active  %d blocked  %d parked  %d without overview",
		active, blocked, backlog, bare)
}

// pad fits text into width, truncating with an ellipsis when too long.
func pad(text string, width int) string {
	w := lipgloss.Width(text)
	if w > width {
		return truncate(text, width)
	}
	return text + strings.Repeat(" ", width-w)
}
