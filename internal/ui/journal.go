package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marloe/standup/internal/journal"
)

type journalEntriesMsg struct {
	entries []journal.Entry
	err     error
}

// journalScreen lists recent work-log entries and searches them.
type journalScreen struct {
	deps   Deps
	styles *Styles

	entries []journal.Entry
	loadErr string
	vp      viewport.Model

	search    textinput.Model
	searching bool

	width  int
	height int
}

func newJournalScreen(deps Deps, styles *Styles) *journalScreen {
	ti := textinput.New()
	ti.Placeholder = "search the journal"
	ti.Prompt = "/"
	return &journalScreen{
		deps:   deps,
		styles: styles,
		search: ti,
		vp:     viewport.New(80, 20),
	}
}

func (j *journalScreen) SetSize(width, height int) {
	j.width, j.height = width, height
	j.vp.Width = width
	j.vp.Height = height - 5
	if j.vp.Height < 3 {
		j.vp.Height = 3
	}
}

func (j *journalScreen) Init() tea.Cmd {
	return j.load("")
}

func (j *journalScreen) load(query string) tea.Cmd {
	svc := j.deps.Journal
	return func() tea.Msg {
		var (
			entries []journal.Entry
			err     error
		)
		if query == "" {
			entries, err = svc.Recent(50)
		} else {
			entries, err = svc.Search(query)
		}
		return journalEntriesMsg{entries: entries, err: err}
	}
}

func (j *journalScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case journalEntriesMsg:
		if msg.err != nil {
			j.loadErr = msg.err.Error()
			return j, nil
		}
		j.loadErr = ""
		j.entries = msg.entries
		j.vp.SetContent(j.renderEntries())
		j.vp.GotoTop()
		return j, nil

	case tea.KeyMsg:
		if j.searching {
			switch msg.String() {
			case "esc":
				j.searching = false
				j.search.SetValue("")
				j.search.Blur()
				return j, j.load("")
			case "enter":
				j.searching = false
				j.search.Blur()
				return j, j.load(strings.TrimSpace(j.search.Value()))
			}
			var cmd tea.Cmd
			j.search, cmd = j.search.Update(msg)
			return j, cmd
		}

		switch msg.String() {
		case "q", "esc":
			return j, popScreen
		case "/":
			j.searching = true
			return j, j.search.Focus()
		case "r":
			return j, j.load(strings.TrimSpace(j.search.Value()))
		}
		var cmd tea.Cmd
		j.vp, cmd = j.vp.Update(msg)
		return j, cmd
	}
	return j, nil
}

func (j *journalScreen) renderEntries() string {
	if len(j.entries) == 0 {
		return j.styles.Dim.Render("  nothing logged yet")
	}
	var b strings.Builder
	lastDate := ""
	for _, e := range j.entries {
		if e.Date != lastDate {
			if lastDate != "" {
				b.WriteString("\n")
			}
			b.WriteString(j.styles.Title.Render(e.Date))
			b.WriteString("\n")
			lastDate = e.Date
		}
		b.WriteString(j.styles.Accent.Render("  " + e.Time + " " + journal.EntrySep + " " + e.Project))
		b.WriteString("\n")
		for _, line := range strings.Split(e.Note, "\n") {
			b.WriteString("    " + line + "\n")
		}
	}
	return b.String()
}

func (j *journalScreen) View() string {
	var b strings.Builder
	b.WriteString(j.styles.Header.Render(" journal "))
	b.WriteString("\n")
	if j.loadErr != "" {
		b.WriteString(j.styles.Error.Render("journal: " + j.loadErr))
		b.WriteString("\n")
	}
	b.WriteString(j.vp.View())
	b.WriteString("\n")
	if j.searching || j.search.Value() != "" {
		b.WriteString(j.search.View())
		b.WriteString("\n")
	}
	b.WriteString(j.styles.Help.Render("/ search  r refresh  esc back"))
	return b.String()
}
