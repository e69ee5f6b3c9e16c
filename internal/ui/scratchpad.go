package ui

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marloe/standup/internal/config"
	"github.com/marloe/standup/internal/storage"
)

// scratchTemplate seeds a fresh scratchpad file.
const scratchTemplate = `# Scratchpad

- [ ]
`

const autosaveInterval = 2 * time.Second

type autosaveTickMsg struct{}

// scratchpad is a free-form markdown buffer persisted to one file in the
// standup home. Saves happen on a timer and on exit, never on a keypress.
type scratchpad struct {
	deps   Deps
	styles *Styles

	area  textarea.Model
	dirty bool
	err   string

	width  int
	height int
}

func newScratchpad(deps Deps, styles *Styles) *scratchpad {
	ta := textarea.New()
	ta.CharLimit = 0
	ta.Placeholder = "anything goes"

	content := scratchTemplate
	if data, err := os.ReadFile(config.ScratchpadPath()); err == nil {
		content = string(data)
	}
	ta.SetValue(content)
	ta.Focus()

	return &scratchpad{deps: deps, styles: styles, area: ta}
}

func (s *scratchpad) SetSize(width, height int) {
	s.width, s.height = width, height
	s.area.SetWidth(width - 2)
	s.area.SetHeight(height - 4)
}

func (s *scratchpad) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, autosaveTick())
}

func autosaveTick() tea.Cmd {
	return tea.Tick(autosaveInterval, func(time.Time) tea.Msg { return autosaveTickMsg{} })
}

func (s *scratchpad) save() {
	if err := storage.WriteFileAtomic(config.ScratchpadPath(), []byte(s.area.Value())); err != nil {
		s.err = "save failed: " + err.Error()
		s.deps.Logger.Error("scratchpad save failed", "error", err.Error())
		return
	}
	s.err = ""
	s.dirty = false
}

func (s *scratchpad) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case autosaveTickMsg:
		if s.dirty {
			s.save()
		}
		return s, autosaveTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			s.save()
			return s, popScreen
		case "ctrl+s":
			s.save()
			return s, notify("saved")
		}
		var cmd tea.Cmd
		before := s.area.Value()
		s.area, cmd = s.area.Update(msg)
		if s.area.Value() != before {
			s.dirty = true
		}
		return s, cmd
	}
	return s, nil
}

func (s *scratchpad) View() string {
	var b strings.Builder
	b.WriteString(s.styles.Header.Render(" scratchpad "))
	if s.dirty {
		b.WriteString(s.styles.Dim.Render(" *"))
	}
	b.WriteString("\n")
	b.WriteString(s.area.View())
	b.WriteString("\n")
	if s.err != "" {
		b.WriteString(s.styles.Error.Render(s.err))
		b.WriteString("\n")
	}
	b.WriteString(s.styles.Help.Render("ctrl+s save  esc back"))
	return b.String()
}
