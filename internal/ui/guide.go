package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const guideText = `standup walks a projects tree and shows one row per directory,
driven by each project's _OVERVIEW.md frontmatter.

dashboard
  j/k        move
  enter      open project
  /          filter by name
  s          scratchpad
  l          journal
  t          cycle theme
  r          rescan
  ?          this guide
  q          quit

project
  j/k        move between headings and checkboxes
  space      toggle checkbox
  enter      edit the focused section
  u / p      set status / priority
  n          set next action
  a          add a section
  w          log work to the journal
  e          open the overview in your editor
  esc        back

scratchpad
  free-form markdown, autosaved to ~/.standup/scratchpad.md

journal
  /          search all history
  esc        back

files
  config     ~/.standup/config.yaml
  state      ~/.standup/state.json
  journal    ~/.standup/journal/YYYY-MM-DD.md
`

// guide is a static help screen.
type guide struct {
	deps   Deps
	styles *Styles
	vp     viewport.Model
}

func newGuide(deps Deps, styles *Styles) *guide {
	g := &guide{deps: deps, styles: styles, vp: viewport.New(80, 20)}
	g.vp.SetContent(guideText)
	return g
}

func (g *guide) SetSize(width, height int) {
	g.vp.Width = width
	g.vp.Height = height - 3
	if g.vp.Height < 3 {
		g.vp.Height = 3
	}
}

func (g *guide) Init() tea.Cmd { return nil }

func (g *guide) Update(msg tea.Msg) (screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "?":
			return g, popScreen
		}
		var cmd tea.Cmd
		g.vp, cmd = g.vp.Update(msg)
		return g, cmd
	}
	return g, nil
}

func (g *guide) View() string {
	var b strings.Builder
	b.WriteString(g.styles.Header.Render(" guide "))
	b.WriteString("\n")
	b.WriteString(g.vp.View())
	b.WriteString("\n")
	b.WriteString(g.styles.Help.Render("j/k scroll  esc back"))
	return b.String()
}
