// Package ui implements the terminal interface: a root model that manages a
// stack of screens (dashboard, project detail, scratchpad, journal, guide)
// and the shared theme.
package ui

import (
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marloe/standup/internal/apperr"
	"github.com/marloe/standup/internal/config"
	"github.com/marloe/standup/internal/journal"
	"github.com/marloe/standup/internal/project"
	"github.com/marloe/standup/internal/storage"
)

// Deps carries everything the screens need. The zero value is not usable.
type Deps struct {
	Config  *config.Config
	Store   storage.Provider
	Journal *journal.Service
	Logger  *slog.Logger
}

// ProjectsChangedMsg is sent from outside the program (the tree watcher)
// when project files change on disk. Screens that show project data refresh.
type ProjectsChangedMsg struct{}

// Internal control messages.
type (
	pushScreenMsg  struct{ screen screen }
	popScreenMsg   struct{}
	notifyMsg      struct{ text string }
	clearNoticeMsg struct{}
	cycleThemeMsg  struct{}
)

func pushScreen(s screen) tea.Cmd {
	return func() tea.Msg { return pushScreenMsg{screen: s} }
}

func popScreen() tea.Msg { return popScreenMsg{} }

func notify(text string) tea.Cmd {
	return func() tea.Msg { return notifyMsg{text: text} }
}

// screen is one layer of the UI stack. Update returns the (possibly
// replaced) screen; navigation happens through push/pop messages so screens
// never reach into the stack directly.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// App is the root model.
type App struct {
	deps   Deps
	styles *Styles
	stack  []screen

	width  int
	height int
	notice string
}

// NewApp builds the root model. target selects the initial screen: empty for
// the dashboard, "scratch", "journal", "guide", or a project name resolved
// against the tree (dashboard stays underneath a project screen so esc lands
// somewhere sensible).
func NewApp(deps Deps, target string) *App {
	a := &App{
		deps:   deps,
		styles: NewStyles(deps.Config.Theme),
	}

	switch target {
	case "":
		a.stack = []screen{newDashboard(deps, a.styles)}
	case "scratch":
		a.stack = []screen{newScratchpad(deps, a.styles)}
	case "journal":
		a.stack = []screen{newJournalScreen(deps, a.styles)}
	case "guide":
		a.stack = []screen{newGuide(deps, a.styles)}
	default:
		dash := newDashboard(deps, a.styles)
		a.stack = []screen{dash}
		projects, err := project.Scan(deps.Store)
		if err != nil {
			a.notice = "scan failed: " + err.Error()
			break
		}
		p, err := project.Resolve(projects, target)
		switch {
		case err == nil:
			a.stack = append(a.stack, newProjectScreen(deps, a.styles, p))
		case errors.Is(err, apperr.ErrAmbiguous):
			// Several candidates: show the dashboard narrowed to the query.
			dash.prefill(target)
			a.notice = "ambiguous: " + target
		default:
			a.notice = "no project matching " + target
		}
	}
	return a
}

func (a *App) top() screen { return a.stack[len(a.stack)-1] }

func (a *App) Init() tea.Cmd {
	return a.top().Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		for _, s := range a.stack {
			s.SetSize(a.width, a.height-1)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case pushScreenMsg:
		msg.screen.SetSize(a.width, a.height-1)
		a.stack = append(a.stack, msg.screen)
		return a, msg.screen.Init()

	case popScreenMsg:
		if len(a.stack) == 1 {
			return a, tea.Quit
		}
		a.stack = a.stack[:len(a.stack)-1]
		// The screen underneath may be stale after edits above it.
		return a, a.top().Init()

	case notifyMsg:
		a.notice = msg.text
		return a, tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearNoticeMsg{} })

	case clearNoticeMsg:
		a.notice = ""
		return a, nil

	case cycleThemeMsg:
		next := NextTheme(a.styles.Theme)
		*a.styles = *NewStyles(next)
		a.deps.Config.Theme = next
		if err := config.Save(a.deps.Config); err != nil {
			a.deps.Logger.Warn("theme save failed", slog.String("error", err.Error()))
			return a, notify("theme: " + next + " (not saved)")
		}
		return a, notify("theme: " + next)

	case ProjectsChangedMsg:
		// Broadcast so stacked screens below the top also refresh.
		var cmds []tea.Cmd
		for i, s := range a.stack {
			next, cmd := s.Update(msg)
			a.stack[i] = next
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	next, cmd := a.top().Update(msg)
	a.stack[len(a.stack)-1] = next
	return a, cmd
}

func (a *App) View() string {
	view := a.top().View()
	status := ""
	if a.notice != "" {
		status = a.styles.Notice.Render(a.notice)
	}
	return view + "\n" + status
}
