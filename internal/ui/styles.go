package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marloe/standup/internal/config"
)

// palette is one theme's color set.
type palette struct {
	background lipgloss.Color
	surface    lipgloss.Color
	text       lipgloss.Color
	primary    lipgloss.Color
	secondary  lipgloss.Color
	accent     lipgloss.Color
	dim        lipgloss.Color
}

var palettes = map[string]palette{
	config.ThemeDefault: {
		background: lipgloss.Color("#1a1a2e"),
		surface:    lipgloss.Color("#16213e"),
		text:       lipgloss.Color("#e0e0e0"),
		primary:    lipgloss.Color("#0f3460"),
		secondary:  lipgloss.Color("#533483"),
		accent:     lipgloss.Color("#e94560"),
		dim:        lipgloss.Color("#6B7280"),
	},
	config.ThemeOcean: {
		background: lipgloss.Color("#0a1628"),
		surface:    lipgloss.Color("#0d2137"),
		text:       lipgloss.Color("#c8e6f0"),
		primary:    lipgloss.Color("#1a6b8a"),
		secondary:  lipgloss.Color("#2d9cbc"),
		accent:     lipgloss.Color("#4fd1c5"),
		dim:        lipgloss.Color("#5a7a8a"),
	},
	config.ThemeForest: {
		background: lipgloss.Color("#1a2e1a"),
		surface:    lipgloss.Color("#1e3a1e"),
		text:       lipgloss.Color("#d4e8c8"),
		primary:    lipgloss.Color("#2d5a27"),
		secondary:  lipgloss.Color("#8b6914"),
		accent:     lipgloss.Color("#d4a017"),
		dim:        lipgloss.Color("#6a8a6a"),
	},
}

// Styles holds every lipgloss style the screens share. Cycling the theme
// rebuilds the struct in place so all screens pick it up on the next render.
type Styles struct {
	Theme string

	Header    lipgloss.Style
	Title     lipgloss.Style
	Selected  lipgloss.Style
	Dim       lipgloss.Style
	Accent    lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Notice    lipgloss.Style
	ColHeader lipgloss.Style
	Heading   lipgloss.Style
	Blocker   lipgloss.Style
	Stats     lipgloss.Style
}

// NewStyles builds the style set for a theme name. Unknown names fall back
// to the default palette.
func NewStyles(theme string) *Styles {
	p, ok := palettes[theme]
	if !ok {
		theme = config.ThemeDefault
		p = palettes[theme]
	}
	return &Styles{
		Theme:     theme,
		Header:    lipgloss.NewStyle().Bold(true).Foreground(p.text).Background(p.primary).Padding(0, 1),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(p.text).Background(p.primary),
		Dim:       lipgloss.NewStyle().Foreground(p.dim),
		Accent:    lipgloss.NewStyle().Foreground(p.accent),
		Help:      lipgloss.NewStyle().Foreground(p.dim),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		Notice:    lipgloss.NewStyle().Foreground(p.accent).Italic(true),
		ColHeader: lipgloss.NewStyle().Bold(true).Foreground(p.secondary),
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(p.text),
		Blocker:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		Stats:     lipgloss.NewStyle().Foreground(p.dim),
	}
}

// NextTheme returns the theme after the given one, wrapping around.
func NextTheme(theme string) string {
	order := []string{config.ThemeDefault, config.ThemeOcean, config.ThemeForest}
	for i, t := range order {
		if t == theme {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// Status colors match the original palette per status family.
var statusColors = map[string]lipgloss.Color{
	"active": "#10B981", "running": "#10B981",
	"in progress": "#3B82F6",
	"ready":       "#06B6D4",
	"paused":      "#F59E0B",
	"stuck":       "#D946EF",
	"blocked":     "#EF4444",
}

var priorityColors = map[string]lipgloss.Color{
	"high": "#EF4444", "medium": "#F59E0B", "med": "#F59E0B",
}

// StatusStyle returns a style for a status value; unknown statuses render
// plain, "backlog" dimmed.
func (s *Styles) StatusStyle(status string) lipgloss.Style {
	key := strings.ToLower(status)
	if key == "backlog" {
		return s.Dim
	}
	if c, ok := statusColors[key]; ok {
		return lipgloss.NewStyle().Bold(true).Foreground(c)
	}
	return lipgloss.NewStyle()
}

// PriorityStyle returns a style for a priority value; "low" renders dimmed.
func (s *Styles) PriorityStyle(priority string) lipgloss.Style {
	key := strings.ToLower(priority)
	if key == "low" {
		return s.Dim
	}
	if c, ok := priorityColors[key]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle()
}
