// Package theme maps the engine's highlight groups to lipgloss styles for
// the bundled TUI. The engine itself never styles anything; it only names
// groups on cells.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette, loosely the gui colors of classic sidebar plugins.
var (
	Blue      = lipgloss.Color("#519aba")
	Aqua      = lipgloss.Color("#3affdb")
	Green     = lipgloss.Color("#8dc149")
	Yellow    = lipgloss.Color("#cbcb41")
	Orange    = lipgloss.Color("#e37933")
	Red       = lipgloss.Color("#cc3e44")
	Pink      = lipgloss.Color("#f55385")
	Purple    = lipgloss.Color("#a074c4")
	Grey      = lipgloss.Color("#999999")
	White     = lipgloss.Color("#ffffff")
	GitYellow = lipgloss.Color("#fabd2f")
	GitGreen  = lipgloss.Color("#b8bb26")
	GitRed    = lipgloss.Color("#fb4934")
)

var groupStyles = map[string]lipgloss.Style{
	"directory": lipgloss.NewStyle().Foreground(Blue).Bold(true),
	"symlink":   lipgloss.NewStyle().Foreground(Aqua),
	"root":      lipgloss.NewStyle().Foreground(Purple).Bold(true),
	"selected":  lipgloss.NewStyle().Foreground(GitGreen),
	"readonly":  lipgloss.NewStyle().Foreground(Red),
	"size":      lipgloss.NewStyle().Foreground(Grey),
	"time":      lipgloss.NewStyle().Foreground(Grey),

	"git_untracked": lipgloss.NewStyle().Foreground(White),
	"git_modified":  lipgloss.NewStyle().Foreground(GitYellow),
	"git_staged":    lipgloss.NewStyle().Foreground(GitGreen),
	"git_renamed":   lipgloss.NewStyle().Foreground(GitYellow),
	"git_ignored":   lipgloss.NewStyle().Foreground(Grey),
	"git_unmerged":  lipgloss.NewStyle().Foreground(GitRed),
	"git_deleted":   lipgloss.NewStyle().Foreground(GitRed),
	"git_unknown":   lipgloss.NewStyle().Foreground(White),

	"icon_blue":   lipgloss.NewStyle().Foreground(Blue),
	"icon_aqua":   lipgloss.NewStyle().Foreground(Aqua),
	"icon_green":  lipgloss.NewStyle().Foreground(Green),
	"icon_yellow": lipgloss.NewStyle().Foreground(Yellow),
	"icon_orange": lipgloss.NewStyle().Foreground(Orange),
	"icon_red":    lipgloss.NewStyle().Foreground(Red),
	"icon_pink":   lipgloss.NewStyle().Foreground(Pink),
	"icon_purple": lipgloss.NewStyle().Foreground(Purple),
	"icon_grey":   lipgloss.NewStyle().Foreground(Grey),
}

var plain = lipgloss.NewStyle()

// CursorLine styles the row under the cursor.
var CursorLine = lipgloss.NewStyle().Background(lipgloss.Color("#2d1b4e"))

// Style returns the style for a highlight group; unknown groups render
// plain.
func Style(group string) lipgloss.Style {
	if s, ok := groupStyles[group]; ok {
		return s
	}
	return plain
}
