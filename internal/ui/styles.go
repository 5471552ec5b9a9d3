package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/diskusage/internal/model"
)

// Colors - cyberpunk/neon palette
var (
	ColorPrimary    = lipgloss.Color("#C084FC") // soft violet
	ColorSuccess    = lipgloss.Color("#39FF14") // neon green
	ColorDanger     = lipgloss.Color("#FF5555") // red
	ColorMuted      = lipgloss.Color("#4A5568") // darker muted
	ColorBorder     = lipgloss.Color("#4A5568") // border
	ColorBackground = lipgloss.Color("#1F1F23") // dark background
	ColorCyan       = lipgloss.Color("#00FFFF") // neon cyan
	ColorText       = lipgloss.Color("#E4E4E7") // default text
)

// categoryColors gives every category a distinct treemap color
var categoryColors = map[model.Category]lipgloss.Color{
	model.Images:    lipgloss.Color("#F472B6"),
	model.Videos:    lipgloss.Color("#C084FC"),
	model.Music:     lipgloss.Color("#5EEAD4"),
	model.Documents: lipgloss.Color("#FACC15"),
	model.Archives:  lipgloss.Color("#FB923C"),
	model.Binaries:  lipgloss.Color("#60A5FA"),
	model.Other:     lipgloss.Color("#71717A"),
}

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Background(ColorBackground).
			Foreground(ColorCyan).
			Bold(true).
			Padding(0, 1)

	TabActive = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true)

	TabInactive = lipgloss.NewStyle().
			Background(lipgloss.Color("#3F3F46")).
			Foreground(lipgloss.Color("#A1A1AA")).
			Padding(0, 1)

	StatsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	PathStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ItemStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	ItemSelected = lipgloss.NewStyle().
			Background(ColorPrimary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	SizeStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	ConfirmStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
)

func categoryStyle(c model.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(categoryColors[c]).
		Foreground(lipgloss.Color("#000000"))
}
