package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/AG66666678/lookcc/internal/core"
)

// ─── Color Palette (Catppuccin Mocha) ───────────────────────────────────────

var (
	colorSurface1 = lipgloss.Color("#45475A") // lighter surface
	colorText     = lipgloss.Color("#CDD6F4") // primary text
	colorSubtext  = lipgloss.Color("#A6ADC8") // secondary text
	colorDim      = lipgloss.Color("#585B70") // muted, borders

	colorAccent   = lipgloss.Color("#CBA6F7") // mauve, brand accent
	colorBlue     = lipgloss.Color("#89B4FA")
	colorSapphire = lipgloss.Color("#74C7EC")
	colorGreen    = lipgloss.Color("#A6E3A1")
	colorYellow   = lipgloss.Color("#F9E2AF")
	colorRed      = lipgloss.Color("#F38BA8")
	colorTeal     = lipgloss.Color("#94E2D5")
	colorLavender = lipgloss.Color("#B4BEFE")

	// Semantic aliases
	colorOK       = colorGreen
	colorWarn     = colorYellow
	colorCrit     = colorRed
	colorBorder   = colorDim
	colorSelected = colorAccent
)

// ─── Reusable Styles ────────────────────────────────────────────────────────

var (
	headerBrandStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorLavender)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorSapphire).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorSubtext)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	tealStyle = lipgloss.NewStyle().
			Foreground(colorTeal)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	gaugeTrackStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	tileNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	tileNameSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	tileSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSelected).
				Padding(0, 1)
)

// backendColor maps each gateway schema to its accent.
func backendColor(bt core.BackendType) lipgloss.Color {
	switch bt {
	case core.BackendNewAPI:
		return colorBlue
	case core.BackendOneAPI:
		return colorTeal
	case core.BackendOpenRouter:
		return colorAccent
	default:
		return colorDim
	}
}

// backendBadge renders the schema name as a colored pill.
func backendBadge(bt core.BackendType) string {
	return lipgloss.NewStyle().
		Foreground(backendColor(bt)).
		Bold(true).
		Render(string(bt))
}
