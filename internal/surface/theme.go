package surface

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ystepanoff/pitchcall/signal"
)

// Catppuccin Mocha, the subset the face uses.
const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

var (
	faceStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSurface1).Padding(0, 1)
	buzzStyle    = faceStyle.BorderForeground(colorPeach)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	subTextStyle = lipgloss.NewStyle().Foreground(colorText)
	emptyCell    = lipgloss.NewStyle().Foreground(colorSurface1)
)

// hue maps a signal colour hint onto the palette.
func hue(c signal.Color) lipgloss.Color {
	switch c {
	case signal.ColorFastball:
		return colorRed
	case signal.ColorBreaking:
		return colorBlue
	case signal.ColorOffspeed:
		return colorGreen
	case signal.ColorPlay:
		return colorPeach
	default:
		return colorText
	}
}
