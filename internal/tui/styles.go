package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorNavy    = lipgloss.Color("17")
	ColorBlue    = lipgloss.Color("39")
	ColorGreen   = lipgloss.Color("42")
	ColorOrange  = lipgloss.Color("208")
	ColorRed     = lipgloss.Color("196")
	ColorMagenta = lipgloss.Color("201")
	ColorGray    = lipgloss.Color("244")
	ColorWhite   = lipgloss.Color("15")
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(ColorGray)
	keyStyle   = lipgloss.NewStyle().Foreground(ColorWhite).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(ColorRed)
)

// panelStyle is the border every dashboard panel shares. Focused panels get
// the accent color.
func panelStyle(focused bool) lipgloss.Style {
	border := ColorGray
	if focused {
		border = ColorBlue
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// getSeverityColor returns the appropriate color for a severity level
func getSeverityColor(severity string) lipgloss.Color {
	switch severity {
	case "FATAL", "CRITICAL":
		return ColorMagenta
	case "ERROR":
		return ColorRed
	case "WARN":
		return ColorOrange
	case "INFO":
		return ColorBlue
	case "DEBUG", "TRACE":
		return ColorGray
	default:
		return ColorWhite
	}
}

// truncate cuts s to at most width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
