package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/logsearch/internal/humanize"
)

// renderBranding renders the product name with a green to light blue gradient.
func renderBranding() string {
	colors := []string{"#49E209", "#35DD2F", "#21D955", "#0DD47B", "#00D0A1", "#00CAC7"}
	name := []rune("logsearch")

	var b strings.Builder
	for i, r := range name {
		color := colors[min(i*len(colors)/len(name), len(colors)-1)]
		b.WriteString(lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color(color)).
			Bold(true).
			Render(string(r)))
	}
	return b.String()
}

// renderHeader shows the view, the range and the loading state.
func (m *DashboardModel) renderHeader() string {
	base := lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorWhite)

	rng := m.state.Range
	parts := []string{
		"view " + m.state.ViewName,
		fmt.Sprintf("%s → %s UTC", rng.Start.UTC().Format(rangeLayout), rng.End.UTC().Format(rangeLayout)),
		"peak " + humanize.HumanReadable(m.store.MaxDensity()),
	}
	if m.width >= 120 && m.serverURL != "" {
		parts = append(parts, m.serverURL)
	}

	status := ""
	if m.state.Loading {
		status = spinnerFrame(m.now()) + " loading"
	} else if !m.lastUpdateAt.IsZero() {
		status = "updated " + m.lastUpdateAt.Format("15:04:05")
	}

	left := renderBranding() + base.Render("  "+strings.Join(parts, " │ "))
	right := base.Render(status + " ")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncateStyled(left, m.width)
	}
	return left + base.Render(strings.Repeat(" ", gap)) + right
}

// renderStatusLine renders the status/help line at the bottom of the screen
func (m *DashboardModel) renderStatusLine() string {
	base := lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorWhite)

	var section string
	switch m.activeSection {
	case SectionSidebar:
		section = "Views"
	case SectionCharts:
		section = "Charts"
	case SectionLogs:
		section = "Logs"
	}
	left := base.Bold(true).Render(" " + section + " ")

	if e := m.currentError(); e != "" {
		left += errorStyle.Background(ColorNavy).Render(" " + truncate(e, max(10, m.width/2)) + " ")
	}

	hints := "r refresh  n more  s/e range  1-5 presets  [/] view  ? help  q quit"
	switch {
	case m.width < 80:
		hints = "? help  q quit"
	case m.width < 120:
		hints = "r refresh  n more  ? help  q quit"
	}
	right := base.Foreground(ColorGray).Render(hints + " ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncateStyled(left, m.width)
	}
	return left + base.Render(strings.Repeat(" ", gap)) + right
}
