package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/logsearch/internal/logparse"
)

// visibleLogLines is how many rows fit inside the log panel.
func (m *DashboardModel) visibleLogLines() int {
	_, _, logsHeight := m.layoutHeights()
	return max(1, logsHeight-3) // border + title
}

// clampLogScroll keeps the selected row inside the visible window.
func (m *DashboardModel) clampLogScroll() {
	visible := m.visibleLogLines()
	if m.selectedLogIndex < m.logScrollOffset {
		m.logScrollOffset = m.selectedLogIndex
	}
	if m.selectedLogIndex >= m.logScrollOffset+visible {
		m.logScrollOffset = m.selectedLogIndex - visible + 1
	}
	m.logScrollOffset = clamp(m.logScrollOffset, 0, max(0, len(m.rows)-visible))
}

func (m *DashboardModel) renderLogList(width, height int) string {
	inner := max(1, width-2)
	focused := m.activeSection == SectionLogs
	visible := max(1, height-3)

	title := fmt.Sprintf("Logs · %s (%d)", m.state.ViewName, len(m.rows))
	if len(m.rows) > 0 {
		title += "  n: next page"
	}

	var lines []string
	lines = append(lines, titleStyle.Render(truncate(title, inner)))

	switch {
	case len(m.rows) == 0 && m.state.Loading:
		lines = append(lines, renderLoadingPlaceholder(m.now(), inner, visible))
	case len(m.rows) == 0:
		lines = append(lines, lipgloss.Place(inner, visible, lipgloss.Center, lipgloss.Center, helpStyle.Render("No logs in range")))
	default:
		end := min(len(m.rows), m.logScrollOffset+visible)
		for i := m.logScrollOffset; i < end; i++ {
			lines = append(lines, renderLogRow(m.rows[i], inner, focused && i == m.selectedLogIndex))
		}
	}

	return panelStyle(focused).
		Width(inner).
		Height(max(1, height-2)).
		MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

// renderLogRow renders "time level message" on one line.
func renderLogRow(row logparse.Row, width int, selected bool) string {
	ts := row.RawTime
	if !row.Time.IsZero() {
		ts = row.Time.Format("01-02 15:04:05.000")
	}
	ts = padRight(truncate(ts, 18), 18)
	level := padRight(truncate(row.Level, 5), 5)
	msg := truncate(row.Message(), max(1, width-len(ts)-len(level)-2))

	levelStyle := lipgloss.NewStyle().Foreground(getSeverityColor(row.Level)).Bold(true)
	line := helpStyle.Render(ts) + " " + levelStyle.Render(level) + " " + msg
	if selected {
		return lipgloss.NewStyle().Background(ColorNavy).Width(width).Render(line)
	}
	return line
}
