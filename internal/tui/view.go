package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	minWidth         = 60
	minHeight        = 16
	chartPanelHeight = 8
)

// contentWidth returns the width available for main content, accounting for sidebar.
func (m *DashboardModel) contentWidth() int {
	if m.sidebarVisible {
		return max(40, m.width-sidebarWidth)
	}
	return m.width
}

// layoutHeights splits the body between the chart grid and the log list so
// rendering and scrolling share a single source of truth.
func (m *DashboardModel) layoutHeights() (bodyHeight, chartsHeight, logsHeight int) {
	bodyHeight = m.height - 2 // header + status line
	if m.editing != editNone {
		bodyHeight--
	}
	rows := m.chartRowCount(m.contentWidth())
	if rows == 0 {
		return bodyHeight, 0, bodyHeight
	}
	chartsHeight = min(rows*chartPanelHeight, bodyHeight*55/100)
	return bodyHeight, chartsHeight, bodyHeight - chartsHeight
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing dashboard..."
	}
	if m.height < minHeight || m.width < minWidth {
		return "Terminal too small. Resize to at least 60x16."
	}
	return m.renderDashboard()
}

// renderDashboard renders the main dashboard layout
func (m *DashboardModel) renderDashboard() string {
	contentWidth := m.contentWidth()
	bodyHeight, chartsHeight, logsHeight := m.layoutHeights()

	var sections []string
	if chartsHeight > 0 {
		sections = append(sections, m.renderChartsGrid(contentWidth, chartsHeight))
	}
	if logsHeight > 0 {
		sections = append(sections, m.renderLogList(contentWidth, logsHeight))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	body := content
	if m.sidebarVisible {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(bodyHeight), content)
	}

	rows := []string{m.renderHeader(), body}
	if m.editing != editNone {
		rows = append(rows, m.renderRangeInput())
	}
	rows = append(rows, m.renderStatusLine())

	return lipgloss.NewStyle().
		MaxWidth(m.width).
		MaxHeight(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *DashboardModel) renderRangeInput() string {
	label := keyStyle.Render(m.rangeLabel() + ": ")
	hint := helpStyle.Render("  enter: apply  esc: cancel")
	return truncateStyled(label+m.rangeInput.View()+hint, m.width)
}

// truncateStyled clamps an already styled line to width cells.
func truncateStyled(s string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
