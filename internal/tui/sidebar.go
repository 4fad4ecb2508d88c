package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/logsearch/internal/timerange"
)

const sidebarWidth = 22

// renderSidebar lists the catalog's views, the range presets and the
// auto-refresh setting.
func (m *DashboardModel) renderSidebar(height int) string {
	inner := sidebarWidth - 2
	focused := m.activeSection == SectionSidebar

	var b strings.Builder
	b.WriteString(titleStyle.Render("Views"))
	b.WriteString("\n")

	switch {
	case !m.catalogLoaded:
		b.WriteString(helpStyle.Render(spinnerFrame(m.now()) + " loading"))
		b.WriteString("\n")
	case len(m.catalog.Views) == 0:
		b.WriteString(helpStyle.Render("(none)"))
		b.WriteString("\n")
	}

	for i, v := range m.catalog.Views {
		marker := "  "
		if focused && i == m.sidebarCursor {
			marker = "▸ "
		}
		style := lipgloss.NewStyle().Foreground(ColorWhite)
		if v.Name == m.state.ViewName {
			style = style.Foreground(ColorBlue).Bold(true)
		}
		b.WriteString(marker + style.Render(truncate(v.Name, inner-2)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Range"))
	b.WriteString("\n")
	for i, p := range timerange.Presets {
		b.WriteString(helpStyle.Render(fmt.Sprintf("%d", i+1)) + " last " + p.Label)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Auto-refresh"))
	b.WriteString("\n")
	b.WriteString(m.intervalLabel())

	return panelStyle(focused).
		Width(inner).
		Height(max(1, height-2)).
		MaxHeight(height).
		Render(b.String())
}

func (m *DashboardModel) intervalLabel() string {
	d := m.refreshInterval()
	if d <= 0 {
		return "off"
	}
	return d.String()
}
