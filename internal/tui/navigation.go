package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/logsearch/internal/timerange"
)

// handleKeyPress dispatches key events: the range editor first, then
// global dashboard shortcuts.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.Close()
		return m, tea.Quit
	}

	if m.editing != editNone {
		return m.handleRangeInput(msg)
	}

	return m.handleGlobalKeys(msg)
}

// handleGlobalKeys handles dashboard-level shortcuts.
func (m *DashboardModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	switch {
	case key.Matches(msg, k.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.nav = &PageNav{PageID: HelpPageID}
		return m, nil

	case key.Matches(msg, k.Escape):
		m.lastError = ""
		return m, nil

	case key.Matches(msg, k.ToggleSidebar):
		m.sidebarVisible = !m.sidebarVisible
		if !m.sidebarVisible && m.activeSection == SectionSidebar {
			m.activeSection = SectionLogs
		}
		return m, nil

	case key.Matches(msg, k.NextSection):
		m.cycleSection(1)
		return m, nil

	case key.Matches(msg, k.PrevSection):
		m.cycleSection(-1)
		return m, nil

	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, k.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, k.Home):
		m.selectedLogIndex = 0
		m.clampLogScroll()
		return m, nil

	case key.Matches(msg, k.End):
		m.selectedLogIndex = max(0, len(m.rows)-1)
		m.clampLogScroll()
		return m, nil

	case key.Matches(msg, k.Enter):
		if m.activeSection == SectionSidebar && m.sidebarCursor < len(m.catalog.Views) {
			return m, m.selectView(m.catalog.Views[m.sidebarCursor])
		}
		return m, nil

	case key.Matches(msg, k.NextView):
		return m, m.stepView(1)

	case key.Matches(msg, k.PrevView):
		return m, m.stepView(-1)

	case key.Matches(msg, k.EditStart):
		return m, m.beginRangeEdit(editStart)

	case key.Matches(msg, k.EditEnd):
		return m, m.beginRangeEdit(editEnd)

	case key.Matches(msg, k.Preset):
		idx, err := strconv.Atoi(msg.String())
		if err != nil || idx < 1 || idx > len(timerange.Presets) {
			return m, nil
		}
		return m, m.applyPreset(timerange.Presets[idx-1])

	case key.Matches(msg, k.Refresh):
		return m, m.refresh()

	case key.Matches(msg, k.LoadMore):
		m.store.LoadMoreLogs(m.ctx)
		return m, nil

	case key.Matches(msg, k.IntervalUp):
		return m, m.stepInterval(-1)

	case key.Matches(msg, k.IntervalDown):
		return m, m.stepInterval(1)
	}

	return m, nil
}

func (m *DashboardModel) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	delta := 0
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		delta = -1
	case tea.MouseButtonWheelDown:
		delta = 1
	default:
		return m, nil
	}
	if m.reverseScrollWheel {
		delta = -delta
	}
	m.selectedLogIndex = clamp(m.selectedLogIndex+delta*3, 0, max(0, len(m.rows)-1))
	m.clampLogScroll()
	return m, nil
}

func (m *DashboardModel) cycleSection(delta int) {
	next := (int(m.activeSection) + delta + sectionCount) % sectionCount
	if Section(next) == SectionSidebar && !m.sidebarVisible {
		next = (next + delta + sectionCount) % sectionCount
	}
	m.activeSection = Section(next)
}

func (m *DashboardModel) moveCursor(delta int) {
	switch m.activeSection {
	case SectionSidebar:
		if n := len(m.catalog.Views); n > 0 {
			m.sidebarCursor = clamp(m.sidebarCursor+delta, 0, n-1)
		}
	case SectionLogs:
		m.selectedLogIndex = clamp(m.selectedLogIndex+delta, 0, max(0, len(m.rows)-1))
		m.clampLogScroll()
	}
}

// stepView switches to the neighbouring view in the catalog, wrapping.
func (m *DashboardModel) stepView(delta int) tea.Cmd {
	n := len(m.catalog.Views)
	if n == 0 {
		return nil
	}
	idx := m.catalog.Index(m.state.ViewName)
	if idx < 0 {
		idx = 0
	} else {
		idx = (idx + delta + n) % n
	}
	return m.selectView(m.catalog.Views[idx])
}

func (m *DashboardModel) applyPreset(p timerange.Preset) tea.Cmd {
	r := timerange.Last(p.Span, m.now().UTC())
	m.store.TimeRange().Set(r.Start, r.End)
	return m.refresh()
}

// stepInterval moves through the auto-refresh intervals and restarts the
// tick chain.
func (m *DashboardModel) stepInterval(delta int) tea.Cmd {
	next := clamp(m.currentIntervalIdx+delta, 0, len(m.availableIntervals)-1)
	if next == m.currentIntervalIdx {
		return nil
	}
	m.currentIntervalIdx = next
	m.tickGen++
	return m.scheduleTick()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
