package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// Update handles messages
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampLogScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case catalogLoadedMsg:
		m.catalogLoaded = true
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("tui: catalog load failed")
			m.setError(msg.err.Error())
		}
		m.catalog = msg.catalog
		return m, m.selectView(m.catalog.DefaultView(m.preferredView))

	case storeChangedMsg:
		m.syncFromStore()
		m.clampLogScroll()
		return m, tea.Batch(m.waitForChangeCmd(), m.startSpinnerIfNeeded())

	case TickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		// Skip a beat while the user edits the range so the view under
		// the cursor stays put.
		if m.editing != editNone {
			return m, m.scheduleTick()
		}
		log.Debug().Time("at", msg.at).Msg("tui: auto-refresh")
		return m, tea.Batch(m.refresh(), m.scheduleTick())

	case SpinnerTickMsg:
		return m.handleSpinnerTick()
	}

	if m.editing != editNone {
		var cmd tea.Cmd
		m.rangeInput, cmd = m.rangeInput.Update(msg)
		return m, cmd
	}
	return m, nil
}
