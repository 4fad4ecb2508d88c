package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 120 * time.Millisecond

// spinnerFrame selects a frame from the clock so it animates on re-render.
func spinnerFrame(now time.Time) string {
	return spinnerFrames[now.UnixMilli()/spinnerInterval.Milliseconds()%int64(len(spinnerFrames))]
}

// renderLoadingPlaceholder renders an animated loading indicator.
func renderLoadingPlaceholder(now time.Time, width, height int) string {
	text := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true).
		Render(spinnerFrame(now) + " Loading...")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
}

// SpinnerTickMsg triggers a re-render for loading spinners.
type SpinnerTickMsg struct{}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(_ time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// handleSpinnerTick re-schedules spinner ticks while the store is loading.
func (m *DashboardModel) handleSpinnerTick() (tea.Model, tea.Cmd) {
	if m.state.Loading {
		return m, spinnerTick()
	}
	m.spinnerActive = false
	return m, nil
}

// startSpinnerIfNeeded schedules a spinner tick unless one is already
// pending.
func (m *DashboardModel) startSpinnerIfNeeded() tea.Cmd {
	if !m.state.Loading || m.spinnerActive {
		return nil
	}
	m.spinnerActive = true
	return spinnerTick()
}
