package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/logsearch/internal/timerange"
)

const rangeLayout = "2006-01-02 15:04:05"

// beginRangeEdit focuses the input on one bound, prefilled with its value.
func (m *DashboardModel) beginRangeEdit(field rangeField) tea.Cmd {
	times := m.store.TimeRange()
	current := times.Start()
	if field == editEnd {
		current = times.End()
	}
	m.editing = field
	m.rangeInput.SetValue(current.UTC().Format(time.RFC3339))
	m.rangeInput.CursorEnd()
	m.rangeInput.Focus()
	return textinput.Blink
}

func (m *DashboardModel) endRangeEdit() {
	m.editing = editNone
	m.rangeInput.Blur()
	m.rangeInput.SetValue("")
}

// handleRangeInput owns the keyboard while a bound is being edited.
func (m *DashboardModel) handleRangeInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.endRangeEdit()
		return m, nil

	case msg.Type == tea.KeyEnter:
		value := m.rangeInput.Value()
		field := m.editing
		t, err := timerange.ParseInstant(value, m.now().UTC())
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.endRangeEdit()
		times := m.store.TimeRange()
		if field == editStart {
			times.SetStart(t)
		} else {
			times.SetEnd(t)
		}
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.rangeInput, cmd = m.rangeInput.Update(msg)
	return m, cmd
}

// rangeLabel is the prompt shown before the input.
func (m *DashboardModel) rangeLabel() string {
	if m.editing == editEnd {
		return "End"
	}
	return "Start"
}
