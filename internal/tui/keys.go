package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all dashboard key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit          key.Binding
	ForceQuit     key.Binding
	Help          key.Binding
	Escape        key.Binding
	ToggleSidebar key.Binding

	// Navigation
	NextSection key.Binding
	PrevSection key.Binding
	Up          key.Binding
	Down        key.Binding
	Home        key.Binding
	End         key.Binding
	Enter       key.Binding

	// Views
	NextView key.Binding
	PrevView key.Binding

	// Time range
	EditStart key.Binding
	EditEnd   key.Binding
	Preset    key.Binding

	// Actions
	Refresh      key.Binding
	LoadMore     key.Binding
	IntervalUp   key.Binding
	IntervalDown key.Binding
}

// KeyGroup is a titled set of bindings shown together on the help page.
type KeyGroup struct {
	Title    string
	Bindings []key.Binding
}

// Groups lists the bindings in help-page order.
func (k KeyMap) Groups() []KeyGroup {
	return []KeyGroup{
		{"Global", []key.Binding{k.Quit, k.ForceQuit, k.Help, k.Escape, k.ToggleSidebar}},
		{"Navigation", []key.Binding{k.NextSection, k.PrevSection, k.Up, k.Down, k.Home, k.End, k.Enter}},
		{"Views", []key.Binding{k.NextView, k.PrevView}},
		{"Time range", []key.Binding{k.EditStart, k.EditEnd, k.Preset}},
		{"Actions", []key.Binding{k.Refresh, k.LoadMore, k.IntervalUp, k.IntervalDown}},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?/h", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "cancel/close"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle sidebar"),
		),

		NextSection: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev section"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "go to bottom"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select view"),
		),

		NextView: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev view"),
		),

		EditStart: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "edit range start"),
		),
		EditEnd: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit range end"),
		),
		Preset: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "last 15m/1h/24h/7d/30d"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n/pgdn", "next page of logs"),
		),
		IntervalUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "faster auto-refresh"),
		),
		IntervalDown: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "slower auto-refresh"),
		),
	}
}
