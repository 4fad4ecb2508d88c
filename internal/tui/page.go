package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	DashboardPageID = "dashboard"
	HelpPageID      = "help"
)

// Page represents a top-level screen in the TUI (dashboard, help).
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
	Params interface{}
}

// DashboardPage adapts DashboardModel to the Page interface.
type DashboardPage struct {
	model *DashboardModel
}

// NewDashboardPage wraps a dashboard model.
func NewDashboardPage(m *DashboardModel) *DashboardPage {
	return &DashboardPage{model: m}
}

func (p *DashboardPage) ID() string    { return DashboardPageID }
func (p *DashboardPage) Init() tea.Cmd { return p.model.Init() }

func (p *DashboardPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	_, cmd := p.model.Update(msg)
	nav := p.model.nav
	p.model.nav = nil
	return cmd, nav
}

func (p *DashboardPage) View(width, height int) string {
	p.model.width, p.model.height = width, height
	return p.model.View()
}

// HelpPage lists every key binding.
type HelpPage struct {
	keys KeyMap
}

// NewHelpPage creates the help screen for the given bindings.
func NewHelpPage(keys KeyMap) *HelpPage {
	return &HelpPage{keys: keys}
}

func (p *HelpPage) ID() string    { return HelpPageID }
func (p *HelpPage) Init() tea.Cmd { return nil }

func (p *HelpPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches(km, p.keys.ForceQuit):
		return tea.Quit, nil
	case key.Matches(km, p.keys.Help), key.Matches(km, p.keys.Escape), key.Matches(km, p.keys.Quit):
		return nil, &PageNav{PageID: DashboardPageID}
	}
	return nil, nil
}

func (p *HelpPage) View(width, height int) string {
	var b strings.Builder
	for _, group := range p.keys.Groups() {
		b.WriteString(titleStyle.Render(group.Title))
		b.WriteString("\n")
		for _, binding := range group.Bindings {
			h := binding.Help()
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(padRight(h.Key, 12)))
			b.WriteString(helpStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("esc/?: back"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(1, 2).
		Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
