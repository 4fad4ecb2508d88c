package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/logsearch/internal/catalog"
	"github.com/tinytelemetry/logsearch/internal/logparse"
	"github.com/tinytelemetry/logsearch/internal/logstore"
	"github.com/tinytelemetry/logsearch/internal/model"
)

// Section represents different dashboard sections
type Section int

const (
	SectionSidebar Section = iota // view list
	SectionCharts                 // chart grid
	SectionLogs                   // log list
)

const sectionCount = 3

// rangeField says which bound the range input is editing.
type rangeField int

const (
	editNone rangeField = iota
	editStart
	editEnd
)

// Config holds the dashboard's startup options.
type Config struct {
	PreferredView      string
	RefreshInterval    time.Duration // 0 disables auto-refresh
	ReverseScrollWheel bool
	ServerURL          string // shown in the header only
}

// SidebarState holds the view list state.
type SidebarState struct {
	catalog        catalog.Catalog
	catalogLoaded  bool
	sidebarCursor  int
	sidebarVisible bool
}

// RangeEditState holds the inline start/end editor.
type RangeEditState struct {
	rangeInput textinput.Model
	editing    rangeField
}

// LogViewState holds decoded log rows and scroll/selection state.
type LogViewState struct {
	rows             []logparse.Row
	selectedLogIndex int
	logScrollOffset  int
}

// DashboardModel represents the main TUI model.
// Sub-state is organized into embedded structs for readability.
type DashboardModel struct {
	SidebarState
	RangeEditState
	LogViewState

	// Window dimensions
	width  int
	height int

	keys          KeyMap
	activeSection Section

	ctx    context.Context
	cancel context.CancelFunc
	now    func() time.Time

	store         *logstore.Store
	catalogReader model.CatalogReader
	serverURL     string
	preferredView string

	// Last store snapshot, refreshed on every store change.
	state    logstore.State
	graphics []string

	// Auto-refresh management. Ticks carry a generation so that changing
	// the interval orphans the previous tick chain.
	availableIntervals []time.Duration
	currentIntervalIdx int
	tickGen            int
	reverseScrollWheel bool

	spinnerActive bool
	lastUpdateAt  time.Time

	// Last error for status line display (auto-clears after 30s).
	lastError   string
	lastErrorAt time.Time

	// Page switch requested by the last Update, consumed by DashboardPage.
	nav *PageNav
}

// catalogLoadedMsg carries the result of the startup catalog load.
type catalogLoadedMsg struct {
	catalog catalog.Catalog
	err     error
}

// storeChangedMsg is sent whenever the store applies new state.
type storeChangedMsg struct{}

// TickMsg drives auto-refresh.
type TickMsg struct {
	gen int
	at  time.Time
}

// NewDashboardModel creates a dashboard over store, loading views from
// reader on Init.
func NewDashboardModel(store *logstore.Store, reader model.CatalogReader, cfg Config) *DashboardModel {
	ctx, cancel := context.WithCancel(context.Background())

	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 64
	input.Width = 40
	input.Placeholder = "2024-03-24T17:53:44Z, 1711302824000, now, Mar 24 2024 17:53"

	m := &DashboardModel{
		SidebarState:   SidebarState{sidebarVisible: true},
		RangeEditState: RangeEditState{rangeInput: input},
		keys:           DefaultKeyMap(),
		activeSection:  SectionLogs,
		ctx:            ctx,
		cancel:         cancel,
		now:            time.Now,
		store:          store,
		catalogReader:  reader,
		serverURL:      cfg.ServerURL,
		preferredView:  cfg.PreferredView,
		availableIntervals: []time.Duration{
			0,
			5 * time.Second,
			10 * time.Second,
			30 * time.Second,
			time.Minute,
			5 * time.Minute,
		},
		reverseScrollWheel: cfg.ReverseScrollWheel,
	}
	m.currentIntervalIdx = m.intervalIndex(cfg.RefreshInterval)
	m.syncFromStore()
	return m
}

// intervalIndex finds d among the available intervals, inserting it in
// order when it is not one of them.
func (m *DashboardModel) intervalIndex(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	for i, v := range m.availableIntervals {
		if v == d {
			return i
		}
		if v > d {
			m.availableIntervals = append(m.availableIntervals[:i], append([]time.Duration{d}, m.availableIntervals[i:]...)...)
			return i
		}
	}
	m.availableIntervals = append(m.availableIntervals, d)
	return len(m.availableIntervals) - 1
}

// Keys returns the dashboard's key bindings.
func (m *DashboardModel) Keys() KeyMap { return m.keys }

// refreshInterval is the current auto-refresh period, 0 when off.
func (m *DashboardModel) refreshInterval() time.Duration {
	return m.availableIntervals[m.currentIntervalIdx]
}

// Close cancels in-flight requests.
func (m *DashboardModel) Close() {
	m.cancel()
}

func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.loadCatalogCmd(),
		m.waitForChangeCmd(),
		m.scheduleTick(),
		textinput.Blink,
	)
}

func (m *DashboardModel) loadCatalogCmd() tea.Cmd {
	ctx, reader := m.ctx, m.catalogReader
	return func() tea.Msg {
		cat, err := catalog.Load(ctx, reader)
		return catalogLoadedMsg{catalog: cat, err: err}
	}
}

// waitForChangeCmd blocks until the store signals a change. It is re-armed
// after every storeChangedMsg.
func (m *DashboardModel) waitForChangeCmd() tea.Cmd {
	ctx, changes := m.ctx, m.store.Changes()
	return func() tea.Msg {
		select {
		case <-changes:
			return storeChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// scheduleTick starts a new auto-refresh chain, or nothing when disabled.
func (m *DashboardModel) scheduleTick() tea.Cmd {
	d := m.refreshInterval()
	if d <= 0 {
		return nil
	}
	gen := m.tickGen
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{gen: gen, at: t}
	})
}

// syncFromStore copies the store's state into the model for rendering.
func (m *DashboardModel) syncFromStore() {
	m.state = m.store.Snapshot()
	m.graphics = m.store.Graphics()
	m.rows = logparse.ParseRows(m.state.Logs)
	if m.selectedLogIndex >= len(m.rows) {
		m.selectedLogIndex = max(0, len(m.rows)-1)
	}
}

// refresh fires a store update for the current view and range.
func (m *DashboardModel) refresh() tea.Cmd {
	m.store.Update(m.ctx)
	m.lastUpdateAt = m.now()
	m.selectedLogIndex = 0
	m.logScrollOffset = 0
	m.syncFromStore()
	return m.startSpinnerIfNeeded()
}

// selectView makes v current and refreshes.
func (m *DashboardModel) selectView(v model.View) tea.Cmd {
	m.store.SetView(v)
	if idx := m.catalog.Index(v.Name); idx >= 0 {
		m.sidebarCursor = idx
	}
	return m.refresh()
}

func (m *DashboardModel) setError(msg string) {
	m.lastError = msg
	m.lastErrorAt = m.now()
}

// currentError returns the last error while it is still fresh.
func (m *DashboardModel) currentError() string {
	if m.lastError == "" || m.now().Sub(m.lastErrorAt) > 30*time.Second {
		return ""
	}
	return m.lastError
}
