package tui

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/logsearch/internal/humanize"
	"github.com/tinytelemetry/logsearch/internal/model"
)

func (m *DashboardModel) chartColumnCount(contentWidth int) int {
	if len(m.graphics) <= 1 || contentWidth < 100 {
		return 1
	}
	return 2
}

func (m *DashboardModel) chartRowCount(contentWidth int) int {
	cols := m.chartColumnCount(contentWidth)
	return (len(m.graphics) + cols - 1) / cols
}

// chartRowHeights splits total between the chart rows, keeping every row at
// least four lines tall.
func (m *DashboardModel) chartRowHeights(contentWidth, total int) []int {
	rows := m.chartRowCount(contentWidth)
	if rows == 0 {
		return nil
	}
	heights := make([]int, rows)
	remaining := total
	for i := range heights {
		heights[i] = max(4, remaining/(rows-i))
		remaining -= heights[i]
	}
	return heights
}

// renderChartsGrid renders one panel per entry of the store's graphics list.
func (m *DashboardModel) renderChartsGrid(contentWidth, height int) string {
	cols := m.chartColumnCount(contentWidth)
	panelWidth := contentWidth
	if cols > 1 {
		panelWidth = contentWidth / cols
	}

	var rows []string
	for row, rowHeight := range m.chartRowHeights(contentWidth, height) {
		var panels []string
		for col := 0; col < cols; col++ {
			idx := row*cols + col
			if idx >= len(m.graphics) {
				break
			}
			w := panelWidth
			if col == cols-1 {
				w = contentWidth - panelWidth*(cols-1)
			}
			panels = append(panels, m.renderChartPanel(m.graphics[idx], w, rowHeight))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// chartTitle names the series with its humanized peak and latest value.
func chartTitle(name string, data model.Series) string {
	title := name + "  max " + humanize.HumanReadable(data.Max())
	if last, ok := data.Last(); ok {
		title += "  last " + humanize.HumanReadable(last)
	}
	return title
}

func (m *DashboardModel) renderChartPanel(name string, width, height int) string {
	innerWidth := max(1, width-2)
	innerHeight := max(1, height-2)
	barsHeight := max(1, innerHeight-1)

	metric := m.state.Metrics[name]
	title := titleStyle.Render(truncate(chartTitle(name, metric.Data), innerWidth))

	var body string
	switch {
	case m.state.Loading && name == model.NumberOfLogs && metric.Data.Max() == 0:
		body = renderLoadingPlaceholder(m.now(), innerWidth, barsHeight)
	case metric.Data.Max() == 0:
		body = lipgloss.Place(innerWidth, barsHeight, lipgloss.Center, lipgloss.Center, helpStyle.Render("No data"))
	default:
		color := ColorGreen
		if name == model.NumberOfLogs {
			color = ColorBlue
		}
		body = renderBars(metric.Data, innerWidth, barsHeight, color)
	}

	focused := m.activeSection == SectionCharts
	return panelStyle(focused).
		Width(innerWidth).
		Height(innerHeight).
		Render(title + "\n" + body)
}

// renderBars draws data as one bar per column, folding buckets together
// when there are more buckets than columns. Gaps draw as empty bars.
func renderBars(data model.Series, width, height int, color lipgloss.Color) string {
	bars := downsample(data, width)

	bc := barchart.New(len(bars), height,
		barchart.WithBarGap(0),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)

	filled := lipgloss.NewStyle().Foreground(color).Background(color)
	empty := lipgloss.NewStyle().Foreground(ColorGray)
	for _, s := range bars {
		style := filled
		if !s.Valid {
			style = empty
		}
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: "", Value: s.Value, Style: style},
			},
		})
	}
	bc.Draw()

	out := bc.View()
	if pad := width - len(bars); pad > 0 {
		lines := strings.Split(out, "\n")
		for i := range lines {
			lines[i] += strings.Repeat(" ", pad)
		}
		out = strings.Join(lines, "\n")
	}
	return out
}

// downsample folds data into at most n buckets, keeping each group's
// largest valid value. A group with no valid value stays a gap.
func downsample(data model.Series, n int) model.Series {
	if n <= 0 {
		return nil
	}
	if len(data) <= n {
		return data
	}
	out := make(model.Series, n)
	for i := range out {
		lo := i * len(data) / n
		hi := (i + 1) * len(data) / n
		var s model.Sample
		for _, v := range data[lo:hi] {
			if v.Valid && (!s.Valid || v.Value > s.Value) {
				s = v
			}
		}
		out[i] = s
	}
	return out
}
