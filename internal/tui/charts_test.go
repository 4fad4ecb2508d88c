package tui

import (
	"testing"

	"github.com/tinytelemetry/logsearch/internal/model"
)

func TestDownsample(t *testing.T) {
	t.Parallel()

	gap := model.Sample{}
	tests := []struct {
		name string
		in   model.Series
		n    int
		want model.Series
	}{
		{"fits", model.Series{model.V(1), model.V(2)}, 4, model.Series{model.V(1), model.V(2)}},
		{"max per group", model.Series{model.V(1), model.V(5), model.V(3), model.V(2)}, 2, model.Series{model.V(5), model.V(3)}},
		{"gap group stays gap", model.Series{gap, gap, model.V(7), gap}, 2, model.Series{gap, model.V(7)}},
		{"zero width", model.Series{model.V(1)}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := downsample(tt.in, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChartTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data model.Series
		want string
	}{
		{model.Series{model.V(5), model.V(2)}, "cpu  max 5.00  last 2.00"},
		{model.Series{model.V(1500), model.Sample{}}, "cpu  max 1.5K  last 1.5K"},
		{nil, "cpu  max 0.00"},
	}
	for _, tt := range tests {
		if got := chartTitle("cpu", tt.data); got != tt.want {
			t.Errorf("chartTitle(%v) = %q, want %q", tt.data, got, tt.want)
		}
	}
}

func TestChartRowHeights(t *testing.T) {
	t.Parallel()

	m := &DashboardModel{graphics: []string{model.NumberOfLogs, "a", "b"}}
	if got := m.chartColumnCount(120); got != 2 {
		t.Errorf("chartColumnCount(120) = %d, want 2", got)
	}
	if got := m.chartColumnCount(80); got != 1 {
		t.Errorf("chartColumnCount(80) = %d, want 1", got)
	}

	heights := m.chartRowHeights(120, 16)
	if len(heights) != 2 || heights[0]+heights[1] != 16 {
		t.Errorf("chartRowHeights(120, 16) = %v", heights)
	}
	for _, h := range m.chartRowHeights(80, 6) {
		if h < 4 {
			t.Errorf("row height %d below minimum", h)
		}
	}
}
