package mockbackend

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tinytelemetry/logsearch/internal/model"
)

// ErrNotFound is returned for unknown views or metrics.
var ErrNotFound = errors.New("mockbackend: not found")

const (
	buckets     = 120
	rowsPerPage = 40
	rowsInRange = 200
)

var levels = []string{"INFO", "INFO", "INFO", "DEBUG", "WARN", "INFO", "ERROR", "INFO"}

type column struct {
	query string
	agg   string
}

type view struct {
	filter string
	cols   []string
}

// Fixture is a deterministic in-memory dataset. Series depend only on the
// requested range and names, so repeated requests return identical data.
type Fixture struct {
	mu      sync.RWMutex
	columns map[string]column
	views   map[string]view
}

// NewFixture returns a dataset with a "logs" view and an "errors" view.
func NewFixture() *Fixture {
	return &Fixture{
		columns: map[string]column{
			"Data":       {query: "logdata", agg: "max"},
			"latency_ms": {query: "logdata->'latency'", agg: "avg"},
			"status":     {query: "logdata->'status'", agg: ""},
		},
		views: map[string]view{
			"logs":   {filter: "true", cols: []string{"Data"}},
			"errors": {filter: "level = 'ERROR'", cols: []string{"latency_ms", "status"}},
		},
	}
}

// Views lists every view with its columns in declaration order.
func (f *Fixture) Views() []model.View {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.views))
	for name := range f.views {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]model.View, 0, len(names))
	for _, name := range names {
		v := model.View{Name: name, Cols: []model.ViewData{}}
		for _, col := range f.views[name].cols {
			v.Cols = append(v.Cols, model.ViewData{Metric: col, Agg: f.columns[col].agg})
		}
		out = append(out, v)
	}
	return out
}

// MetricNames lists every known column name.
func (f *Fixture) MetricNames() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.columns))
	for name := range f.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Density returns per-bucket log counts for a view.
func (f *Fixture) Density(start, end time.Time, table string) ([]int64, error) {
	f.mu.RLock()
	_, ok := f.views[table]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: view %q", ErrNotFound, table)
	}

	seed := seedOf(start, table)
	out := make([]int64, buckets)
	if !end.After(start) {
		return out, nil
	}
	for i := range out {
		out[i] = int64((seed+uint64(i)*2654435761)%900) + int64(i%12)*150
	}
	return out, nil
}

// Metric returns an aggregated series for a column. Every seventh bucket is
// a gap, as the gap-filled server query produces.
func (f *Fixture) Metric(start, end time.Time, metricName, viewName string) (model.Series, error) {
	f.mu.RLock()
	col, ok := f.columns[metricName]
	_, viewOK := f.views[viewName]
	f.mu.RUnlock()
	if !ok || !viewOK {
		return nil, fmt.Errorf("%w: metric %q in view %q", ErrNotFound, metricName, viewName)
	}

	seed := seedOf(start, metricName+col.agg)
	out := make(model.Series, buckets)
	if !end.After(start) {
		return out, nil
	}
	for i := range out {
		if i%7 == 6 {
			continue
		}
		out[i] = model.V(float64((seed+uint64(i)*40503)%5000) / 10)
	}
	return out, nil
}

// Logs returns one page of rows shaped as [time, level, [column values]].
func (f *Fixture) Logs(start, end time.Time, table string, offset int64) ([][]any, error) {
	f.mu.RLock()
	v, ok := f.views[table]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: view %q", ErrNotFound, table)
	}

	out := make([][]any, 0, rowsPerPage)
	if !end.After(start) || offset < 0 {
		return out, nil
	}
	step := end.Sub(start) / rowsInRange
	for i := offset; i < offset+rowsPerPage && i < rowsInRange; i++ {
		ts := start.Add(time.Duration(i) * step).UTC()
		level := levels[int(i)%len(levels)]
		cols := make([]any, 0, len(v.cols))
		for _, name := range v.cols {
			cols = append(cols, fmt.Sprintf("%s-%d", name, i))
		}
		out = append(out, []any{ts.Format("2006-01-02T15:04:05.000000"), level, cols})
	}
	return out, nil
}

// UpsertView creates or replaces a view and its columns. An empty filter
// name defaults to "logs".
func (f *Fixture) UpsertView(def model.ViewDefinition) string {
	name := def.Filter.Name
	if name == "" {
		name = model.DefaultViewName
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	cols := make([]string, 0, len(def.Columns))
	for _, c := range def.Columns {
		f.columns[c.Name] = column{query: c.Query, agg: c.MetricAgg}
		cols = append(cols, c.Name)
	}
	f.views[name] = view{filter: def.Filter.Query, cols: cols}
	return name
}

// DeleteView removes a view and any column no other view references.
func (f *Fixture) DeleteView(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.views, name)
	used := make(map[string]bool)
	for _, v := range f.views {
		for _, c := range v.cols {
			used[c] = true
		}
	}
	for c := range f.columns {
		if !used[c] {
			delete(f.columns, c)
		}
	}
}

func seedOf(start time.Time, name string) uint64 {
	h := uint64(14695981039346656037)
	for _, b := range []byte(name) {
		h ^= uint64(b)
		h *= 1099511628211
	}
	return h ^ uint64(start.Unix())
}
