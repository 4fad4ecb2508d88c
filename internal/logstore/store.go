// Package logstore holds the dashboard's view selection, fetched logs and
// metric series, and refreshes them from the backend.
//
// Fetches started by Update run independently of one another. Each one
// applies its result when it settles, so the last response to arrive wins,
// even when it belongs to an older Update.
package logstore

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/tinytelemetry/logsearch/internal/model"
	"github.com/tinytelemetry/logsearch/internal/timerange"
)

// State is a point-in-time copy of the store.
type State struct {
	Range       timerange.Range
	Logs        []model.LogRecord
	Metrics     map[string]model.Metric
	CurrentView model.View
	ViewName    string
	Loading     bool
}

// Store is safe for concurrent use. Fetch results are applied under its
// lock, so readers never see a half-written slice.
type Store struct {
	fetcher model.Fetcher
	times   *timerange.Store

	mu          sync.Mutex
	logs        []model.LogRecord
	metrics     map[string]model.Metric
	currentView model.View
	viewName    string
	loading     bool

	// logsGen is bumped by Update; pages requested under an older value
	// are discarded.
	logsGen uint64

	changes  chan struct{}
	inflight sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithDensityBuckets sets the length of the initial NumberOfLogs series.
func WithDensityBuckets(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.metrics[model.NumberOfLogs] = model.Metric{
				Data:    model.ZeroSeries(n),
				ColName: model.NumberOfLogs,
			}
		}
	}
}

// New creates a store reading its range from times. NumberOfLogs starts as
// a zero-filled series of model.DefaultDensityBuckets.
func New(fetcher model.Fetcher, times *timerange.Store, opts ...Option) *Store {
	s := &Store{
		fetcher: fetcher,
		times:   times,
		logs:    []model.LogRecord{},
		metrics: map[string]model.Metric{
			model.NumberOfLogs: {
				Data:    model.ZeroSeries(model.DefaultDensityBuckets),
				ColName: model.NumberOfLogs,
			},
		},
		viewName: model.DefaultViewName,
		changes:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDensityStore creates the compact density-only variant with an
// 80-bucket NumberOfLogs series.
func NewDensityStore(fetcher model.Fetcher, times *timerange.Store) *Store {
	return New(fetcher, times, WithDensityBuckets(model.CompactDensityBuckets))
}

// TimeRange returns the range store the fetches read from.
func (s *Store) TimeRange() *timerange.Store { return s.times }

// Changes delivers a signal after every state change. Signals coalesce:
// a reader that falls behind sees one pending signal, not a backlog.
func (s *Store) Changes() <-chan struct{} { return s.changes }

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// apply runs fn under the lock and signals subscribers.
func (s *Store) apply(fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	s.notify()
}

// SetView selects the view whose columns are charted and whose name is
// sent as the table for density and log requests.
func (s *Store) SetView(v model.View) {
	s.apply(func() {
		s.currentView = cloneView(v)
		s.viewName = v.Name
	})
}

// Graphics lists the metric names to chart, always starting with
// NumberOfLogs. A column is listed when it has an aggregation and its
// position in the view (as a decimal key, not its metric name) is already a
// key in the metrics map.
func (s *Store) Graphics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []string{model.NumberOfLogs}
	for i, col := range s.currentView.Cols {
		if col.Agg == "" {
			continue
		}
		if _, ok := s.metrics[strconv.Itoa(i)]; ok {
			out = append(out, col.Metric)
		}
	}
	return out
}

// MaxDensity is the largest NumberOfLogs bucket, never below zero.
func (s *Store) MaxDensity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics[model.NumberOfLogs].Data.Max()
}

// Loading reports whether a density or logs fetch is believed in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Snapshot copies the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics := make(map[string]model.Metric, len(s.metrics))
	for k, m := range s.metrics {
		m.Data = slices.Clone(m.Data)
		metrics[k] = m
	}
	return State{
		Range:       s.times.Range(),
		Logs:        slices.Clone(s.logs),
		Metrics:     metrics,
		CurrentView: cloneView(s.currentView),
		ViewName:    s.viewName,
		Loading:     s.loading,
	}
}

// Metric returns one series by name.
func (s *Store) Metric(name string) (model.Metric, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.metrics[name]
	if ok {
		m.Data = slices.Clone(m.Data)
	}
	return m, ok
}

// MetricNames lists the keys of the metrics map in sorted order.
func (s *Store) MetricNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.metrics))
}

// Wait blocks until every fetch started so far has settled. Update never
// waits; this exists for one-shot callers.
func (s *Store) Wait() {
	s.inflight.Wait()
}

func (s *Store) spawn(fn func()) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		fn()
	}()
}

// Update clears logs and the density series, then fires the density, logs
// and per-column metric requests without waiting for any of them.
//
// Density and logs each clear the loading flag when they settle, whether
// they succeed or fail, so the flag drops as soon as either finishes. A
// failed metric request changes nothing.
func (s *Store) Update(ctx context.Context) {
	var (
		rng      timerange.Range
		viewName string
		cols     []model.ViewData
	)
	s.apply(func() {
		s.loading = true
		s.logs = []model.LogRecord{}
		s.logsGen++
		nol := s.metrics[model.NumberOfLogs]
		nol.Data = model.ZeroSeries(model.DefaultDensityBuckets)
		s.metrics[model.NumberOfLogs] = nol

		rng = s.times.Range()
		viewName = s.viewName
		cols = slices.Clone(s.currentView.Cols)
	})

	start, end := model.Timestamp(rng.Start), model.Timestamp(rng.End)

	s.spawn(func() {
		data, err := s.fetcher.Density(ctx, model.DensityQuery{Start: start, End: end, Table: viewName})
		s.apply(func() {
			if err == nil {
				nol := s.metrics[model.NumberOfLogs]
				nol.Data = data
				s.metrics[model.NumberOfLogs] = nol
			}
			s.loading = false
		})
		if err != nil {
			log.Debug().Err(err).Str("view", viewName).Msg("logstore: density fetch failed")
		}
	})

	for _, col := range cols {
		if col.Agg == "" {
			continue
		}
		metricName := col.Metric
		s.spawn(func() {
			data, err := s.fetcher.Metric(ctx, model.MetricQuery{
				Start:      start,
				End:        end,
				MetricName: metricName,
				ViewName:   viewName,
			})
			if err != nil {
				log.Debug().Err(err).Str("metric", metricName).Msg("logstore: metric fetch dropped")
				return
			}
			s.apply(func() {
				s.metrics[metricName] = model.Metric{Data: data, ColName: metricName, ViewName: viewName}
			})
		})
	}

	s.spawn(func() {
		logs, err := s.fetcher.Logs(ctx, model.LogQuery{Start: start, End: end, Table: viewName})
		s.apply(func() {
			if err == nil {
				s.logs = logs
			}
			s.loading = false
		})
		if err != nil {
			log.Debug().Err(err).Str("view", viewName).Msg("logstore: logs fetch failed")
		}
	})
}

// LoadMoreLogs fetches the page after the logs already held and appends
// it. A page that settles after a later Update is dropped. It does not
// touch the loading flag.
func (s *Store) LoadMoreLogs(ctx context.Context) {
	s.mu.Lock()
	rng := s.times.Range()
	viewName := s.viewName
	offset := int64(len(s.logs))
	gen := s.logsGen
	s.mu.Unlock()

	s.spawn(func() {
		logs, err := s.fetcher.Logs(ctx, model.LogQuery{
			Start:  model.Timestamp(rng.Start),
			End:    model.Timestamp(rng.End),
			Table:  viewName,
			Offset: offset,
		})
		if err != nil {
			log.Debug().Err(err).Int64("offset", offset).Msg("logstore: next logs page failed")
			return
		}
		s.apply(func() {
			if s.logsGen == gen && int64(len(s.logs)) == offset {
				s.logs = append(s.logs, logs...)
			}
		})
	})
}

func cloneView(v model.View) model.View {
	return model.View{Name: v.Name, Cols: slices.Clone(v.Cols)}
}
