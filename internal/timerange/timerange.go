// Package timerange holds the dashboard's process-wide start/end pair.
package timerange

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"

	"github.com/tinytelemetry/logsearch/internal/model"
)

// Range is a start/end snapshot. End may precede Start.
type Range struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start, which is negative for an inverted range.
func (r Range) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Store holds the current time range. Any caller may read or write either
// field; no ordering between them is enforced.
type Store struct {
	mu    sync.RWMutex
	start time.Time
	end   time.Time
}

// New returns a store starting at model.DefaultStart and ending now.
func New() *Store {
	return NewAt(time.Now())
}

// NewAt returns a store starting at model.DefaultStart and ending at now.
func NewAt(now time.Time) *Store {
	return &Store{start: model.DefaultStart, end: now}
}

func (s *Store) Start() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.start
}

func (s *Store) End() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.end
}

func (s *Store) SetStart(t time.Time) {
	s.mu.Lock()
	s.start = t
	s.mu.Unlock()
}

func (s *Store) SetEnd(t time.Time) {
	s.mu.Lock()
	s.end = t
	s.mu.Unlock()
}

// Set replaces both bounds at once.
func (s *Store) Set(start, end time.Time) {
	s.mu.Lock()
	s.start, s.end = start, end
	s.mu.Unlock()
}

// Range returns a consistent snapshot of both bounds.
func (s *Store) Range() Range {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Range{Start: s.start, End: s.end}
}

// Preset is a named relative range ending at the moment it is applied.
type Preset struct {
	Label string
	Span  time.Duration
}

// Presets lists the quick ranges offered by the dashboard, shortest first.
var Presets = []Preset{
	{Label: "15m", Span: 15 * time.Minute},
	{Label: "1h", Span: time.Hour},
	{Label: "24h", Span: 24 * time.Hour},
	{Label: "7d", Span: 7 * 24 * time.Hour},
	{Label: "30d", Span: 30 * 24 * time.Hour},
}

// Last returns the range covering span up to now.
func Last(span time.Duration, now time.Time) Range {
	return Range{Start: now.Add(-span), End: now}
}

// ParseInstant parses user input for a range bound. It accepts RFC 3339,
// epoch milliseconds, the literal "now", and any layout dateparse knows.
// Inputs without a zone are read as UTC.
func ParseInstant(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("timerange: empty time")
	}
	if strings.EqualFold(s, "now") {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && len(s) >= 10 {
		return time.UnixMilli(ms).UTC(), nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("timerange: invalid time %q: %w", s, err)
	}
	return t.UTC(), nil
}
