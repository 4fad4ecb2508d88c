package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// NumberOfLogs is the reserved metric key holding the log density series.
// It is always present in a store's metrics map.
const NumberOfLogs = "NumberOfLogs"

// jsonTimeLayout matches JavaScript's Date.prototype.toJSON output.
const jsonTimeLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a time.Time that serializes the way a browser would send it:
// UTC, millisecond precision, "Z" suffix.
type Timestamp time.Time

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time { return time.Time(t) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(jsonTimeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed.UTC())
	return nil
}

// Sample is one bucket of a time series. Buckets the server gap-fills
// without a value arrive as JSON null and decode with Valid == false.
type Sample struct {
	Value float64
	Valid bool
}

// V returns a valid sample holding v.
func V(v float64) Sample { return Sample{Value: v, Valid: true} }

func (s Sample) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(s.Value, 'g', -1, 64)), nil
}

func (s *Sample) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*s = Sample{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Sample{Value: v, Valid: true}
	return nil
}

// Series is an ordered sequence of buckets.
type Series []Sample

// ZeroSeries returns n valid zero samples.
func ZeroSeries(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = Sample{Valid: true}
	}
	return s
}

// Max returns the largest valid value, or 0 when the series is empty or
// every value is negative.
func (s Series) Max() float64 {
	m := 0.0
	for _, v := range s {
		if v.Valid && v.Value > m {
			m = v.Value
		}
	}
	return m
}

// Last returns the last valid sample value.
func (s Series) Last() (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Valid {
			return s[i].Value, true
		}
	}
	return 0, false
}

// Metric is one named time series displayed on the dashboard.
type Metric struct {
	Data     Series `json:"data"`
	ColName  string `json:"col_name"`
	ViewName string `json:"view_name"`
}

// ViewData is one column of a view. An empty Agg means the column is
// neither fetched nor charted.
type ViewData struct {
	Metric string `json:"metric" yaml:"metric"`
	Agg    string `json:"agg" yaml:"agg"`
}

// View is a named grouping of log columns selected by the user.
type View struct {
	Name string     `json:"name" yaml:"name"`
	Cols []ViewData `json:"cols" yaml:"cols"`
}

// LogRecord is one log row exactly as the server sent it.
type LogRecord = json.RawMessage

// DensityQuery is the body of POST /api/density.
type DensityQuery struct {
	Start Timestamp `json:"start"`
	End   Timestamp `json:"end"`
	Table string    `json:"table"`
}

// LogQuery is the body of POST /api/logs. Offset is only sent when paging.
type LogQuery struct {
	Start  Timestamp `json:"start"`
	End    Timestamp `json:"end"`
	Table  string    `json:"table"`
	Offset int64     `json:"offset,omitempty"`
}

// MetricQuery is the body of POST /api/get/metric.
type MetricQuery struct {
	Start      Timestamp `json:"start"`
	End        Timestamp `json:"end"`
	MetricName string    `json:"metric_name"`
	ViewName   string    `json:"view_name"`
}

// ColumnDefinition declares a column when creating a view.
type ColumnDefinition struct {
	Name      string `json:"name"`
	Query     string `json:"query"`
	MetricAgg string `json:"metric_agg"`
}

// FilterDefinition is the row filter of a view.
type FilterDefinition struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

// ViewDefinition is the body of POST /api/view.
type ViewDefinition struct {
	Columns []ColumnDefinition `json:"columns"`
	Filter  FilterDefinition   `json:"filter"`
}

// Health is the body of GET /api/health.
type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
