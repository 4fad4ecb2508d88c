// Package logparse turns opaque log records from the server into rows the
// dashboard can display.
package logparse

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/tinytelemetry/logsearch/internal/model"
)

// Row is a display-ready log record.
type Row struct {
	Time    time.Time // zero when the record has no parseable time
	RawTime string
	Level   string // normalized severity
	Columns []string
	Raw     string
}

// Message joins the row's columns for single-line display.
func (r Row) Message() string {
	if len(r.Columns) == 0 {
		return r.Raw
	}
	return strings.Join(r.Columns, " │ ")
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseRow decodes the server's [time, level, [columns...]] tuple. Objects
// with time/level/message keys are accepted too. Anything else is kept as
// raw text with a severity guessed from its content.
func ParseRow(rec model.LogRecord) Row {
	raw := string(bytes.TrimSpace(rec))
	row := Row{Raw: raw, Level: "UNKNOWN"}

	var tuple []json.RawMessage
	if err := json.Unmarshal(rec, &tuple); err == nil && len(tuple) > 0 {
		row.RawTime = scalarText(tuple[0])
		row.Time = parseTime(row.RawTime)
		if len(tuple) > 1 {
			row.Level = NormalizeSeverity(scalarText(tuple[1]))
		}
		if len(tuple) > 2 {
			for _, col := range tuple[2:] {
				row.Columns = append(row.Columns, columnTexts(col)...)
			}
		}
		return row
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(rec, &obj); err == nil {
		if v, ok := obj["time"]; ok {
			row.RawTime = scalarText(v)
			row.Time = parseTime(row.RawTime)
		}
		if v, ok := obj["level"]; ok {
			row.Level = NormalizeSeverity(scalarText(v))
		}
		if v, ok := obj["message"]; ok {
			row.Columns = []string{scalarText(v)}
		}
		if row.Level == "UNKNOWN" && len(row.Columns) > 0 {
			row.Level = ExtractSeverityFromText(row.Columns[0])
		}
		return row
	}

	row.Level = ExtractSeverityFromText(raw)
	return row
}

// ParseRows decodes every record.
func ParseRows(recs []model.LogRecord) []Row {
	rows := make([]Row, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, ParseRow(rec))
	}
	return rows
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// columnTexts flattens one tuple element: the server sends the column list
// as a nested array.
func columnTexts(v json.RawMessage) []string {
	var nested []json.RawMessage
	if err := json.Unmarshal(v, &nested); err == nil {
		out := make([]string, 0, len(nested))
		for _, n := range nested {
			out = append(out, scalarText(n))
		}
		return out
	}
	return []string{scalarText(v)}
}

func scalarText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	trimmed := bytes.TrimSpace(v)
	if bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err == nil {
		return compact.String()
	}
	return string(trimmed)
}
