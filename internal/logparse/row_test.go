package logparse

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/tinytelemetry/logsearch/internal/model"
)

func TestParseRow_ServerTuple(t *testing.T) {
	t.Parallel()

	rec := model.LogRecord(`["2024-03-24T17:53:44.250000","warn",["disk 91%",42,null,{"k":"v"}]]`)
	row := ParseRow(rec)

	want := time.Date(2024, 3, 24, 17, 53, 44, 250000000, time.UTC)
	if !row.Time.Equal(want) {
		t.Errorf("Time = %v, want %v", row.Time, want)
	}
	if row.Level != "WARN" {
		t.Errorf("Level = %q, want WARN", row.Level)
	}
	if got := row.Message(); got != `disk 91% │ 42 │  │ {"k":"v"}` {
		t.Errorf("Message() = %q", got)
	}
}

func TestParseRow_Object(t *testing.T) {
	t.Parallel()

	row := ParseRow(model.LogRecord(`{"time":"2024-03-24T17:53:44Z","message":"ERROR boom"}`))
	if row.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR from message", row.Level)
	}
	if row.Time.IsZero() {
		t.Error("Time should parse")
	}
}

func TestParseRow_Opaque(t *testing.T) {
	t.Parallel()

	row := ParseRow(model.LogRecord(`"fatal: kernel panic"`))
	if row.Level != "FATAL" {
		t.Errorf("Level = %q, want FATAL", row.Level)
	}
	if row.Message() != `"fatal: kernel panic"` {
		t.Errorf("Message() = %q", row.Message())
	}
	if !row.Time.IsZero() {
		t.Errorf("Time = %v, want zero", row.Time)
	}
}

func TestParseRows(t *testing.T) {
	t.Parallel()

	var recs []model.LogRecord
	if err := json.Unmarshal([]byte(`[["t","INFO",["a"]],["t","DEBUG",["b"]]]`), &recs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	rows := ParseRows(recs)
	if len(rows) != 2 || rows[1].Level != "DEBUG" || rows[0].Message() != "a" {
		t.Errorf("rows = %+v", rows)
	}
}
