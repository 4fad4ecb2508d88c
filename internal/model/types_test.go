package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_MarshalMatchesDateToJSON(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("CEST", 2*60*60)
	ts := Timestamp(time.Date(2022, 10, 5, 16, 48, 0, 123456789, loc))

	b, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `"2022-10-05T14:48:00.123Z"`; got != want {
		t.Errorf("marshal = %s, want %s", got, want)
	}

	var back Timestamp
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Time().Equal(time.Date(2022, 10, 5, 14, 48, 0, 123000000, time.UTC)) {
		t.Errorf("unmarshal = %v", back.Time())
	}
}

func TestSeries_DecodesNullGaps(t *testing.T) {
	t.Parallel()

	var s Series
	if err := json.Unmarshal([]byte(`[1, null, 2.5]`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(s) != 3 {
		t.Fatalf("len = %d, want 3", len(s))
	}
	if !s[0].Valid || s[0].Value != 1 {
		t.Errorf("s[0] = %+v", s[0])
	}
	if s[1].Valid {
		t.Errorf("s[1] should be a gap, got %+v", s[1])
	}

	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `[1,null,2.5]` {
		t.Errorf("marshal = %s", b)
	}
}

func TestSeries_MaxAndLast(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		series   Series
		wantMax  float64
		wantLast float64
		wantOK   bool
	}{
		{"empty", nil, 0, 0, false},
		{"negatives floor at zero", Series{V(-3), V(-1)}, 0, -1, true},
		{"gap at end", Series{V(4), V(9), {}}, 9, 9, true},
		{"zeros", ZeroSeries(80), 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.series.Max(); got != tt.wantMax {
				t.Errorf("Max() = %v, want %v", got, tt.wantMax)
			}
			last, ok := tt.series.Last()
			if ok != tt.wantOK || last != tt.wantLast {
				t.Errorf("Last() = %v, %v; want %v, %v", last, ok, tt.wantLast, tt.wantOK)
			}
		})
	}
}

func TestLogQuery_OmitsZeroOffset(t *testing.T) {
	t.Parallel()

	q := LogQuery{Start: Timestamp(DefaultStart), End: Timestamp(DefaultStart), Table: "logs"}
	b, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"start":"2022-10-05T14:48:00.000Z","end":"2022-10-05T14:48:00.000Z","table":"logs"}`
	if string(b) != want {
		t.Errorf("marshal = %s, want %s", b, want)
	}
}
