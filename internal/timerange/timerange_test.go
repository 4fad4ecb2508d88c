package timerange

import (
	"sync"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	before := time.Now()
	s := New()
	after := time.Now()

	want := time.Date(2022, 10, 5, 14, 48, 0, 0, time.UTC)
	if !s.Start().Equal(want) {
		t.Errorf("Start() = %v, want %v", s.Start(), want)
	}
	if s.End().Before(before.Add(-time.Second)) || s.End().After(after.Add(time.Second)) {
		t.Errorf("End() = %v, want within [%v, %v]", s.End(), before, after)
	}
}

func TestStore_AllowsInvertedRange(t *testing.T) {
	t.Parallel()

	s := NewAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	end := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s.SetEnd(end)

	r := s.Range()
	if !r.End.Equal(end) {
		t.Errorf("End = %v, want %v", r.End, end)
	}
	if r.Duration() >= 0 {
		t.Errorf("Duration() = %v, want negative", r.Duration())
	}
}

func TestStore_SetBoth(t *testing.T) {
	t.Parallel()

	s := New()
	start := time.Date(2024, 3, 24, 17, 53, 44, 0, time.UTC)
	end := start.Add(64 * time.Second)
	s.Set(start, end)

	if got := s.Range(); !got.Start.Equal(start) || !got.End.Equal(end) {
		t.Errorf("Range() = %+v", got)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.SetStart(time.Unix(int64(i), 0))
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Range()
		}()
	}
	wg.Wait()
}

func TestLast(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := Last(time.Hour, now)
	if !r.End.Equal(now) || r.Duration() != time.Hour {
		t.Errorf("Last(1h) = %+v", r)
	}
}

func TestParseInstant(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2022-10-05T14:48:00Z", time.Date(2022, 10, 5, 14, 48, 0, 0, time.UTC), false},
		{"2022-10-05T16:48:00+02:00", time.Date(2022, 10, 5, 14, 48, 0, 0, time.UTC), false},
		{"1711302824000", time.Unix(1711302824, 0).UTC(), false},
		{"now", now, false},
		{"2024-03-24 17:53:44", time.Date(2024, 3, 24, 17, 53, 44, 0, time.UTC), false},
		{"", time.Time{}, true},
		{"not a date", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInstant(tt.in, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInstant(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseInstant(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
