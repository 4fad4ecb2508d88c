package humanize

import (
	"math"
	"strings"
	"testing"
)

func TestHumanReadable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{5, "5.00"},
		{42, "42.0"},
		{999, "999"},
		{1000, "1.00e+3"},
		{1001, "1K"},
		{1234, "1.23K"},
		{1125, "1.13K"},
		{99_999, "100K"},
		{999_999, "1000K"},
		{1_000_000, "1000K"},
		{1_500_000, "1.5M"},
		{12_345_678, "12.3M"},
		{1_000_000_000, "1000M"},
		{2_500_000_000, "2.5B"},
		{5_000_000_000_000, "5000B"},
		{0.5, "0.500"},
		{-5, "-5.00"},
		{-5000, "-5.00e+3"},
		{-2_500_000_000, "-2.50e+9"},
	}

	for _, tt := range tests {
		t.Run(ToPrecision(tt.in, 6), func(t *testing.T) {
			if got := HumanReadable(tt.in); got != tt.want {
				t.Errorf("HumanReadable(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHumanReadable_NonFinite(t *testing.T) {
	t.Parallel()

	if got := HumanReadable(math.NaN()); got != "NaN" {
		t.Errorf("NaN = %q", got)
	}
	if got := HumanReadable(math.Inf(1)); got != "InfinityB" {
		t.Errorf("+Inf = %q", got)
	}
	if got := HumanReadable(math.Inf(-1)); got != "-Infinity" {
		t.Errorf("-Inf = %q", got)
	}
}

func TestHumanReadable_SuffixFollowsHighestExceededThreshold(t *testing.T) {
	t.Parallel()

	for _, v := range []float64{0, 1, 999.9, 1000, 1000.5, 5e5, 1e6, 1e6 + 1, 7e8, 1e9, 1e9 + 1, 3e11} {
		got := HumanReadable(v)
		var want string
		switch {
		case v > 1e9:
			want = "B"
		case v > 1e6:
			want = "M"
		case v > 1e3:
			want = "K"
		}
		suffix := strings.TrimLeft(got, "0123456789.e+-")
		if suffix != want {
			t.Errorf("HumanReadable(%v) = %q, suffix %q, want %q", v, got, suffix, want)
		}
	}
}

func TestToPrecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		p    int
		want string
	}{
		{123.456, 3, "123"},
		{123.456, 5, "123.46"},
		{0.000123, 2, "0.00012"},
		{0.0000001, 3, "1.00e-7"},
		{1.005, 3, "1.00"},
		{9.999, 3, "10.0"},
		{999.5, 3, "1.00e+3"},
		{1, 1, "1"},
		{0, 1, "0"},
		{25, 1, "3e+1"},
	}

	for _, tt := range tests {
		if got := ToPrecision(tt.in, tt.p); got != tt.want {
			t.Errorf("ToPrecision(%v, %d) = %q, want %q", tt.in, tt.p, got, tt.want)
		}
	}
}
