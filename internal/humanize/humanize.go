// Package humanize renders large counts compactly for chart labels.
package humanize

import (
	"math"
	"strconv"
	"strings"
)

// HumanReadable abbreviates num with a B, M or K suffix at three significant
// digits. Thresholds are strict: exactly 1000 is not abbreviated.
func HumanReadable(num float64) string {
	if num > 1_000_000_000 {
		return numberString(ToPrecision(num/1_000_000_000.0, 3)) + "B"
	}
	if num > 1_000_000 {
		return numberString(ToPrecision(num/1_000_000.0, 3)) + "M"
	}
	if num > 1_000 {
		return numberString(ToPrecision(num/1_000.0, 3)) + "K"
	}
	return ToPrecision(num, 3)
}

// ToPrecision formats x with p significant digits using the same rules as
// JavaScript's Number.prototype.toPrecision. p must be at least 1.
func ToPrecision(x float64, p int) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}
	if p < 1 {
		p = 1
	}

	if x == 0 {
		if p == 1 {
			return "0"
		}
		return "0." + strings.Repeat("0", p-1)
	}

	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}

	digits, exp := roundSignificant(x, p)

	if exp < -6 || exp >= p {
		mant := digits[:1]
		if p > 1 {
			mant += "." + digits[1:]
		}
		expSign := "+"
		if exp < 0 {
			expSign = "-"
			exp = -exp
		}
		return sign + mant + "e" + expSign + strconv.Itoa(exp)
	}

	if exp >= 0 {
		if exp+1 == p {
			return sign + digits
		}
		return sign + digits[:exp+1] + "." + digits[exp+1:]
	}
	return sign + "0." + strings.Repeat("0", -exp-1) + digits
}

// roundSignificant rounds a positive finite x to p significant digits and
// returns the digit string plus the decimal exponent of its first digit.
// Ties round up, matching toPrecision's "pick the larger n" rule. Forty
// digits of the exact binary expansion are enough to tell a true tie from a
// near one.
func roundSignificant(x float64, p int) (string, int) {
	s := strconv.FormatFloat(x, 'e', 40, 64)
	mant, expPart, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expPart)

	all := mant[:1] + mant[2:]
	kept := []byte(all[:p])
	if all[p] >= '5' {
		i := len(kept) - 1
		for ; i >= 0; i-- {
			if kept[i] == '9' {
				kept[i] = '0'
				continue
			}
			kept[i]++
			break
		}
		if i < 0 {
			kept = append([]byte{'1'}, kept[:p-1]...)
			exp++
		}
	}
	return string(kept), exp
}

// numberString re-parses a formatted number and prints it the way
// JavaScript's Number-to-String does, which drops trailing zeros.
func numberString(s string) string {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	short := strconv.FormatFloat(v, 'e', -1, 64)
	mant, expPart, _ := strings.Cut(short, "e")
	e, _ := strconv.Atoi(expPart)
	digits := strings.Replace(mant, ".", "", 1)
	k := len(digits)
	n := e + 1

	switch {
	case k <= n && n <= 21:
		return sign + digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return sign + digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return sign + "0." + strings.Repeat("0", -n) + digits
	}

	out := digits[:1]
	if k > 1 {
		out += "." + digits[1:]
	}
	expSign := "+"
	if n-1 < 0 {
		expSign = "-"
	}
	return sign + out + "e" + expSign + strconv.Itoa(absInt(n-1))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
