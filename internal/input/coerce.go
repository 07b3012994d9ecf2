package input

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// Text → value coercion. The rules copy JavaScript's Number() and Date
// parsing closely enough that existing clients see the same results:
//
//	Number(absent)  = NaN        Date(absent) = now
//	Number("")      = 0          Date("")     = now
//	Number("  ")    = 0          Date("  ")   = zero time (invalid date)
//	Number("30")    = 30         Date("2023-01-15") = 2023-01-15T00:00Z
//	Number("abc")   = NaN        Date("abc")  = zero time (invalid date)
//
// Invalid values are NOT errors. They are stored as-is; callers that care
// check model.Exercise.HasValidDuration / HasValidDate.

type layout struct {
	format   string
	dateOnly bool
}

// layouts are tried in order. All are interpreted in UTC when they carry
// no zone of their own.
var layouts = []layout{
	{"2006-01-02", true},
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01", true},
	{"2006", true},
	{"Mon Jan 02 2006", true},
	{"Mon Jan 2 2006", true},
	{time.RFC1123, false},
	{time.RFC1123Z, false},
	{"January 2, 2006", true},
	{"Jan 2, 2006", true},
	{"2 January 2006", true},
	{"2006/01/02", true},
	{"01/02/2006", true},
}

// ParseDate parses s with the supported layouts. dateOnly reports whether
// the matching layout had no time-of-day component.
func ParseDate(s string) (t time.Time, dateOnly bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	for _, l := range layouts {
		if t, err := time.Parse(l.format, s); err == nil {
			return t.UTC(), l.dateOnly, true
		}
	}
	return time.Time{}, false, false
}

// Date coerces an exercise date. Absent or empty means now; anything
// else that doesn't parse, whitespace included, becomes the zero time.
func Date(f Field, now time.Time) time.Time {
	if !f.Present || f.Value == "" {
		return now.UTC()
	}
	t, _, ok := ParseDate(f.Value)
	if !ok {
		return time.Time{}
	}
	return t
}

// LowerBound coerces a "from" query bound. ok is false when the bound is
// absent, blank or unparseable, in which case it's ignored.
func LowerBound(f Field) (time.Time, bool) {
	t, _, ok := ParseDate(f.Value)
	return t, f.Present && ok
}

// UpperBound coerces a "to" query bound. A date without a time of day
// extends to the last instant of that day, so to=2023-01-15 includes
// exercises logged at 18:00 on the 15th.
func UpperBound(f Field) (time.Time, bool) {
	t, dateOnly, ok := ParseDate(f.Value)
	if !f.Present || !ok {
		return time.Time{}, false
	}
	if dateOnly {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, true
}

// Number coerces like JavaScript's Number(): absent → NaN, blank → 0,
// decimal/exponent/Infinity literals, 0x/0o/0b integer literals; anything
// else → NaN.
func Number(f Field) float64 {
	if !f.Present {
		return math.NaN()
	}
	s := strings.TrimSpace(f.Value)
	if s == "" {
		return 0
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	if !isDecimalLiteral(s) {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Overflow still yields ±Inf, which is what JavaScript returns too.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return n
		}
		return math.NaN()
	}
	return n
}

// isDecimalLiteral rejects what strconv.ParseFloat accepts but JavaScript
// doesn't: "inf", "nan", hex floats and underscores.
func isDecimalLiteral(s string) bool {
	digits := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '.' || c == 'e' || c == 'E':
		case c == '+' || c == '-':
			if i != 0 && s[i-1] != 'e' && s[i-1] != 'E' {
				return false
			}
		default:
			return false
		}
	}
	return digits
}

// Limit coerces the log limit: absent, blank, non-numeric, zero or negative
// means no limit (0); fractions are truncated.
func Limit(f Field) int {
	if !f.Present || strings.TrimSpace(f.Value) == "" {
		return 0
	}
	n := Number(f)
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 1 {
		return 0
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}
