package locator

import (
	"fmt"

	"github.com/sunholo/semcheck/internal/ast"
)

const (
	nanos   int64 = 1
	micros  int64 = nanos * 1000
	millis  int64 = micros * 1000
	seconds int64 = millis * 1000
	minutes int64 = seconds * 60
	hours   int64 = minutes * 60
	days    int64 = hours * 24
	weeks   int64 = days * 7

	months int64 = 1
	years  int64 = months * 12
)

// Duration is a calendar-aware duration: a fixed nanosecond component
// and a calendar month component, both stored as non-negative
// magnitudes, with Negative carrying the sign of the whole duration.
type Duration struct {
	Months      int64
	Nanoseconds int64
	Negative    bool
}

// ConvertDuration folds an AST duration literal's component values
// into a single Duration. All components must share the same sign.
func ConvertDuration(values []ast.DurationValue) (Duration, error) {
	if len(values) == 0 {
		return Duration{}, fmt.Errorf("duration literal must contain at least one value")
	}

	negative := values[0].Magnitude < 0

	var nanoseconds, monthsTotal int64
	for _, v := range values {
		if (v.Magnitude < 0) != negative {
			return Duration{}, fmt.Errorf("all values in a duration literal must have the same sign")
		}
		switch v.Unit {
		case "y":
			monthsTotal += v.Magnitude * years
		case "mo":
			monthsTotal += v.Magnitude * months
		case "w":
			nanoseconds += v.Magnitude * weeks
		case "d":
			nanoseconds += v.Magnitude * days
		case "h":
			nanoseconds += v.Magnitude * hours
		case "m":
			nanoseconds += v.Magnitude * minutes
		case "s":
			nanoseconds += v.Magnitude * seconds
		case "ms":
			nanoseconds += v.Magnitude * millis
		case "us", "µs":
			nanoseconds += v.Magnitude * micros
		case "ns":
			nanoseconds += v.Magnitude * nanos
		default:
			return Duration{}, fmt.Errorf("unrecognized duration unit %q", v.Unit)
		}
	}

	if nanoseconds < 0 {
		nanoseconds = -nanoseconds
	}
	if monthsTotal < 0 {
		monthsTotal = -monthsTotal
	}

	return Duration{Months: monthsTotal, Nanoseconds: nanoseconds, Negative: negative}, nil
}
