// Package daycount converts a span between two dates into an elapsed-day
// count and a year fraction.
package daycount

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/newthinker/finquant/internal/core"
)

// DayCounter computes accrual days and year fractions. Holidays play no
// part: the count is plain elapsed calendar days and is negative when end
// precedes start.
type DayCounter interface {
	Name() string
	DayCount(start, end civil.Date) int
	YearFraction(start, end civil.Date) float64
}

// Actual360 divides actual days by 360.
type Actual360 struct{}

// Name returns "ACT/360".
func (Actual360) Name() string { return "ACT/360" }

// DayCount returns the actual days from start to end.
func (Actual360) DayCount(start, end civil.Date) int { return actualDays(start, end) }

// YearFraction returns DayCount / 360.
func (Actual360) YearFraction(start, end civil.Date) float64 {
	return float64(actualDays(start, end)) / 360.0
}

// Actual365 divides actual days by 365.
type Actual365 struct{}

// Name returns "ACT/365".
func (Actual365) Name() string { return "ACT/365" }

// DayCount returns the actual days from start to end.
func (Actual365) DayCount(start, end civil.Date) int { return actualDays(start, end) }

// YearFraction returns DayCount / 365.
func (Actual365) YearFraction(start, end civil.Date) float64 {
	return float64(actualDays(start, end)) / 365.0
}

// Actual365Fixed divides actual days by 365 regardless of leap years.
// Numerically it matches Actual365.
type Actual365Fixed struct{}

// Name returns "ACT/365F".
func (Actual365Fixed) Name() string { return "ACT/365F" }

// DayCount returns the actual days from start to end.
func (Actual365Fixed) DayCount(start, end civil.Date) int { return actualDays(start, end) }

// YearFraction returns DayCount / 365.
func (Actual365Fixed) YearFraction(start, end civil.Date) float64 {
	return float64(actualDays(start, end)) / 365.0
}

func actualDays(start, end civil.Date) int {
	return end.DaysSince(start)
}

// Conventions lists every supported day counter.
func Conventions() []DayCounter {
	return []DayCounter{Actual360{}, Actual365{}, Actual365Fixed{}}
}

// Parse resolves a convention name such as "ACT/360" or "act/365f".
func Parse(name string) (DayCounter, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ACT/360", "ACTUAL360":
		return Actual360{}, nil
	case "ACT/365", "ACTUAL365":
		return Actual365{}, nil
	case "ACT/365F", "ACT/365 FIXED", "ACTUAL365FIXED":
		return Actual365Fixed{}, nil
	default:
		return nil, core.WrapError(core.ErrUnknownDayCounter, fmt.Errorf("%q", name))
	}
}
