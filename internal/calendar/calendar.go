// Package calendar answers whether a date is a business day in a market.
//
// Calendars are stateless and safe for concurrent use. National calendars
// are driven by compiled-in holiday tables covering a bounded window of
// years; dates outside that window only get the weekend and fixed annual
// rules.
package calendar

import (
	"time"

	"cloud.google.com/go/civil"
)

// Calendar decides whether a date is a business day.
type Calendar interface {
	IsBusinessDay(date civil.Date) bool
}

// IsWeekend reports whether date falls on a Saturday or Sunday.
func IsWeekend(date civil.Date) bool {
	switch date.In(time.UTC).Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// WeekendsOnly treats every weekday as a business day.
type WeekendsOnly struct{}

// IsBusinessDay implements Calendar.
func (WeekendsOnly) IsBusinessDay(date civil.Date) bool {
	return !IsWeekend(date)
}

// Holidays lists the weekdays of year that c does not treat as business
// days, in date order.
func Holidays(c Calendar, year int) []civil.Date {
	var out []civil.Date
	for d := (civil.Date{Year: year, Month: time.January, Day: 1}); d.Year == year; d = d.AddDays(1) {
		if !IsWeekend(d) && !c.IsBusinessDay(d) {
			out = append(out, d)
		}
	}
	return out
}

// Covers reports whether c has full holiday data for year. Calendars
// without a year table are always covered.
func Covers(c Calendar, year int) bool {
	if t, ok := c.(interface{ Covers(int) bool }); ok {
		return t.Covers(year)
	}
	return true
}
