package calendar

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/rickar/cal/v2"
)

// Span is an inclusive run of holidays within a single month.
type Span struct {
	Month  time.Month
	First  int
	Last   int
	Reason string
}

// Contains reports whether date falls inside the span, ignoring the year.
func (s Span) Contains(date civil.Date) bool {
	return date.Month == s.Month && date.Day >= s.First && date.Day <= s.Last
}

func day(m time.Month, d int, reason string) Span {
	return Span{Month: m, First: d, Last: d, Reason: reason}
}

func days(m time.Month, first, last int, reason string) Span {
	return Span{Month: m, First: first, Last: last, Reason: reason}
}

func annual(name string, m time.Month, d int) *cal.Holiday {
	return &cal.Holiday{Name: name, Month: m, Day: d, Func: cal.CalcDayOfMonth}
}

// HolidayCalendar is a national calendar made of fixed annual holidays and
// a per-year table of exceptions (lunar festivals, make-up days).
type HolidayCalendar struct {
	name   string
	annual *cal.BusinessCalendar
	years  map[int][]Span
	first  int
	last   int
}

// NewHolidayCalendar builds a calendar from annual holidays and a year table.
// The table must not be mutated afterwards.
func NewHolidayCalendar(name string, fixed []*cal.Holiday, years map[int][]Span) *HolidayCalendar {
	bc := cal.NewBusinessCalendar()
	bc.AddHoliday(fixed...)

	c := &HolidayCalendar{
		name:   name,
		annual: bc,
		years:  years,
	}
	for y := range years {
		if c.first == 0 || y < c.first {
			c.first = y
		}
		if y > c.last {
			c.last = y
		}
	}
	return c
}

// Name returns the calendar name.
func (c *HolidayCalendar) Name() string {
	return c.name
}

// IsBusinessDay implements Calendar. Weekends are rejected first, then
// fixed annual holidays, then the table entries for the date's year.
func (c *HolidayCalendar) IsBusinessDay(date civil.Date) bool {
	if IsWeekend(date) {
		return false
	}
	if actual, _, _ := c.annual.IsHoliday(date.In(time.UTC)); actual {
		return false
	}
	for _, s := range c.years[date.Year] {
		if s.Contains(date) {
			return false
		}
	}
	return true
}

// Covers reports whether the year table has an entry for year. Years that
// are not covered only observe weekends and fixed annual holidays.
func (c *HolidayCalendar) Covers(year int) bool {
	_, ok := c.years[year]
	return ok
}

// Years returns the first and last year present in the table.
func (c *HolidayCalendar) Years() (first, last int) {
	return c.first, c.last
}

// Holidays lists the weekday holidays of a year in date order.
func (c *HolidayCalendar) Holidays(year int) []civil.Date {
	return Holidays(c, year)
}
