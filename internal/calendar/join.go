package calendar

import "cloud.google.com/go/civil"

// Join combines two calendars: a date is a business day only when both
// calendars agree. Joins nest, e.g. NewJoin(NewJoin(a, b), c).
type Join[C1, C2 Calendar] struct {
	First  C1
	Second C2
}

// NewJoin returns the composite of c1 and c2.
func NewJoin[C1, C2 Calendar](c1 C1, c2 C2) Join[C1, C2] {
	return Join[C1, C2]{First: c1, Second: c2}
}

// IsBusinessDay implements Calendar.
func (j Join[C1, C2]) IsBusinessDay(date civil.Date) bool {
	return j.First.IsBusinessDay(date) && j.Second.IsBusinessDay(date)
}

// Covers reports whether both sides have holiday data for year.
func (j Join[C1, C2]) Covers(year int) bool {
	return Covers(j.First, year) && Covers(j.Second, year)
}
