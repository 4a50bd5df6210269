package calendar

import (
	"sync"
	"time"

	"github.com/rickar/cal/v2"
)

const (
	lunarNewYear   = "Lunar New Year"
	springFestival = "Spring Festival"
	tombSweeping   = "Tomb Sweeping Day"
	childrensDay   = "Children's Day"
	dragonBoat     = "Dragon Boat Festival"
	moonFestival   = "Mid-Autumn Festival"
	labourDay      = "Labour Day"
	adjusted       = "adjusted holiday"
)

var taiwanAnnual = []*cal.Holiday{
	annual("New Year's Day", time.January, 1),
	annual("Peace Memorial Day", time.February, 28),
	annual(labourDay, time.May, 1),
	annual("Double Tenth", time.October, 10),
}

// Lunar New Year runs that straddle two months are split into an
// end-of-month span and a start-of-month span.
var taiwanYears = map[int][]Span{
	// Dragon Boat Festival and Moon Festival fall on Saturday
	2002: {
		days(time.February, 9, 17, lunarNewYear),
		day(time.April, 5, tombSweeping),
	},
	2003: {
		day(time.January, 31, lunarNewYear),
		days(time.February, 1, 5, lunarNewYear),
		day(time.June, 4, dragonBoat),
		day(time.September, 11, moonFestival),
	},
	2004: {
		days(time.January, 21, 26, lunarNewYear),
		day(time.June, 22, dragonBoat),
		day(time.September, 28, moonFestival),
	},
	// Dragon Boat and Moon Festival fall on Saturday or Sunday
	2005: {
		days(time.February, 6, 13, lunarNewYear),
		day(time.April, 5, tombSweeping),
		day(time.May, 2, "Labour Day (make up)"),
	},
	2006: {
		days(time.January, 28, 31, lunarNewYear),
		days(time.February, 1, 5, lunarNewYear),
		day(time.April, 5, tombSweeping),
		day(time.May, 31, dragonBoat),
		day(time.October, 6, moonFestival),
	},
	2007: {
		days(time.February, 17, 25, lunarNewYear),
		day(time.April, 5, tombSweeping),
		day(time.April, 6, adjusted),
		day(time.June, 18, adjusted),
		day(time.June, 19, dragonBoat),
		day(time.September, 24, adjusted),
		day(time.September, 25, moonFestival),
	},
	2008: {
		days(time.February, 4, 11, lunarNewYear),
		day(time.April, 4, tombSweeping),
	},
	2009: {
		day(time.January, 2, adjusted),
		days(time.January, 24, 31, lunarNewYear),
		day(time.April, 4, tombSweeping),
		days(time.May, 28, 29, dragonBoat),
		day(time.October, 3, moonFestival),
	},
	2010: {
		days(time.January, 13, 21, lunarNewYear),
		day(time.April, 5, tombSweeping),
		day(time.May, 16, dragonBoat),
		day(time.September, 22, moonFestival),
	},
	2011: {
		days(time.February, 2, 7, springFestival),
		day(time.April, 4, childrensDay),
		day(time.April, 5, tombSweeping),
		day(time.May, 2, labourDay),
		day(time.June, 6, dragonBoat),
		day(time.September, 12, moonFestival),
	},
	2012: {
		days(time.January, 23, 27, springFestival),
		day(time.February, 27, "Peace Memorial Day"),
		day(time.April, 4, tombSweeping),
		day(time.May, 1, labourDay),
		day(time.June, 23, dragonBoat),
		day(time.September, 30, moonFestival),
		day(time.December, 31, "Founding of the Republic of China"),
	},
	2013: {
		days(time.February, 10, 15, springFestival),
		day(time.April, 4, childrensDay),
		day(time.April, 5, tombSweeping),
		day(time.May, 1, labourDay),
		day(time.June, 12, dragonBoat),
		days(time.September, 19, 20, moonFestival),
	},
	2014: {
		days(time.January, 28, 30, lunarNewYear),
		day(time.January, 31, springFestival),
		days(time.February, 1, 4, springFestival),
		day(time.April, 4, childrensDay),
		day(time.April, 5, tombSweeping),
		day(time.June, 2, dragonBoat),
		day(time.September, 8, moonFestival),
	},
	2015: {
		day(time.January, 2, adjusted),
		days(time.February, 18, 23, lunarNewYear),
		day(time.February, 27, adjusted),
		day(time.April, 3, adjusted),
		day(time.April, 6, adjusted),
		day(time.June, 19, adjusted),
		day(time.September, 28, adjusted),
		day(time.October, 9, adjusted),
	},
	2016: {
		days(time.February, 8, 12, lunarNewYear),
		day(time.February, 29, adjusted),
		day(time.April, 4, childrensDay),
		day(time.April, 5, adjusted),
		day(time.May, 2, adjusted),
		day(time.June, 9, dragonBoat),
		day(time.June, 10, adjusted),
		day(time.September, 15, moonFestival),
		day(time.September, 16, adjusted),
	},
	2017: {
		day(time.January, 2, adjusted),
		days(time.January, 27, 31, lunarNewYear),
		day(time.February, 1, lunarNewYear),
		day(time.February, 27, adjusted),
		day(time.April, 3, adjusted),
		day(time.April, 4, childrensDay),
		day(time.May, 29, adjusted),
		day(time.May, 30, dragonBoat),
		day(time.October, 4, moonFestival),
		day(time.October, 9, adjusted),
	},
	2018: {
		days(time.February, 15, 20, lunarNewYear),
		day(time.April, 4, childrensDay),
		day(time.April, 5, tombSweeping),
		day(time.April, 6, adjusted),
		day(time.June, 18, dragonBoat),
		day(time.September, 24, moonFestival),
		day(time.December, 31, adjusted),
	},
	2019: {
		days(time.February, 4, 8, lunarNewYear),
		day(time.March, 1, adjusted),
		day(time.April, 4, childrensDay),
		day(time.April, 5, tombSweeping),
		day(time.June, 7, dragonBoat),
		day(time.September, 13, moonFestival),
		day(time.October, 11, adjusted),
	},
	2020: {
		day(time.January, 23, adjusted),
		days(time.January, 24, 29, lunarNewYear),
		day(time.April, 2, adjusted),
		day(time.April, 3, adjusted),
		day(time.June, 25, dragonBoat),
		day(time.June, 26, adjusted),
		day(time.October, 1, moonFestival),
		day(time.October, 2, adjusted),
		day(time.October, 9, adjusted),
	},
	// Tomb Sweeping Day falls on Sunday
	2021: {
		day(time.February, 10, adjusted),
		days(time.February, 11, 16, lunarNewYear),
		day(time.March, 1, adjusted),
		day(time.April, 2, childrensDay),
		day(time.April, 5, adjusted),
		day(time.April, 30, adjusted),
		day(time.June, 14, dragonBoat),
		day(time.September, 20, adjusted),
		day(time.September, 21, moonFestival),
		day(time.October, 11, adjusted),
		day(time.December, 31, adjusted),
	},
	// Mid-Autumn Festival falls on Saturday
	2022: {
		day(time.January, 31, lunarNewYear),
		days(time.February, 1, 4, lunarNewYear),
		day(time.April, 4, childrensDay),
		day(time.April, 5, tombSweeping),
		day(time.May, 2, adjusted),
		day(time.June, 3, dragonBoat),
		day(time.September, 9, adjusted),
	},
	2023: {
		day(time.January, 2, adjusted),
		day(time.January, 20, adjusted),
		days(time.January, 21, 24, lunarNewYear),
		days(time.January, 25, 27, adjusted),
		day(time.February, 27, adjusted),
		day(time.April, 3, adjusted),
		day(time.April, 4, childrensDay),
		day(time.April, 5, tombSweeping),
		day(time.June, 22, dragonBoat),
		day(time.June, 23, adjusted),
		day(time.September, 29, moonFestival),
		day(time.October, 9, adjusted),
	},
}

var taiwan = sync.OnceValue(func() *HolidayCalendar {
	return NewHolidayCalendar("taiwan", taiwanAnnual, taiwanYears)
})

// Taiwan returns the Taiwan calendar. The holiday table covers 2002-2023.
func Taiwan() *HolidayCalendar {
	return taiwan()
}
