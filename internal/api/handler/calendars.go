package handler

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/newthinker/finquant/internal/api/response"
	"github.com/newthinker/finquant/internal/calendar"
	"github.com/newthinker/finquant/internal/metrics"
)

// CalendarInfo describes a registered calendar.
type CalendarInfo struct {
	Name      string `json:"name"`
	FirstYear int    `json:"first_year,omitempty"`
	LastYear  int    `json:"last_year,omitempty"`
}

// BusinessDayResult answers a single business-day query.
type BusinessDayResult struct {
	Calendar    string     `json:"calendar"`
	Date        civil.Date `json:"date"`
	BusinessDay bool       `json:"business_day"`
	Weekend     bool       `json:"weekend"`
	Covered     bool       `json:"covered"`
}

// CalendarsHandler serves calendar queries.
type CalendarsHandler struct {
	registry *calendar.Registry
	metrics  *metrics.Registry
}

// NewCalendarsHandler creates a calendars handler. reg may be nil.
func NewCalendarsHandler(calendars *calendar.Registry, reg *metrics.Registry) *CalendarsHandler {
	return &CalendarsHandler{registry: calendars, metrics: reg}
}

// List handles GET /api/v1/calendars
func (h *CalendarsHandler) List(w http.ResponseWriter, r *http.Request) {
	names := h.registry.Names()
	infos := make([]CalendarInfo, 0, len(names))
	for _, name := range names {
		info := CalendarInfo{Name: name}
		c, _ := h.registry.Get(name)
		if t, ok := c.(interface{ Years() (int, int) }); ok {
			info.FirstYear, info.LastYear = t.Years()
		}
		infos = append(infos, info)
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"calendars": infos,
	})
}

// BusinessDay handles GET /api/v1/calendars/{name}/business-day?date=YYYY-MM-DD
func (h *CalendarsHandler) BusinessDay(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	c, err := h.registry.Get(name)
	if err != nil {
		response.Fail(w, err)
		return
	}

	date, err := dateParam(r, "date")
	if err != nil {
		response.Fail(w, err)
		return
	}

	result := BusinessDayResult{
		Calendar:    name,
		Date:        date,
		BusinessDay: c.IsBusinessDay(date),
		Weekend:     calendar.IsWeekend(date),
		Covered:     calendar.Covers(c, date.Year),
	}
	if h.metrics != nil {
		h.metrics.RecordCalendarQuery(name, result.BusinessDay)
	}
	response.JSON(w, http.StatusOK, result)
}

// Holidays handles GET /api/v1/calendars/{name}/holidays?year=YYYY
func (h *CalendarsHandler) Holidays(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	c, err := h.registry.Get(name)
	if err != nil {
		response.Fail(w, err)
		return
	}

	year, err := yearParam(r, "year")
	if err != nil {
		response.Fail(w, err)
		return
	}

	holidays := calendar.Holidays(c, year)
	if holidays == nil {
		holidays = []civil.Date{}
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"calendar": name,
		"year":     year,
		"covered":  calendar.Covers(c, year),
		"holidays": holidays,
	})
}
