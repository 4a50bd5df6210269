package handler

import (
	"net/http"

	"github.com/newthinker/finquant/internal/api/response"
	"github.com/newthinker/finquant/internal/daycount"
	"github.com/newthinker/finquant/internal/metrics"
)

// YearFractionResult is the accrual between two dates under a convention.
type YearFractionResult struct {
	Convention   string  `json:"convention"`
	Days         int     `json:"days"`
	YearFraction float64 `json:"year_fraction"`
}

// DayCountHandler serves day count queries.
type DayCountHandler struct {
	metrics *metrics.Registry
}

// NewDayCountHandler creates a day count handler. reg may be nil.
func NewDayCountHandler(reg *metrics.Registry) *DayCountHandler {
	return &DayCountHandler{metrics: reg}
}

// YearFraction handles GET /api/v1/daycount?convention=ACT/360&start=..&end=..
func (h *DayCountHandler) YearFraction(w http.ResponseWriter, r *http.Request) {
	dc, err := daycount.Parse(r.URL.Query().Get("convention"))
	if err != nil {
		response.Fail(w, err)
		return
	}
	start, err := dateParam(r, "start")
	if err != nil {
		response.Fail(w, err)
		return
	}
	end, err := dateParam(r, "end")
	if err != nil {
		response.Fail(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordDayCount(dc.Name())
	}
	response.JSON(w, http.StatusOK, YearFractionResult{
		Convention:   dc.Name(),
		Days:         dc.DayCount(start, end),
		YearFraction: dc.YearFraction(start, end),
	})
}

// Conventions handles GET /api/v1/daycount/conventions
func (h *DayCountHandler) Conventions(w http.ResponseWriter, r *http.Request) {
	conventions := daycount.Conventions()
	names := make([]string, 0, len(conventions))
	for _, dc := range conventions {
		names = append(names, dc.Name())
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"conventions": names,
	})
}
