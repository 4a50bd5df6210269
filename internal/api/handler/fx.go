package handler

import (
	"net/http"

	"github.com/newthinker/finquant/internal/api/response"
	"github.com/newthinker/finquant/internal/fx"
	"github.com/newthinker/finquant/internal/metrics"
)

// FXHandler serves FX pair conventions.
type FXHandler struct {
	pairs   []fx.Underlying
	metrics *metrics.Registry
}

// NewFXHandler creates an FX handler listing pairs. reg may be nil.
func NewFXHandler(pairs []fx.Underlying, reg *metrics.Registry) *FXHandler {
	return &FXHandler{pairs: pairs, metrics: reg}
}

// List handles GET /api/v1/fx/pairs
func (h *FXHandler) List(w http.ResponseWriter, r *http.Request) {
	out := make([]fx.Conventions, 0, len(h.pairs))
	for _, u := range h.pairs {
		out = append(out, u.Conventions())
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"pairs": out,
	})
}

// Currencies handles GET /api/v1/fx/currencies
func (h *FXHandler) Currencies(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]any{
		"currencies": fx.Currencies(),
	})
}

// Get handles GET /api/v1/fx/pairs/{pair}
func (h *FXHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := fx.ParseUnderlying(r.PathValue("pair"))
	if err != nil {
		response.Fail(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.RecordFXLookup(u.String())
	}
	response.JSON(w, http.StatusOK, u.Conventions())
}
