package handler

import (
	"net/http"

	"github.com/newthinker/finquant/internal/api/response"
	"github.com/newthinker/finquant/internal/publish"
)

// SnapshotsHandler serves published calendar snapshots.
type SnapshotsHandler struct {
	snapshots *publish.Publisher
}

// NewSnapshotsHandler creates a snapshots handler.
func NewSnapshotsHandler(snapshots *publish.Publisher) *SnapshotsHandler {
	return &SnapshotsHandler{snapshots: snapshots}
}

// List handles GET /api/v1/snapshots/{calendar}
func (h *SnapshotsHandler) List(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("calendar")
	keys, err := h.snapshots.Stored(r.Context(), name)
	if err != nil {
		response.Fail(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"calendar":  name,
		"snapshots": keys,
	})
}

// Get handles GET /api/v1/snapshots/{calendar}/{year}?format=csv|json and
// returns the stored file as is.
func (h *SnapshotsHandler) Get(w http.ResponseWriter, r *http.Request) {
	year, err := yearValue("year", r.PathValue("year"))
	if err != nil {
		response.Fail(w, err)
		return
	}
	raw := r.URL.Query().Get("format")
	if raw == "" {
		raw = string(publish.FormatJSON)
	}
	format, err := publish.ParseFormat(raw)
	if err != nil {
		response.Fail(w, err)
		return
	}

	data, err := h.snapshots.Fetch(r.Context(), r.PathValue("calendar"), year, format)
	if err != nil {
		response.Fail(w, err)
		return
	}

	contentType := "application/json"
	if format == publish.FormatCSV {
		contentType = "text/csv"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
