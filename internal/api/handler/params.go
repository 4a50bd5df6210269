// Package handler implements the convention query endpoints.
package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/newthinker/finquant/internal/core"
)

func dateParam(r *http.Request, key string) (civil.Date, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return civil.Date{}, core.WrapError(core.ErrInvalidDate, fmt.Errorf("missing %s", key))
	}
	d, err := civil.ParseDate(raw)
	if err != nil {
		return civil.Date{}, core.WrapError(core.ErrInvalidDate, fmt.Errorf("%s: %w", key, err))
	}
	return d, nil
}

func yearParam(r *http.Request, key string) (int, error) {
	return yearValue(key, r.URL.Query().Get(key))
}

func yearValue(key, raw string) (int, error) {
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 || year > 9999 {
		return 0, core.WrapError(core.ErrInvalidDate, fmt.Errorf("%s: invalid year %q", key, raw))
	}
	return year, nil
}
