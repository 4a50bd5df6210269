package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/newthinker/finquant/internal/api/response"
	"github.com/newthinker/finquant/internal/core"
)

// APIKeyAuth returns middleware that validates the X-API-Key header or an
// "Authorization: Bearer" token. If apiKey is empty, authentication is
// disabled. Requests to the public paths are never checked.
func APIKeyAuth(apiKey string, public ...string) func(http.Handler) http.Handler {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" || open[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			provided := providedKey(r)
			if provided == "" {
				response.Fail(w, core.ErrUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				response.Fail(w, core.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func providedKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
