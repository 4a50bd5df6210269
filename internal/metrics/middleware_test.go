package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	})
}

func TestHTTPMiddleware_RecordsRequest(t *testing.T) {
	tests := []struct {
		path   string
		code   int
		status string
	}{
		{"/api/v1/calendars", http.StatusOK, "2xx"},
		{"/api/v1/calendars/nyse/holidays", http.StatusNotFound, "4xx"},
		{"/api/v1/fx/pairs", http.StatusInternalServerError, "5xx"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			reg := NewRegistry()
			w := httptest.NewRecorder()
			HTTPMiddleware(reg)(statusHandler(tt.code)).ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))

			if w.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, w.Code)
			}
			total := findFamily(t, reg, "http_requests_total")
			if total == nil || len(total.GetMetric()) != 1 {
				t.Fatalf("expected one http_requests_total series, got %v", total)
			}
			m := total.GetMetric()[0]
			if got := labelValue(m, "status"); got != tt.status {
				t.Errorf("status label = %s, want %s", got, tt.status)
			}
			if got := labelValue(m, "path"); got != UnmatchedRoute {
				t.Errorf("path label = %s, want %s", got, UnmatchedRoute)
			}
			if findFamily(t, reg, "http_request_duration_seconds") == nil {
				t.Error("expected http_request_duration_seconds to be recorded")
			}
		})
	}
}

func TestHTTPMiddleware_TracksInFlight(t *testing.T) {
	reg := NewRegistry()
	inFlight := func() float64 {
		mf := findFamily(t, reg, "http_requests_in_flight")
		if mf == nil {
			return -1
		}
		return mf.GetMetric()[0].GetGauge().GetValue()
	}

	var during float64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = inFlight()
	})
	HTTPMiddleware(reg)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/health", nil))

	if during != 1 {
		t.Errorf("expected 1 request in flight, got %v", during)
	}
	if after := inFlight(); after != 0 {
		t.Errorf("expected 0 requests in flight after completion, got %v", after)
	}
}

func TestHTTPMiddleware_UsesRoutePattern(t *testing.T) {
	reg := NewRegistry()

	mux := http.NewServeMux()
	mux.Handle("GET /api/v1/calendars/{name}/holidays", statusHandler(http.StatusOK))
	wrapped := HTTPMiddleware(reg)(mux)

	for _, name := range []string{"taiwan", "weekends"} {
		wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/calendars/"+name+"/holidays", nil))
	}

	total := findFamily(t, reg, "http_requests_total")
	if total == nil || len(total.GetMetric()) != 1 {
		t.Fatalf("expected a single series, got %v", total)
	}
	m := total.GetMetric()[0]
	if got := labelValue(m, "path"); got != "GET /api/v1/calendars/{name}/holidays" {
		t.Errorf("unexpected path label %s", got)
	}
	if got := m.GetCounter().GetValue(); got != 2 {
		t.Errorf("expected 2 requests, got %v", got)
	}
}

func TestHTTPMiddleware_RejectedAndUnknownPathsShareOneSeries(t *testing.T) {
	reg := NewRegistry()

	mux := http.NewServeMux()
	mux.Handle("GET /api/v1/fx/pairs/{pair}", statusHandler(http.StatusOK))
	// Rejects before the mux, like API key auth does.
	guard := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	})
	wrapped := HTTPMiddleware(reg)(guard)

	for i := 0; i < 20; i++ {
		wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", fmt.Sprintf("/api/v1/fx/pairs/X%d", i), nil))

		req := httptest.NewRequest("GET", fmt.Sprintf("/nope/%d", i), nil)
		req.Header.Set("X-API-Key", "k")
		wrapped.ServeHTTP(httptest.NewRecorder(), req)
	}

	total := findFamily(t, reg, "http_requests_total")
	if total == nil {
		t.Fatal("expected http_requests_total to be recorded")
	}
	if len(total.GetMetric()) != 1 {
		t.Fatalf("expected a single series, got %d", len(total.GetMetric()))
	}
	m := total.GetMetric()[0]
	if got := labelValue(m, "path"); got != UnmatchedRoute {
		t.Errorf("unexpected path label %s", got)
	}
	if got := m.GetCounter().GetValue(); got != 40 {
		t.Errorf("expected 40 requests, got %v", got)
	}
}

// captureLogs returns a JSON logger writing into the returned buffer.
func captureLogs() (*zap.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(&buf), zapcore.InfoLevel)), &buf
}

func serveLogged(t *testing.T, req *http.Request, code int) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	log, buf := captureLogs()
	w := httptest.NewRecorder()
	LoggingMiddleware(log)(statusHandler(code)).ServeHTTP(w, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v, log: %s", err, buf.String())
	}
	return entry, w
}

func TestLoggingMiddleware_Fields(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/fx/pairs", nil)
	req.RemoteAddr = "192.168.1.1:12345"

	entry, w := serveLogged(t, req, http.StatusOK)

	if entry["msg"] != "http request" {
		t.Errorf("unexpected message %v", entry["msg"])
	}
	if entry["method"] != "GET" {
		t.Errorf("expected method GET, got %v", entry["method"])
	}
	if entry["path"] != "/api/v1/fx/pairs" {
		t.Errorf("expected path /api/v1/fx/pairs, got %v", entry["path"])
	}
	if entry["status"] != 200.0 {
		t.Errorf("expected status 200, got %v", entry["status"])
	}
	if _, ok := entry["duration_ms"]; !ok {
		t.Error("expected duration_ms in log entry")
	}
	if entry["client_ip"] != "192.168.1.1:12345" {
		t.Errorf("unexpected client_ip %v", entry["client_ip"])
	}

	id := w.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if entry["request_id"] != id {
		t.Errorf("expected request_id %s, got %v", id, entry["request_id"])
	}
}

func TestLoggingMiddleware_XForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.50, 10.0.0.2")
	req.RemoteAddr = "10.0.0.1:54321"

	entry, _ := serveLogged(t, req, http.StatusOK)

	if entry["client_ip"] != "203.0.113.50" {
		t.Errorf("expected client_ip 203.0.113.50, got %v", entry["client_ip"])
	}
}

func TestLoggingMiddleware_ReusesIncomingRequestID(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/daycount", nil)
	req.Header.Set(RequestIDHeader, "req-42")

	entry, w := serveLogged(t, req, http.StatusBadRequest)

	if got := w.Header().Get(RequestIDHeader); got != "req-42" {
		t.Errorf("expected request ID req-42, got %q", got)
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("expected request_id req-42, got %v", entry["request_id"])
	}
	if entry["status"] != 400.0 {
		t.Errorf("expected status 400, got %v", entry["status"])
	}
}
