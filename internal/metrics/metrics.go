package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Convention lookups
	calendarQueries    *prometheus.CounterVec
	dayCountQueries    *prometheus.CounterVec
	fxLookups          *prometheus.CounterVec
	snapshotsPublished *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),

		calendarQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finquant_calendar_queries_total",
				Help: "Total number of business-day queries",
			},
			[]string{"calendar", "business_day"},
		),

		dayCountQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finquant_daycount_queries_total",
				Help: "Total number of day-count computations",
			},
			[]string{"convention"},
		),

		fxLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finquant_fx_lookups_total",
				Help: "Total number of FX convention lookups",
			},
			[]string{"pair"},
		),

		snapshotsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finquant_snapshots_published_total",
				Help: "Total number of calendar snapshots written",
			},
			[]string{"calendar", "status"},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)
	reg.MustRegister(r.calendarQueries)
	reg.MustRegister(r.dayCountQueries)
	reg.MustRegister(r.fxLookups)
	reg.MustRegister(r.snapshotsPublished)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordCalendarQuery counts a business-day answer of a calendar.
func (r *Registry) RecordCalendarQuery(calendar string, businessDay bool) {
	r.calendarQueries.WithLabelValues(calendar, strconv.FormatBool(businessDay)).Inc()
}

// RecordDayCount counts a day-count computation.
func (r *Registry) RecordDayCount(convention string) {
	r.dayCountQueries.WithLabelValues(convention).Inc()
}

// RecordFXLookup counts a conventions lookup for a pair.
func (r *Registry) RecordFXLookup(pair string) {
	r.fxLookups.WithLabelValues(pair).Inc()
}

// RecordSnapshot counts a snapshot write attempt.
func (r *Registry) RecordSnapshot(calendar, status string) {
	r.snapshotsPublished.WithLabelValues(calendar, status).Inc()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
