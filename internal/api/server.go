// Package api serves the convention queries over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/newthinker/finquant/internal/api/handler"
	"github.com/newthinker/finquant/internal/api/middleware"
	"github.com/newthinker/finquant/internal/calendar"
	"github.com/newthinker/finquant/internal/fx"
	"github.com/newthinker/finquant/internal/metrics"
	"github.com/newthinker/finquant/internal/publish"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server for the convention service.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	APIKey      string
	MetricsPath string // empty disables the metrics endpoint
}

// Dependencies holds the components served by the API.
type Dependencies struct {
	Calendars *calendar.Registry
	Pairs     []fx.Underlying
	Snapshots *publish.Publisher // optional
	Metrics   *metrics.Registry  // optional
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.Calendars == nil {
		return nil, fmt.Errorf("calendar registry is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	s := &Server{
		logger: logger,
		mux:    mux,
	}
	s.setupRoutes(cfg, deps)

	var h http.Handler = mux
	public := []string{"/api/health"}
	if deps.Metrics != nil && cfg.MetricsPath != "" {
		public = append(public, cfg.MetricsPath)
	}
	h = middleware.APIKeyAuth(cfg.APIKey, public...)(h)
	if deps.Metrics != nil {
		h = metrics.HTTPMiddleware(deps.Metrics)(h)
	}
	h = metrics.LoggingMiddleware(logger)(h)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	calendars := handler.NewCalendarsHandler(deps.Calendars, deps.Metrics)
	s.mux.HandleFunc("GET /api/v1/calendars", calendars.List)
	s.mux.HandleFunc("GET /api/v1/calendars/{name}/business-day", calendars.BusinessDay)
	s.mux.HandleFunc("GET /api/v1/calendars/{name}/holidays", calendars.Holidays)

	dayCount := handler.NewDayCountHandler(deps.Metrics)
	s.mux.HandleFunc("GET /api/v1/daycount", dayCount.YearFraction)
	s.mux.HandleFunc("GET /api/v1/daycount/conventions", dayCount.Conventions)

	pairs := handler.NewFXHandler(deps.Pairs, deps.Metrics)
	s.mux.HandleFunc("GET /api/v1/fx/currencies", pairs.Currencies)
	s.mux.HandleFunc("GET /api/v1/fx/pairs", pairs.List)
	s.mux.HandleFunc("GET /api/v1/fx/pairs/{pair}", pairs.Get)

	if deps.Snapshots != nil {
		snapshots := handler.NewSnapshotsHandler(deps.Snapshots)
		s.mux.HandleFunc("GET /api/v1/snapshots/{calendar}", snapshots.List)
		s.mux.HandleFunc("GET /api/v1/snapshots/{calendar}/{year}", snapshots.Get)
	}

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if deps.Metrics != nil && cfg.MetricsPath != "" {
		s.mux.Handle("GET "+cfg.MetricsPath, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}
}

// Handler returns the fully wrapped root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
