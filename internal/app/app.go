// Package app wires configuration into the calendar registry, storage,
// publisher and HTTP server.
package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/newthinker/finquant/internal/api"
	"github.com/newthinker/finquant/internal/calendar"
	"github.com/newthinker/finquant/internal/config"
	"github.com/newthinker/finquant/internal/fx"
	"github.com/newthinker/finquant/internal/metrics"
	"github.com/newthinker/finquant/internal/publish"
	"github.com/newthinker/finquant/internal/storage/archive"
	"go.uber.org/zap"
)

// App is the main application orchestrator
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	calendars *calendar.Registry
	metrics   *metrics.Registry
}

// New builds the calendar registry from cfg, including configured
// composites. The config is expected to be validated.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		cfg = config.Defaults()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		calendars: calendar.DefaultRegistry(),
	}
	if cfg.Metrics.Enabled {
		a.metrics = metrics.NewRegistry()
	}

	// Sorted so a composite may reference one declared before it.
	names := make([]string, 0, len(cfg.Calendars.Composites))
	for name := range cfg.Calendars.Composites {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts := cfg.Calendars.Composites[name]
		if _, err := a.calendars.Compose(name, parts...); err != nil {
			return nil, fmt.Errorf("composite calendar %s: %w", name, err)
		}
		logger.Debug("registered composite calendar",
			zap.String("name", name),
			zap.Strings("parts", parts),
		)
	}

	if _, err := a.calendars.Get(cfg.Calendars.Default); err != nil {
		return nil, fmt.Errorf("default calendar: %w", err)
	}

	return a, nil
}

// Calendars returns the calendar registry.
func (a *App) Calendars() *calendar.Registry {
	return a.calendars
}

// Calendar resolves name, falling back to the configured default when
// name is empty.
func (a *App) Calendar(name string) (string, calendar.Calendar, error) {
	if name == "" {
		name = a.cfg.Calendars.Default
	}
	c, err := a.calendars.Get(name)
	return name, c, err
}

// Pairs returns the FX pairs served by the API.
func (a *App) Pairs() []fx.Underlying {
	return a.cfg.WatchedPairs()
}

// Metrics returns the metrics registry, or nil when metrics are disabled.
func (a *App) Metrics() *metrics.Registry {
	return a.metrics
}

// PublishFormat is the configured snapshot format.
func (a *App) PublishFormat() string {
	return a.cfg.Publish.Format
}

// Snapshots opens the configured storage behind a snapshot publisher.
func (a *App) Snapshots() (*publish.Publisher, error) {
	store, err := archive.New(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	return publish.NewPublisher(store, a.metrics, a.logger), nil
}

// Server builds the HTTP server.
func (a *App) Server() (*api.Server, error) {
	cfg := api.Config{
		Host:   a.cfg.Server.Host,
		Port:   a.cfg.Server.Port,
		APIKey: a.cfg.Server.APIKey,
	}
	if a.metrics != nil {
		cfg.MetricsPath = a.cfg.Metrics.Path
	}
	snapshots, err := a.Snapshots()
	if err != nil {
		return nil, err
	}
	return api.NewServer(cfg, api.Dependencies{
		Calendars: a.calendars,
		Pairs:     a.Pairs(),
		Snapshots: snapshots,
		Metrics:   a.metrics,
	}, a.logger)
}

// PublishOptions overrides the configured publish settings. Zero values
// keep the configured value.
type PublishOptions struct {
	Calendars []string
	FromYear  int
	ToYear    int
	Format    string

	// SkipExisting leaves snapshots already in storage untouched.
	SkipExisting bool
}

// Publish writes snapshots for every selected calendar to the configured
// storage and returns the written keys per calendar.
func (a *App) Publish(ctx context.Context, opts PublishOptions) (map[string][]string, error) {
	pc := a.cfg.Publish
	if len(opts.Calendars) > 0 {
		pc.Calendars = opts.Calendars
	}
	if opts.FromYear != 0 {
		pc.FromYear = opts.FromYear
	}
	if opts.ToYear != 0 {
		pc.ToYear = opts.ToYear
	}
	if opts.Format != "" {
		pc.Format = opts.Format
	}

	format, err := publish.ParseFormat(pc.Format)
	if err != nil {
		return nil, err
	}

	p, err := a.Snapshots()
	if err != nil {
		return nil, err
	}
	p.SetSkipExisting(opts.SkipExisting)

	written := make(map[string][]string, len(pc.Calendars))
	for _, name := range pc.Calendars {
		c, err := a.calendars.Get(name)
		if err != nil {
			return written, err
		}
		keys, err := p.Publish(ctx, name, c, pc.FromYear, pc.ToYear, format)
		written[name] = keys
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
