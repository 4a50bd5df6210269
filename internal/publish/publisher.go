package publish

import (
	"context"
	"fmt"

	"github.com/newthinker/finquant/internal/calendar"
	"github.com/newthinker/finquant/internal/core"
	"github.com/newthinker/finquant/internal/metrics"
	"github.com/newthinker/finquant/internal/storage/archive"
	"go.uber.org/zap"
)

// Publisher writes yearly calendar snapshots to storage.
type Publisher struct {
	store        archive.Storage
	metrics      *metrics.Registry
	logger       *zap.Logger
	skipExisting bool
}

// NewPublisher creates a publisher. reg may be nil.
func NewPublisher(store archive.Storage, reg *metrics.Registry, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{store: store, metrics: reg, logger: logger}
}

// SetSkipExisting makes Publish leave already stored snapshots untouched.
func (p *Publisher) SetSkipExisting(skip bool) {
	p.skipExisting = skip
}

// Publish writes one snapshot per year in [from, to] and returns the keys
// written. Skipped snapshots are not returned. It stops at the first
// failure or when ctx is cancelled.
func (p *Publisher) Publish(ctx context.Context, name string, c calendar.Calendar, from, to int, format Format) ([]string, error) {
	if from > to {
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("from year %d is after to year %d", from, to))
	}

	keys := make([]string, 0, to-from+1)
	for year := from; year <= to; year++ {
		if err := ctx.Err(); err != nil {
			return keys, err
		}

		key := Key(name, year, format)
		if p.skipExisting {
			exists, err := p.store.Exists(ctx, key)
			if err != nil {
				p.record(name, "error")
				return keys, fmt.Errorf("checking %s %d: %w", name, year, err)
			}
			if exists {
				p.record(name, "skipped")
				p.logger.Debug("snapshot exists, skipping", zap.String("key", key))
				continue
			}
		}

		snap := Build(name, c, year)
		data, err := snap.Encode(format)
		if err != nil {
			return keys, err
		}

		if err := p.store.Write(ctx, key, data); err != nil {
			p.record(name, "error")
			p.logger.Error("snapshot write failed",
				zap.String("calendar", name),
				zap.Int("year", year),
				zap.Error(err),
			)
			return keys, fmt.Errorf("publishing %s %d: %w", name, year, err)
		}
		p.record(name, "ok")

		fields := []zap.Field{
			zap.String("calendar", name),
			zap.Int("year", year),
			zap.String("key", key),
			zap.Int("business_days", snap.BusinessDays()),
		}
		if !snap.Covered {
			p.logger.Warn("year outside holiday table, weekend and fixed holidays only", fields...)
		} else {
			p.logger.Debug("snapshot written", fields...)
		}
		keys = append(keys, key)
	}

	p.logger.Info("calendar published",
		zap.String("calendar", name),
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Int("snapshots", len(keys)),
	)
	return keys, nil
}

func (p *Publisher) record(name, status string) {
	if p.metrics != nil {
		p.metrics.RecordSnapshot(name, status)
	}
}

// Stored lists the snapshot keys stored for a calendar.
func (p *Publisher) Stored(ctx context.Context, name string) ([]string, error) {
	return p.store.List(ctx, "calendars/"+calendar.Normalize(name)+"/")
}

// Fetch reads a stored snapshot.
func (p *Publisher) Fetch(ctx context.Context, name string, year int, format Format) ([]byte, error) {
	key := Key(name, year, format)
	if err := p.mustExist(ctx, key); err != nil {
		return nil, err
	}
	return p.store.Read(ctx, key)
}

// Remove deletes a stored snapshot.
func (p *Publisher) Remove(ctx context.Context, name string, year int, format Format) error {
	key := Key(name, year, format)
	if err := p.mustExist(ctx, key); err != nil {
		return err
	}
	if err := p.store.Delete(ctx, key); err != nil {
		return err
	}
	p.logger.Info("snapshot removed", zap.String("key", key))
	return nil
}

func (p *Publisher) mustExist(ctx context.Context, key string) error {
	exists, err := p.store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return core.WrapError(core.ErrSnapshotNotFound, fmt.Errorf("%s", key))
	}
	return nil
}
