package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/ponyini/pkg/catalog"
)

// Pruner deletes catalog entries older than the retention period.
type Pruner struct {
	store  catalog.Store
	days   int
	now    func() time.Time
	logger *slog.Logger

	// onPrune is called with the number of deleted entries after every prune.
	onPrune func(int64)
}

// Option configures a Pruner.
type Option func(*Pruner)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pruner) { p.now = now }
}

// WithOnPrune registers a callback receiving the number of deleted entries.
func WithOnPrune(fn func(int64)) Option {
	return func(p *Pruner) { p.onPrune = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pruner) { p.logger = logger }
}

// NewPruner creates a pruner keeping entries for days. Zero days keeps
// entries forever.
func NewPruner(store catalog.Store, days int, opts ...Option) *Pruner {
	p := &Pruner{
		store:  store,
		days:   days,
		now:    time.Now,
		logger: slog.Default().With("component", "catalog.retention"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Cutoff returns the instant before which entries are deleted.
func (p *Pruner) Cutoff() time.Time {
	return p.now().AddDate(0, 0, -p.days)
}

// Prune deletes expired entries.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.days <= 0 {
		return 0, nil
	}

	cutoff := p.Cutoff()
	deleted, err := p.store.Prune(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune catalog: %w", err)
	}

	p.logger.Debug("catalog pruned", "cutoff", cutoff, "deleted_count", deleted)
	if p.onPrune != nil {
		p.onPrune(deleted)
	}
	return deleted, nil
}
