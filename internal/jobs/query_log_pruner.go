package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// QueryLogStore deletes old query log entries.
type QueryLogStore interface {
	DeleteQueryLogsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// QueryLogPruner periodically removes query log entries past the retention window.
type QueryLogPruner struct {
	store     QueryLogStore
	interval  time.Duration
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewQueryLogPruner creates a new pruner.
func NewQueryLogPruner(store QueryLogStore, interval, retention time.Duration, logger *zap.Logger) *QueryLogPruner {
	return &QueryLogPruner{
		store:     store,
		interval:  interval,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Start runs the prune loop until ctx is cancelled.
func (p *QueryLogPruner) Start(ctx context.Context) {
	p.logger.Info("query log pruner started",
		zap.Duration("interval", p.interval),
		zap.Duration("retention", p.retention))

	// Run immediately on start
	p.pruneOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("query log pruner stopped")
			return
		case <-ticker.C:
			p.pruneOnce(ctx)
		}
	}
}

func (p *QueryLogPruner) pruneOnce(ctx context.Context) {
	cutoff := p.now().Add(-p.retention)
	deleted, err := p.store.DeleteQueryLogsBefore(ctx, cutoff)
	if err != nil {
		p.logger.Error("query log prune failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		p.logger.Info("pruned query log", zap.Int64("deleted", deleted), zap.Time("cutoff", cutoff))
	}
}
