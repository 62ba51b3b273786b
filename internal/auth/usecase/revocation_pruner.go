package usecase

import (
	"context"
	"log/slog"
	"time"

	authService "github.com/allisson/vending/internal/auth/service"
)

// RevocationPruner periodically removes revocation watermarks that can no longer reject
// any live access token.
type RevocationPruner struct {
	cache    authService.RevocationCache
	interval time.Duration
	logger   *slog.Logger
}

// NewRevocationPruner creates a RevocationPruner that prunes cache every interval.
func NewRevocationPruner(
	cache authService.RevocationCache,
	interval time.Duration,
	logger *slog.Logger,
) *RevocationPruner {
	return &RevocationPruner{
		cache:    cache,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the pruning loop until ctx is cancelled. Failed runs are logged and retried
// on the next tick.
func (p *RevocationPruner) Start(ctx context.Context) error {
	if p.logger != nil {
		p.logger.Info("starting revocation pruner", slog.Duration("interval", p.interval))
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if p.logger != nil {
				p.logger.Info("stopping revocation pruner")
			}
			return ctx.Err()
		case <-ticker.C:
			if _, err := p.PruneOnce(ctx); err != nil && p.logger != nil {
				p.logger.Error("failed to prune revocations", slog.Any("error", err))
			}
		}
	}
}

// PruneOnce runs a single pruning pass and returns how many entries were removed.
func (p *RevocationPruner) PruneOnce(ctx context.Context) (int, error) {
	removed, err := p.cache.Prune(ctx)
	if err != nil {
		return 0, err
	}

	if removed > 0 && p.logger != nil {
		p.logger.Debug("pruned revocations", slog.Int("count", removed))
	}
	return removed, nil
}
