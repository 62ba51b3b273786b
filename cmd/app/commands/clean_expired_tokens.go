package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// ExpiredRefreshTokenPurger removes refresh tokens that expired long enough ago.
type ExpiredRefreshTokenPurger interface {
	PurgeExpiredRefreshTokens(ctx context.Context, olderThanDays int, dryRun bool) (int64, error)
}

// RunCleanExpiredRefreshTokens deletes refresh tokens that expired more than days ago.
// With dryRun it only reports how many would be deleted.
func RunCleanExpiredRefreshTokens(
	ctx context.Context,
	purger ExpiredRefreshTokenPurger,
	logger *slog.Logger,
	writer io.Writer,
	days int,
	dryRun bool,
	format string,
) error {
	if days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", days)
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("cleaning expired refresh tokens",
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)

	count, err := purger.PurgeExpiredRefreshTokens(ctx, days, dryRun)
	if err != nil {
		return fmt.Errorf("failed to clean expired refresh tokens: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]any{
			"count":   count,
			"days":    days,
			"dry_run": dryRun,
		}); err != nil {
			return err
		}
	} else {
		verb := "Successfully deleted"
		if dryRun {
			verb = "Dry-run mode: Would delete"
		}
		_, _ = fmt.Fprintf(writer, "%s %d expired refresh token(s) older than %d day(s)\n", verb, count, days)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Int("days", days),
		slog.Bool("dry_run", dryRun),
	)
	return nil
}
