package jobs

import (
	"context"

	"equishare-storefront/internal/logger"
)

// RefreshCatalog drops the cached catalog and reloads it into every live session
func (jr *JobRunner) RefreshCatalog() {
	jr.runWithRecovery("RefreshCatalog", func(ctx context.Context) {
		if jr.cache != nil {
			if err := jr.cache.Invalidate(ctx); err != nil {
				logger.Warn("Failed to invalidate catalog cache", "error", err)
			}
		}

		if err := jr.sessions.RefreshCatalogs(ctx); err != nil {
			logger.Error("Failed to refresh session catalogs", "error", err)
		}
	})
}

// ExpireSessions removes sessions idle for longer than the configured timeout
func (jr *JobRunner) ExpireSessions() {
	jr.runWithRecovery("ExpireSessions", func(ctx context.Context) {
		removed, err := jr.sessions.SweepIdle(ctx)
		if err != nil {
			logger.Error("Failed to expire idle sessions", "error", err)
			return
		}
		logger.Debug("Idle session sweep finished", "removed", removed)
	})
}
