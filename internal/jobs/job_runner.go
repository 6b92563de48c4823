package jobs

import (
	"context"
	"time"

	"equishare-storefront/internal/config"
	"equishare-storefront/internal/logger"
)

const defaultJobTimeout = 2 * time.Minute

// Sessions is the part of the session manager the jobs drive
type Sessions interface {
	RefreshCatalogs(ctx context.Context) error
	SweepIdle(ctx context.Context) (int, error)
}

// CacheInvalidator drops the shared catalog cache entry
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	sessions Sessions
	cache    CacheInvalidator
	config   *config.Config
	timeout  time.Duration
}

// NewJobRunner creates a new job runner. cache may be nil when no cache is configured.
func NewJobRunner(sessions Sessions, cache CacheInvalidator, cfg *config.Config) *JobRunner {
	return &JobRunner{
		sessions: sessions,
		cache:    cache,
		config:   cfg,
		timeout:  defaultJobTimeout,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	logger.Info("Starting job", "job", jobName)
	jobFunc(ctx)
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.RefreshCatalog()
	jr.ExpireSessions()
}
