package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equishare-storefront/internal/config"
	"equishare-storefront/internal/jobs"
)

func TestNewScheduler(t *testing.T) {
	t.Run("registers both jobs", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{
			RefreshCatalog: "0 */5 * * * *",
			ExpireSessions: "0 * * * * *",
		}}

		s, err := NewScheduler(jobs.NewJobRunner(nil, nil, cfg))
		require.NoError(t, err)
		assert.Equal(t, 2, s.Entries())

		s.Start()
		s.Stop()
	})

	t.Run("rejects bad spec", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{
			RefreshCatalog: "every five minutes",
			ExpireSessions: "0 * * * * *",
		}}

		_, err := NewScheduler(jobs.NewJobRunner(nil, nil, cfg))
		assert.Error(t, err)
	})
}
