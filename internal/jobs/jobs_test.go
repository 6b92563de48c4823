package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"equishare-storefront/internal/config"
)

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) RefreshCatalogs(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessions) SweepIdle(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestRefreshCatalog(t *testing.T) {
	t.Run("invalidates cache then refreshes", func(t *testing.T) {
		sessions := new(MockSessions)
		cache := new(MockCache)
		cache.On("Invalidate", mock.Anything).Return(nil).Once()
		sessions.On("RefreshCatalogs", mock.Anything).Return(nil).Once()

		NewJobRunner(sessions, cache, &config.Config{}).RefreshCatalog()

		cache.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("refreshes even when cache fails", func(t *testing.T) {
		sessions := new(MockSessions)
		cache := new(MockCache)
		cache.On("Invalidate", mock.Anything).Return(errors.New("redis down"))
		sessions.On("RefreshCatalogs", mock.Anything).Return(nil).Once()

		NewJobRunner(sessions, cache, &config.Config{}).RefreshCatalog()

		sessions.AssertExpectations(t)
	})

	t.Run("without cache", func(t *testing.T) {
		sessions := new(MockSessions)
		sessions.On("RefreshCatalogs", mock.Anything).Return(errors.New("db down")).Once()

		assert.NotPanics(t, func() {
			NewJobRunner(sessions, nil, &config.Config{}).RefreshCatalog()
		})
		sessions.AssertExpectations(t)
	})
}

func TestExpireSessions(t *testing.T) {
	sessions := new(MockSessions)
	sessions.On("SweepIdle", mock.Anything).Return(3, nil).Once()

	NewJobRunner(sessions, nil, &config.Config{}).ExpireSessions()

	sessions.AssertExpectations(t)
}

func TestRunWithRecovery(t *testing.T) {
	jr := NewJobRunner(new(MockSessions), nil, &config.Config{})
	assert.NotPanics(t, func() {
		jr.runWithRecovery("boom", func(context.Context) { panic("job failed") })
	})

	var hadDeadline bool
	jr.runWithRecovery("deadline", func(ctx context.Context) {
		_, hadDeadline = ctx.Deadline()
	})
	assert.True(t, hadDeadline)
}
