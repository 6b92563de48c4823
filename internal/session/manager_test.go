package session

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/store"
)

var (
	baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	drill    = domain.CatalogItem{ID: 1, Name: "Drill", PricePerDayCents: 15000, Category: domain.CategoryPowerTools, Available: true}
	saw      = domain.CatalogItem{ID: 2, Name: "Saw", PricePerDayCents: 20000, Category: domain.CategoryCutting, Available: true}
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newManager(f *MockFetcher, idle time.Duration) (*Manager, *testClock) {
	clk := &testClock{now: baseTime}
	m := NewManager(f, idle)
	m.clock = clk.Now
	return m, clk
}

func TestManager_Create(t *testing.T) {
	t.Run("loads catalog", func(t *testing.T) {
		f := new(MockFetcher)
		f.On("FetchCatalog", mock.Anything).Return([]domain.CatalogItem{drill, saw}, nil).Once()
		m, _ := newManager(f, time.Hour)

		s, err := m.Create(context.Background(), domain.LocaleMarathi)
		require.NoError(t, err)
		assert.NotEmpty(t, s.ID)

		snap := s.Store.Snapshot()
		assert.Len(t, snap.Catalog, 2)
		assert.Equal(t, domain.LocaleMarathi, snap.Locale)
		assert.False(t, snap.Loading)
		assert.Equal(t, 1, m.Len())
		f.AssertExpectations(t)
	})

	t.Run("keeps session when load fails", func(t *testing.T) {
		f := new(MockFetcher)
		f.On("FetchCatalog", mock.Anything).Return(nil, errors.New("db down")).Once()
		m, _ := newManager(f, time.Hour)

		s, err := m.Create(context.Background(), domain.LocaleEnglish)
		require.Error(t, err)
		require.NotNil(t, s)

		snap := s.Store.Snapshot()
		assert.Empty(t, snap.Catalog)
		assert.Equal(t, "db down", snap.LoadError)
		_, ok := m.Lookup(s.ID)
		assert.True(t, ok)
	})
}

func TestManager_GetAndDelete(t *testing.T) {
	f := new(MockFetcher)
	f.On("FetchCatalog", mock.Anything).Return([]domain.CatalogItem{drill}, nil)
	m, clk := newManager(f, time.Hour)

	s, err := m.Create(context.Background(), domain.LocaleEnglish)
	require.NoError(t, err)

	clk.now = baseTime.Add(10 * time.Minute)
	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, clk.now, got.LastSeen())

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownSession)

	m.Delete(s.ID)
	_, err = m.Get(s.ID)
	assert.ErrorIs(t, err, ErrUnknownSession)
	assert.Equal(t, 0, m.Len())
}

func TestManager_SweepIdle(t *testing.T) {
	f := new(MockFetcher)
	f.On("FetchCatalog", mock.Anything).Return([]domain.CatalogItem{drill}, nil)
	m, clk := newManager(f, 30*time.Minute)

	stale, err := m.Create(context.Background(), domain.LocaleEnglish)
	require.NoError(t, err)

	clk.now = baseTime.Add(20 * time.Minute)
	fresh, err := m.Create(context.Background(), domain.LocaleEnglish)
	require.NoError(t, err)

	clk.now = baseTime.Add(45 * time.Minute)
	removed, err := m.SweepIdle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, ok := m.Lookup(stale.ID)
	assert.False(t, ok)
	_, ok = m.Lookup(fresh.ID)
	assert.True(t, ok)
}

func TestManager_RefreshCatalogs(t *testing.T) {
	f := new(MockFetcher)
	f.On("FetchCatalog", mock.Anything).Return([]domain.CatalogItem{drill}, nil).Twice()
	m, _ := newManager(f, time.Hour)

	a, err := m.Create(context.Background(), domain.LocaleEnglish)
	require.NoError(t, err)
	b, err := m.Create(context.Background(), domain.LocaleHindi)
	require.NoError(t, err)

	f.On("FetchCatalog", mock.Anything).Return([]domain.CatalogItem{drill, saw}, nil)
	require.NoError(t, m.RefreshCatalogs(context.Background()))

	assert.Len(t, a.Store.Snapshot().Catalog, 2)
	assert.Len(t, b.Store.Snapshot().Catalog, 2)
	assert.Equal(t, uint64(2), a.Store.Snapshot().CatalogGeneration)
}

func TestManager_CreateScopesStoreLogger(t *testing.T) {
	var buf bytes.Buffer
	logger.InitializeWithWriter(&buf, "debug", "json")
	defer logger.Initialize("info", "text")

	f := new(MockFetcher)
	f.On("FetchCatalog", mock.Anything).Return([]domain.CatalogItem{drill}, nil).Once()
	m, _ := newManager(f, time.Hour)

	s, err := m.Create(context.Background(), domain.LocaleEnglish)
	require.NoError(t, err)

	buf.Reset()
	out := s.Store.Dispatch(store.AddToCart{ItemID: 99})
	require.ErrorIs(t, out.Err, domain.ErrNotFound)
	assert.Contains(t, buf.String(), `"session_id":"`+s.ID+`"`)
	assert.Contains(t, buf.String(), "Intent referenced unknown entity")
}
