// Package session keeps one application store per browser session.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/order"
	"equishare-storefront/internal/store"
)

var ErrUnknownSession = errors.New("unknown session")

type Session struct {
	ID    string
	Store *store.Store

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	catalog  store.CatalogFetcher
	idle     time.Duration
	clock    func() time.Time
	orderIDs order.Sequence
}

func NewManager(catalog store.CatalogFetcher, idle time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		catalog:  catalog,
		idle:     idle,
		clock:    time.Now,
	}
}

// Create starts a session in the given locale and loads its catalog. A failed
// load still returns the session; the error is recorded in its state.
func (m *Manager) Create(ctx context.Context, locale domain.Locale) (*Session, error) {
	id := uuid.NewString()
	s := &Session{
		ID: id,
		Store: store.New(
			store.WithLocale(locale),
			store.WithClock(m.clock),
			store.WithOrderSequence(&m.orderIDs),
			store.WithLogger(logger.WithSession(id)),
		),
		lastSeen: m.clock(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	logger.Info("Session created", "sessionID", s.ID, "locale", locale)
	if err := s.Store.LoadCatalog(ctx, m.catalog); err != nil {
		logger.Warn("Initial catalog load failed", "sessionID", s.ID, "error", err)
		return s, err
	}
	return s, nil
}

// Get returns a live session and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownSession
	}
	s.touch(m.clock())
	return s, nil
}

// Lookup returns a session without refreshing its idle timer.
func (m *Manager) Lookup(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SweepIdle drops sessions not used within the idle timeout and returns how
// many were removed.
func (m *Manager) SweepIdle(ctx context.Context) (int, error) {
	cutoff := m.clock().Add(-m.idle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if s.LastSeen().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.Info("Expired idle sessions", "removed", removed, "remaining", len(m.sessions))
	}
	return removed, nil
}

// RefreshCatalogs reloads the catalog of every live session. It returns the
// first error after attempting all of them.
func (m *Manager) RefreshCatalogs(ctx context.Context) error {
	m.mu.RLock()
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.RUnlock()

	var firstErr error
	for _, s := range live {
		if err := s.Store.LoadCatalog(ctx, m.catalog); err != nil {
			logger.Warn("Catalog refresh failed", "sessionID", s.ID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
