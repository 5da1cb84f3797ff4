package table

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// DefaultSessionTTL is how long an idle session survives a Sweep.
const DefaultSessionTTL = 30 * time.Minute

type session struct {
	mu       sync.Mutex
	table    *Table
	lastSeen time.Time
}

// Manager owns the live table sessions. Sessions are isolated from each
// other; calls on one session are serialized.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session
	clock    quartz.Clock
	ttl      time.Duration
	logger   *log.Logger
}

// NewManager creates a session manager. A zero ttl uses DefaultSessionTTL.
func NewManager(clock quartz.Clock, ttl time.Duration, logger *log.Logger) *Manager {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		sessions: make(map[string]*session),
		clock:    clock,
		ttl:      ttl,
		logger:   logger.WithPrefix("sessions"),
	}
}

// Create builds a table from cfg and returns its session ID.
func (m *Manager) Create(cfg Config) (string, error) {
	id := uuid.NewString()
	t, err := New(cfg, WithID(id), WithClock(m.clock), WithLogger(m.logger))
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.sessions[id] = &session{table: t, lastSeen: m.clock.Now()}
	m.mu.Unlock()

	m.logger.Info("session created", "id", id, "seats", len(cfg.Seats))
	return id, nil
}

// StartHand deals the next hand at the session's table.
func (m *Manager) StartHand(id string) (Snapshot, error) {
	var snap Snapshot
	err := m.with(id, func(t *Table) error {
		var err error
		snap, err = t.StartHand()
		return err
	})
	return snap, err
}

// Act submits a human action to the session's table.
func (m *Manager) Act(id string, req ActionRequest) (Snapshot, error) {
	var snap Snapshot
	err := m.with(id, func(t *Table) error {
		var err error
		snap, err = t.Act(req)
		return err
	})
	return snap, err
}

// Snapshot returns the session's state as seen by its human seat.
func (m *Manager) Snapshot(id string) (Snapshot, error) {
	var snap Snapshot
	err := m.with(id, func(t *Table) error {
		snap = t.Snapshot(t.viewer)
		return nil
	})
	return snap, err
}

// Stats returns the session's per-seat statistics.
func (m *Manager) Stats(id string) ([]SeatStats, error) {
	var stats []SeatStats
	err := m.with(id, func(t *Table) error {
		stats = t.Stats()
		return nil
	})
	return stats, err
}

// Remove ends a session.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, id)
	return nil
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep() int {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastSeen)
		s.mu.Unlock()
		if idle > m.ttl {
			delete(m.sessions, id)
			removed++
			m.logger.Info("session expired", "id", id, "idle", idle)
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) with(id string, fn func(*Table) error) error {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = m.clock.Now()
	return fn(s.table)
}
