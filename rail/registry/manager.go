package registry

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mbeek/railyard/rail/consist"
	"github.com/mbeek/railyard/rail/fleet"
)

var (
	ErrSessionNotFound      = errors.New("yard session not found")
	ErrSessionAlreadyExists = errors.New("yard session already exists")
)

// Manager handles yard session lifecycle.
type Manager struct {
	sessions map[string]*fleet.YardSession
	mu       sync.RWMutex
}

// NewManager creates a new session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*fleet.YardSession),
	}
}

// Create materializes the given fixture into a new yard session. An
// empty id asks the manager to generate a short random one.
func (m *Manager) Create(id string, cfg *consist.YardConfig) (*fleet.YardSession, error) {
	if id == "" {
		id = m.generateSessionID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	yard, err := consist.BuildYard(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build yard: %w", err)
	}

	session := &fleet.YardSession{
		ID:             id,
		Yard:           yard,
		Fixture:        cfg,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}
	m.sessions[strings.ToLower(id)] = session
	return session, nil
}

// Get retrieves a session by id (case-insensitive).
func (m *Manager) Get(id string) (*fleet.YardSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// GetOrCreate gets an existing session or creates a new one from the
// given fixture.
func (m *Manager) GetOrCreate(id string, cfg *consist.YardConfig) (*fleet.YardSession, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}
	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, cfg)
	}
	return nil, err
}

// List returns all active sessions.
func (m *Manager) List() []*fleet.YardSession {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*fleet.YardSession, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

// Delete removes a session.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session.
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}
	session.LastAccessedAt = time.Now()
	return nil
}

// CleanupExpiredSessions removes sessions that have not been accessed in
// the given duration and returns how many were removed.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID generates a random 4-character session id.
func (m *Manager) generateSessionID() string {
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// sessionExists checks if a session exists (case-insensitive).
// Callers must hold the lock.
func (m *Manager) sessionExists(id string) bool {
	_, exists := m.sessions[strings.ToLower(id)]
	return exists
}
