package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/slide2048/game/engine"
	"github.com/wricardo/slide2048/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// maxIDAttempts bounds the retries when a generated ID collides
const maxIDAttempts = 16

// Manager handles game session lifecycle
type Manager struct {
	sessions    map[string]*service.Session
	persistence SessionPersistence
	mu          sync.RWMutex
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a new session manager with persistence
func NewManagerWithPersistence(persistence SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

// Create creates a new session with the given ID, configuration and seed.
// An empty id generates a fresh 4-character one.
func (m *Manager) Create(id, configID string, config *engine.GameConfig, seed uint64) (*service.Session, error) {
	if strings.ContainsAny(id, `/\ `) {
		return nil, ErrInvalidSessionID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		generated, err := m.uniqueSessionID()
		if err != nil {
			return nil, err
		}
		id = generated
	} else if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	eng, err := engine.NewEngine(config, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	now := time.Now()
	session := &service.Session{
		ID:             id,
		ConfigID:       configID,
		Engine:         eng,
		Config:         config,
		CreatedAt:      now,
		LastAccessedAt: now,
	}

	m.sessions[strings.ToLower(id)] = session

	// Auto-save if persistence is enabled
	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			// Log error but don't fail the creation
			log.Printf("Warning: Failed to persist session %s: %v", id, err)
		}
	}

	return session, nil
}

// Get retrieves a session by ID (case-insensitive), falling back to persistence
func (m *Manager) Get(id string) (*service.Session, error) {
	key := strings.ToLower(id)

	m.mu.RLock()
	session, exists := m.sessions[key]
	m.mu.RUnlock()

	if exists {
		return session, nil
	}

	if m.persistence != nil && m.persistence.Exists(id) {
		loaded, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		// Another caller may have loaded it first
		if existing, ok := m.sessions[key]; ok {
			return existing, nil
		}
		m.sessions[key] = loaded
		return loaded, nil
	}

	return nil, ErrSessionNotFound
}

// GetOrCreate returns the session with id, creating it from config and seed when it does not exist.
// The bool result reports whether a new session was created.
func (m *Manager) GetOrCreate(id, configID string, config *engine.GameConfig, seed uint64) (*service.Session, bool, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, false, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, false, err
	}

	session, err = m.Create(id, configID, config, seed)
	if errors.Is(err, ErrSessionAlreadyExists) {
		// Lost a race with another creator
		session, err = m.Get(id)
		return session, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return session, true, nil
}

// List returns all active sessions, oldest first
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	sortByCreation(result)

	return result
}

// Delete removes a session from memory and persistence
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	_, inMemory := m.sessions[key]
	delete(m.sessions, key)

	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}

	if !inMemory {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteFromMemory removes a session from memory only (not from persistence)
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, exists := m.sessions[key]; !exists {
		return ErrSessionNotFound
	}
	delete(m.sessions, key)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return ErrSessionNotFound
	}

	session.Touch(time.Now())
	return nil
}

// Save saves a specific session to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}

	return m.persistence.Save(session)
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the
// given duration from memory. Persisted copies stay on disk.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, session := range m.sessions {
		if session.LastAccess().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// uniqueSessionID generates a random 4-character ID not in use. Callers hold m.mu.
func (m *Manager) uniqueSessionID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		bytes := make([]byte, 2)
		if _, err := rand.Read(bytes); err != nil {
			return "", fmt.Errorf("failed to generate session ID: %w", err)
		}
		id := hex.EncodeToString(bytes)
		if !m.sessionExists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: no free ID after %d attempts", ErrSessionAlreadyExists, maxIDAttempts)
}

// sessionExists checks memory and persistence for an ID. Callers hold m.mu.
func (m *Manager) sessionExists(id string) bool {
	if _, exists := m.sessions[strings.ToLower(id)]; exists {
		return true
	}
	return m.persistence != nil && m.persistence.Exists(id)
}

// LoadPersistedSessions loads all persisted sessions into memory
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessionIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loadedCount := 0
	for _, id := range sessionIDs {
		if _, exists := m.sessions[strings.ToLower(id)]; exists {
			continue
		}

		session, err := m.persistence.Load(id)
		if err != nil {
			log.Printf("Warning: Failed to load persisted session %s: %v", id, err)
			continue
		}

		m.sessions[strings.ToLower(id)] = session
		loadedCount++
	}

	if loadedCount > 0 {
		log.Printf("Loaded %d persisted sessions from storage", loadedCount)
	}

	return nil
}

// SaveAllSessions saves all in-memory sessions to persistence
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessions := m.List()

	errorCount := 0
	for _, session := range sessions {
		if err := m.persistence.Save(session); err != nil {
			log.Printf("Warning: Failed to save session %s: %v", session.ID, err)
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("failed to save %d sessions", errorCount)
	}

	return nil
}

func sortByCreation(sessions []*service.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
}
