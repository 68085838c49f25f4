package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/slide2048/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, seed *uint64) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error

	// Scores
	Leaderboard(ctx context.Context, configName string, limit int) ([]ScoreEntry, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, configID string, config *engine.GameConfig, seed uint64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// ScoreStore records finished games
type ScoreStore interface {
	Record(ctx context.Context, entry ScoreEntry) error
	Top(ctx context.Context, configID string, limit int) ([]ScoreEntry, error)
	Best(ctx context.Context, configID string) (ScoreEntry, bool, error)
}

// Session represents an active game session.
// Engine and LastAccessedAt are guarded by the session lock once the
// session is shared; use Lock/Unlock around engine calls and Snapshot to read.
type Session struct {
	ID             string
	ConfigID       string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu sync.Mutex
}

// Lock acquires the session lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch records an access at t.
func (s *Session) Touch(t time.Time) {
	s.mu.Lock()
	s.LastAccessedAt = t
	s.mu.Unlock()
}

// LastAccess returns the time of the last recorded access.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastAccessedAt
}

// Snapshot returns a deep copy of the game state together with the last
// access time, both read under the session lock.
func (s *Session) Snapshot() (*engine.GameState, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Engine.GetState().Clone(), s.LastAccessedAt
}
