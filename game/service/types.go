package service

import (
	"time"

	"github.com/wricardo/slide2048/game/engine"
)

// Event types reported in move results
const (
	EventMove     = "move"
	EventBlocked  = "blocked"
	EventMerge    = "merge"
	EventSpawn    = "spawn"
	EventVictory  = "victory"
	EventGameOver = "game_over"
	EventReset    = "reset"
)

// Stop reason codes for bulk moves
const (
	StopGameOver         = "game_over"
	StopInvalidDirection = "invalid_direction"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
	BestScore      int                `json:"best_score,omitempty"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
	Step      *StepInfo         `json:"step,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	BlockedMoves   int               `json:"blocked_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // Machine-friendly code: game_over|invalid_direction
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartScore   int    `json:"start_score"`
	EndScore     int    `json:"end_score"`
	ScoreDelta   int    `json:"score_delta"`
	StartMaxTile uint32 `json:"start_max_tile"`
	EndMaxTile   uint32 `json:"end_max_tile"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Final status aids
	GameOver      bool     `json:"game_over"`
	Victory       bool     `json:"victory"`
	Message       string   `json:"message,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record for each executed move
type StepInfo struct {
	Idx         int    `json:"idx"`
	Dir         string `json:"dir"`
	Changed     bool   `json:"changed"`
	ScoreBefore int    `json:"score_before"`
	ScoreAfter  int    `json:"score_after"`
	Gained      int    `json:"gained,omitempty"`
	MaxTile     uint32 `json:"max_tile"`
	EmptyCells  int    `json:"empty_cells"`
	Victory     bool   `json:"victory,omitempty"`
	GameOver    bool   `json:"game_over,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"` // "move", "blocked", "merge", "spawn", "victory", "game_over", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Move      int       `json:"move,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	TargetTile  uint32 `json:"target_tile"`
}

// ScoreEntry is one finished game on the leaderboard
type ScoreEntry struct {
	SessionID  string    `json:"session_id"`
	ConfigID   string    `json:"config_id"`
	Seed       uint64    `json:"seed"`
	Score      int       `json:"score"`
	MaxTile    uint32    `json:"max_tile"`
	Moves      int       `json:"moves"`
	Victory    bool      `json:"victory"`
	FinishedAt time.Time `json:"finished_at"`
}
