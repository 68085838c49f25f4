package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// EmptyCell marks a cell with no tile.
	EmptyCell uint32 = 0

	// SpawnValue is the value of every tile placed at game start and after a move.
	SpawnValue uint32 = 2

	// StartTiles is the number of tiles on a freshly created board.
	StartTiles = 2

	// Validation constants
	MinGridSize       = 2
	MaxGridSize       = 16
	DefaultGridSize   = 4
	DefaultTargetTile = 2048
	MaxBulkMoves      = 100
)

var (
	ErrInvalidSize      = errors.New("invalid grid size")
	ErrInvalidCells     = errors.New("invalid cells")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrNilRandom        = errors.New("random source is required")
	ErrStateMismatch    = errors.New("state does not match config")
)

// Direction is the edge tiles slide toward.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in a stable order.
var Directions = []Direction{Up, Down, Left, Right}

// String returns the lowercase name used on the wire.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts "up", "down", "left" or "right" (any case) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// MarshalJSON encodes the direction as its name.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a direction name.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// vertical reports whether the move is processed on the transposed grid.
func (d Direction) vertical() bool {
	return d == Up || d == Down
}

// towardEnd reports whether lines compact toward their last index.
func (d Direction) towardEnd() bool {
	return d == Right || d == Down
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	TargetTile  uint32 `json:"target_tile,omitempty"`
	Messages    struct {
		Welcome  string `json:"welcome"`
		Moved    string `json:"moved"`
		Blocked  string `json:"blocked"`
		Victory  string `json:"victory"`
		GameOver string `json:"game_over"`
	} `json:"messages"`
}

// Target returns the configured winning tile, falling back to DefaultTargetTile.
func (c *GameConfig) Target() uint32 {
	if c == nil || c.TargetTile == 0 {
		return DefaultTargetTile
	}
	return c.TargetTile
}

// GameState represents the complete game state
type GameState struct {
	Size       int      `json:"size"`
	Cells      []uint32 `json:"cells"`
	Score      int      `json:"score"`
	MaxTile    uint32   `json:"max_tile"`
	TargetTile uint32   `json:"target_tile"`
	Seed       uint64   `json:"seed"`
	Message    string   `json:"message"`
	GameOver   bool     `json:"game_over"`
	Victory    bool     `json:"victory"`
	ConfigName string   `json:"config_name"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors MoveHistory entries
	// but gets cleared on reset while MoveHistory remains cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	// Computed helper views (not required for core game logic)
	Rows          []string `json:"rows,omitempty"`
	PossibleMoves []string `json:"possible_moves,omitempty"`
}

// Clone returns a deep copy of the state that shares no slices with gs.
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}
	out := *gs
	out.Cells = slices.Clone(gs.Cells)
	out.MoveHistory = slices.Clone(gs.MoveHistory)
	out.CurrentMoves = slices.Clone(gs.CurrentMoves)
	out.Rows = slices.Clone(gs.Rows)
	out.PossibleMoves = slices.Clone(gs.PossibleMoves)
	return &out
}

// At returns the value at row, col of the state's flat cell slice.
func (gs *GameState) At(row, col int) uint32 {
	return gs.Cells[row*gs.Size+col]
}

// MoveHistoryEntry represents a single move in the game history
type MoveHistoryEntry struct {
	Action      string `json:"action"`
	Changed     bool   `json:"changed"`
	ScoreGained int    `json:"score_gained"`
	Score       int    `json:"score"`
	MaxTile     uint32 `json:"max_tile"`
	EmptyCells  int    `json:"empty_cells"`
	Timestamp   int64  `json:"timestamp"`
	MoveNumber  int    `json:"move_number"`
}
