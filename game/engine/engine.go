package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/wricardo/slide2048/game/random"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	IsVictory() bool
	GetScore() int

	// Movement operations
	Move(direction string) bool
	CanMove(direction string) bool
	GetPossibleMoves() []string

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry

	// Board access
	GetBoard() *Board
}

// GameEngine implements the Engine interface
type GameEngine struct {
	board  *Board
	rnd    *rand.Rand
	state  *GameState
	config *GameConfig
}

// NewEngine creates a new game engine with the provided configuration.
// The same config and seed always produce the same game.
func NewEngine(config *GameConfig, seed uint64) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{config: config}
	if err := engine.newGame(seed); err != nil {
		return nil, err
	}
	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the default configuration
func NewEngineWithDefaults(seed uint64) *GameEngine {
	engine, err := NewEngine(DefaultGameConfig(), seed)
	if err != nil {
		// DefaultGameConfig is valid by construction
		panic(fmt.Sprintf("default config rejected: %v", err))
	}
	return engine
}

// newGame replaces the board and state with a fresh game for seed.
func (e *GameEngine) newGame(seed uint64) error {
	rnd := random.New(seed)
	board, err := NewBoard(e.config.GridSize, rnd)
	if err != nil {
		return err
	}

	e.rnd = rnd
	e.board = board
	e.state = &GameState{
		Size:         board.Size(),
		TargetTile:   e.config.Target(),
		Seed:         seed,
		Message:      e.config.Messages.Welcome,
		ConfigName:   e.config.Name,
		MoveHistory:  []MoveHistoryEntry{},
		CurrentMoves: []MoveHistoryEntry{},
	}
	e.syncState()
	return nil
}

// syncState copies the board into the state and refreshes computed views.
func (e *GameEngine) syncState() {
	e.state.Cells = e.board.Cells()
	e.state.Score = e.board.Score()
	e.state.MaxTile = e.board.MaxTile()
	e.state.Rows = FormatRows(e.board.Size(), e.state.Cells)
	e.state.PossibleMoves = e.GetPossibleMoves()
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading).
// The board is rebuilt from the state's cells and the generator is reseeded
// from the stored seed and move count, so a restored game stays reproducible.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Size != e.config.GridSize {
		return fmt.Errorf("%w: board is %dx%d, config %q expects %dx%d",
			ErrStateMismatch, state.Size, state.Size, e.config.Name, e.config.GridSize, e.config.GridSize)
	}

	rnd := random.New(state.Seed + uint64(state.TotalMoves))
	board, err := NewBoardFromCells(state.Size, state.Cells, rnd)
	if err != nil {
		return fmt.Errorf("failed to restore board: %w", err)
	}
	board.score = state.Score

	e.rnd = rnd
	e.board = board
	e.state = state
	if e.state.MoveHistory == nil {
		e.state.MoveHistory = []MoveHistoryEntry{}
	}
	if e.state.CurrentMoves == nil {
		e.state.CurrentMoves = []MoveHistoryEntry{}
	}

	// Flags are derived from the cells and config, not trusted from storage
	e.state.TargetTile = e.config.Target()
	e.state.GameOver = board.IsEnd()
	e.syncState()
	e.state.Victory = e.state.MaxTile >= e.state.TargetTile
	return nil
}

// Reset starts a new board, keeping the cumulative move history
func (e *GameEngine) Reset() *GameState {
	// Preserve cumulative history and totals across resets
	prevHistory := e.state.MoveHistory
	prevTotal := e.state.TotalMoves

	// The next seed is drawn from the current generator so reset sequences replay too
	if err := e.newGame(e.rnd.Uint64()); err != nil {
		// config was validated when it was set
		panic(fmt.Sprintf("reset with validated config failed: %v", err))
	}

	// Restore cumulative history and totals; clear only the current segment
	e.state.MoveHistory = prevHistory
	e.state.TotalMoves = prevTotal

	return e.state
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// IsVictory returns whether the target tile has been reached
func (e *GameEngine) IsVictory() bool {
	return e.state.Victory
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetBoard returns the live board. Callers must not retain it across moves.
func (e *GameEngine) GetBoard() *Board {
	return e.board
}

// Move slides the board in the specified direction. It returns true when
// the board changed.
func (e *GameEngine) Move(direction string) bool {
	if e.state.GameOver {
		return false
	}

	dir, err := ParseDirection(direction)
	if err != nil {
		e.state.Message = fmt.Sprintf("Unknown direction %q", direction)
		return false
	}

	prevScore := e.board.Score()
	changed := e.board.Slide(dir)
	e.syncState()

	e.state.applyMove(e.board, changed, e.config)
	e.state.AddMoveToHistory(dir.String(), changed, e.state.Score-prevScore, e.board.EmptyCount())

	return changed
}

// CanMove checks if sliding in the specified direction would change the board
func (e *GameEngine) CanMove(direction string) bool {
	if e.state.GameOver {
		return false
	}

	dir, err := ParseDirection(direction)
	if err != nil {
		return false
	}
	return e.board.CanSlide(dir)
}

// GetPossibleMoves returns all directions that would change the board
func (e *GameEngine) GetPossibleMoves() []string {
	var possible []string
	for _, dir := range Directions {
		if e.CanMove(dir.String()) {
			possible = append(possible, dir.String())
		}
	}
	return possible
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and starts a new game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	prev := e.config
	e.config = config
	if err := e.newGame(e.rnd.Uint64()); err != nil {
		e.config = prev
		return err
	}
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// BulkMove executes multiple moves in sequence, returning the changed flag for each
func (e *GameEngine) BulkMove(moves []string) []bool {
	results := make([]bool, 0, len(moves))

	for _, direction := range moves {
		// Stop if game is over
		if e.IsGameOver() {
			break
		}

		results = append(results, e.Move(direction))
	}

	return results
}
