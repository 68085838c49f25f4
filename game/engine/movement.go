package engine

import (
	"fmt"
	"time"
)

// applyMove updates the message and end-of-game flags after a slide.
func (gs *GameState) applyMove(board *Board, changed bool, config *GameConfig) {
	if !changed {
		gs.Message = config.Messages.Blocked
		if gs.Message == "" {
			gs.Message = "Can't move there!"
		}
	} else if config.Messages.Moved != "" {
		gs.Message = fmt.Sprintf(config.Messages.Moved, gs.Score)
	} else {
		gs.Message = fmt.Sprintf("Score: %d", gs.Score)
	}

	// Victory is announced once; play continues past the target tile
	if !gs.Victory && gs.MaxTile >= gs.TargetTile {
		gs.Victory = true
		gs.Message = fmt.Sprintf(config.Messages.Victory, gs.TargetTile)
	}

	if board.IsEnd() {
		gs.GameOver = true
		gs.Message = fmt.Sprintf(config.Messages.GameOver, gs.Score)
	}
}

// AddMoveToHistory adds a move to the game's move history
func (gs *GameState) AddMoveToHistory(action string, changed bool, gained, emptyCells int) {
	entry := MoveHistoryEntry{
		Action:      action,
		Changed:     changed,
		ScoreGained: gained,
		Score:       gs.Score,
		MaxTile:     gs.MaxTile,
		EmptyCells:  emptyCells,
		Timestamp:   time.Now().Unix(),
		MoveNumber:  gs.TotalMoves + 1,
	}
	// Append to cumulative history (never cleared by reset) and increment total
	gs.MoveHistory = append(gs.MoveHistory, entry)
	gs.TotalMoves++

	// Append to current segment history and increment its counter
	gs.CurrentMoves = append(gs.CurrentMoves, entry)
	gs.CurrentMovesCount++
}
