package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/wricardo/slide2048/game/engine"
	"github.com/wricardo/slide2048/game/random"
)

var (
	// ErrConfigUnavailable is returned when a requested config cannot be loaded
	ErrConfigUnavailable = errors.New("config not available")

	// ErrSessionNotFound is returned for unknown session IDs
	ErrSessionNotFound = errors.New("session not found")
)

// DefaultLeaderboardLimit caps leaderboard queries without an explicit limit
const DefaultLeaderboardLimit = 10

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	scores   ScoreStore
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. scores may be nil, in
// which case finished games are not recorded.
func NewGameService(sessions SessionManager, configs ConfigManager, scores ScoreStore) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		scores:   scores,
	}
}

// getConfigID returns the config_id for a given display name
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// sessionInfo builds a detached view of sess. Callers must not hold the session lock.
func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	state, lastAccessed := sess.Snapshot()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: lastAccessed,
		GameState:      state,
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session. A nil seed draws a fresh one.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, seed *uint64) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	configID := configName
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				configIDs := make([]string, 0, len(availableConfigs))
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("%w: '%s' (%v). Available configs: %v", ErrConfigUnavailable, configName, err, configIDs)
			}
			return nil, fmt.Errorf("%w: '%s': %v", ErrConfigUnavailable, configName, err)
		}
	} else {
		config = s.configs.GetDefault()
		if config == nil {
			return nil, fmt.Errorf("%w: no default config", ErrConfigUnavailable)
		}
		configID = s.getConfigID(config.Name)
	}

	var gameSeed uint64
	if seed != nil {
		gameSeed = *seed
	} else {
		var err error
		gameSeed, err = random.NewSeed()
		if err != nil {
			return nil, err
		}
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", configID, config, gameSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, notFound(sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	info := s.sessionInfo(session)
	if s.scores != nil {
		best, ok, err := s.scores.Best(ctx, session.ConfigID)
		if err != nil {
			log.Printf("Warning: Failed to load best score for %s: %v", session.ConfigID, err)
		} else if ok {
			info.BestScore = best.Score
		}
	}
	return info, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	dir, err := engine.ParseDirection(direction)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, notFound(sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	step, moveEvents, applied := s.applyStep(ctx, sess, dir, 1)
	events = append(events, moveEvents...)
	state := sess.Engine.GetState().Clone()
	sess.Unlock()

	result := &MoveResult{
		Success:   applied && step.Changed,
		GameState: state,
		Message:   state.Message,
		Events:    events,
	}
	if applied {
		result.Step = &step
	}

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after move: %v", sessionID, err)
	}

	return result, nil
}

// BulkMove executes multiple moves in sequence. Blocked moves are counted
// but do not stop the run; game over and unknown directions do.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, notFound(sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	sess.Lock()
	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}

	start := sess.Engine.GetState()
	result.StartScore = start.Score
	result.StartMaxTile = start.MaxTile

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "game already over"
			result.StopReasonCode = StopGameOver
			result.StoppedOnMove = i + 1
			break
		}

		dir, err := engine.ParseDirection(move)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d: unknown direction %q", i+1, move)
			result.StopReasonCode = StopInvalidDirection
			result.StoppedOnMove = i + 1
			break
		}

		step, events, _ := s.applyStep(ctx, sess, dir, i+1)
		result.Events = append(result.Events, events...)
		result.Steps = append(result.Steps, step)
		result.MovesExecuted++
		if !step.Changed {
			result.BlockedMoves++
		}

		// Moves left over after the game ended are not attempted
		if step.GameOver && i < len(moves)-1 {
			result.StoppedReason = fmt.Sprintf("game over after move %d", i+1)
			result.StopReasonCode = StopGameOver
			result.StoppedOnMove = i + 1
			break
		}
	}

	end := sess.Engine.GetState().Clone()
	result.GameState = end
	result.EndScore = end.Score
	result.EndMaxTile = end.MaxTile
	result.ScoreDelta = end.Score - result.StartScore
	result.GameOver = end.GameOver
	result.Victory = end.Victory
	result.Message = end.Message
	result.PossibleMoves = sess.Engine.GetPossibleMoves()
	sess.Unlock()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after bulk moves: %v", sessionID, err)
	}

	return result, nil
}

// applyStep performs one move and reports what happened. It returns false
// when the game was already over and nothing was attempted. Callers hold the
// session lock.
func (s *gameServiceImpl) applyStep(ctx context.Context, sess *Session, dir engine.Direction, idx int) (StepInfo, []GameEvent, bool) {
	before := sess.Engine.GetState()
	if before.GameOver {
		return StepInfo{Idx: idx, Dir: dir.String()}, nil, false
	}

	scoreBefore := before.Score
	wasVictory := before.Victory

	changed := sess.Engine.Move(dir.String())
	state := sess.Engine.GetState()
	empty := sess.Engine.GetBoard().EmptyCount()

	step := StepInfo{
		Idx:         idx,
		Dir:         dir.String(),
		Changed:     changed,
		ScoreBefore: scoreBefore,
		ScoreAfter:  state.Score,
		Gained:      state.Score - scoreBefore,
		MaxTile:     state.MaxTile,
		EmptyCells:  empty,
		Victory:     state.Victory && !wasVictory,
		GameOver:    state.GameOver,
	}

	now := time.Now()
	var events []GameEvent
	if !changed {
		events = append(events, GameEvent{
			Type:      EventBlocked,
			Message:   fmt.Sprintf("Nothing moved %s", dir),
			Timestamp: now,
			Move:      idx,
		})
		return step, events, true
	}

	events = append(events, GameEvent{
		Type:      EventMove,
		Message:   fmt.Sprintf("Slid %s", dir),
		Timestamp: now,
		Move:      idx,
	})
	if step.Gained > 0 {
		events = append(events, GameEvent{
			Type:      EventMerge,
			Message:   fmt.Sprintf("Merged tiles for +%d (score %d)", step.Gained, state.Score),
			Timestamp: now,
			Move:      idx,
		})
	}
	events = append(events, GameEvent{
		Type:      EventSpawn,
		Message:   fmt.Sprintf("New %d tile placed, %d empty cells left", engine.SpawnValue, empty),
		Timestamp: now,
		Move:      idx,
	})
	if step.Victory {
		events = append(events, GameEvent{
			Type:      EventVictory,
			Message:   fmt.Sprintf("Reached the %d tile", state.TargetTile),
			Timestamp: now,
			Move:      idx,
		})
	}
	if state.GameOver {
		events = append(events, GameEvent{
			Type:      EventGameOver,
			Message:   state.Message,
			Timestamp: now,
			Move:      idx,
		})
		s.recordScore(ctx, sess)
	}

	return step, events, true
}

// recordScore stores a finished game. Failures are logged, never returned.
func (s *gameServiceImpl) recordScore(ctx context.Context, sess *Session) {
	if s.scores == nil {
		return
	}

	state := sess.Engine.GetState()
	entry := ScoreEntry{
		SessionID:  sess.ID,
		ConfigID:   sess.ConfigID,
		Seed:       state.Seed,
		Score:      state.Score,
		MaxTile:    state.MaxTile,
		Moves:      state.CurrentMovesCount,
		Victory:    state.Victory,
		FinishedAt: time.Now(),
	}
	if err := s.scores.Record(ctx, entry); err != nil {
		log.Printf("Warning: Failed to record score for session %s: %v", sess.ID, err)
	}
}

// notFound wraps a session manager lookup failure
func notFound(sessionID string, err error) error {
	if errors.Is(err, ErrSessionNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrSessionNotFound, sessionID, err)
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "Game reset with a new board",
		Timestamp: time.Now(),
	}
}

// Reset resets a game session to a new board
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, notFound(sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Lock()
	state := sess.Engine.Reset().Clone()
	sess.Unlock()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after reset: %v", sessionID, err)
	}

	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, notFound(sessionID, err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state, _ := sess.Snapshot()
	return state, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, notFound(sessionID, err)
	}

	sess.Lock()
	history := slices.Clone(sess.Engine.GetMoveHistory())
	sess.Unlock()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = history[start:end]
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// Leaderboard returns the best finished games, optionally for one config
func (s *gameServiceImpl) Leaderboard(ctx context.Context, configName string, limit int) ([]ScoreEntry, error) {
	if s.scores == nil {
		return []ScoreEntry{}, nil
	}
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > 100 {
		limit = 100
	}

	entries, err := s.scores.Top(ctx, configName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	if entries == nil {
		entries = []ScoreEntry{}
	}
	return entries, nil
}
