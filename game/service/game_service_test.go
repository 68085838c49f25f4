package service_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/wricardo/slide2048/game/engine"
	"github.com/wricardo/slide2048/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
	saves    int
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id, configID string, config *engine.GameConfig, seed uint64) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config, seed)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		ConfigID:       configID,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.Touch(time.Now())
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	m.saves++
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func testConfig(name string, size int) *engine.GameConfig {
	config := &engine.GameConfig{
		Name:        name,
		Description: "Test configuration",
		GridSize:    size,
		TargetTile:  2048,
	}
	config.Messages.Welcome = "Welcome to test!"
	config.Messages.Moved = "Score: %d"
	config.Messages.Blocked = "Blocked"
	config.Messages.Victory = "Made %d!"
	config.Messages.GameOver = "Game over: %d"
	return config
}

func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"classic": testConfig("Classic", 4),
			"tiny":    testConfig("Tiny", 2),
			"big":     testConfig("Big", 6),
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("config not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".json",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			GridSize:    config.GridSize,
			TargetTile:  config.Target(),
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["classic"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return err
	}
	m.configs[name] = config
	return nil
}

// MockScoreStore implements service.ScoreStore for testing
type MockScoreStore struct {
	entries   []service.ScoreEntry
	lastLimit int
	lastID    string
}

func (m *MockScoreStore) Record(ctx context.Context, entry service.ScoreEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockScoreStore) Top(ctx context.Context, configID string, limit int) ([]service.ScoreEntry, error) {
	m.lastLimit = limit
	m.lastID = configID
	return m.entries, nil
}

func (m *MockScoreStore) Best(ctx context.Context, configID string) (service.ScoreEntry, bool, error) {
	var best service.ScoreEntry
	found := false
	for _, entry := range m.entries {
		if entry.ConfigID == configID && (!found || entry.Score > best.Score) {
			best, found = entry, true
		}
	}
	return best, found, nil
}

type fixture struct {
	svc      service.GameService
	sessions *MockSessionManager
	scores   *MockScoreStore
}

func newFixture() *fixture {
	sessions := NewMockSessionManager()
	scores := &MockScoreStore{}
	return &fixture{
		svc:      service.NewGameService(sessions, NewMockConfigManager(), scores),
		sessions: sessions,
		scores:   scores,
	}
}

// newGame creates a session and replaces its board with cells.
func (f *fixture) newGame(t *testing.T, configName string, cells []uint32) string {
	t.Helper()
	seed := uint64(1)
	info, err := f.svc.CreateSession(context.Background(), configName, &seed)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if cells != nil {
		eng := f.sessions.sessions[info.ID].Engine
		state := eng.GetState()
		state.Cells = cells
		if err := eng.SetState(state); err != nil {
			t.Fatalf("Failed to set cells: %v", err)
		}
	}
	return info.ID
}

func eventTypes(events []service.GameEvent) []string {
	types := make([]string, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}

func oneTile() []uint32 {
	cells := make([]uint32, 16)
	cells[0] = 2
	return cells
}

func mergeRow() []uint32 {
	cells := make([]uint32, 16)
	cells[0], cells[1] = 2, 2
	return cells
}

// Sliding left merges the 4s and the spawn fills the board with no pairs.
func nearlyOver() []uint32 {
	return []uint32{4, 4, 2, 8}
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	tests := []struct {
		name       string
		configName string
		wantID     string
		wantSize   int
		wantErr    bool
	}{
		{"create with default config", "", "classic", 4, false},
		{"create with specific config", "big", "big", 6, false},
		{"create with invalid config", "nonexistent", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := f.svc.CreateSession(ctx, tt.configName, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, service.ErrConfigUnavailable) {
					t.Errorf("Expected ErrConfigUnavailable, got %v", err)
				}
				return
			}
			if session.ConfigName != tt.wantID {
				t.Errorf("Expected config id %q, got %q", tt.wantID, session.ConfigName)
			}
			if session.GameState.Size != tt.wantSize {
				t.Errorf("Expected size %d, got %d", tt.wantSize, session.GameState.Size)
			}
			if engine.CountTiles(session.GameState.Cells) != engine.StartTiles {
				t.Errorf("Expected %d starting tiles", engine.StartTiles)
			}
		})
	}
}

func TestGameService_CreateSessionWithSeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	seed := uint64(2048)

	a, err := f.svc.CreateSession(ctx, "classic", &seed)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	b, err := f.svc.CreateSession(ctx, "classic", &seed)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if a.GameState.Seed != seed {
		t.Errorf("Expected seed %d, got %d", seed, a.GameState.Seed)
	}
	if !reflect.DeepEqual(a.GameState.Cells, b.GameState.Cells) {
		t.Errorf("Same seed produced different boards: %v vs %v", a.GameState.Cells, b.GameState.Cells)
	}
}

func TestGameService_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("merge", func(t *testing.T) {
		f := newFixture()
		id := f.newGame(t, "classic", mergeRow())

		result, err := f.svc.Move(ctx, id, "left", false)
		if err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		if !result.Success {
			t.Error("Expected successful move")
		}
		want := []string{service.EventMove, service.EventMerge, service.EventSpawn}
		if got := eventTypes(result.Events); !reflect.DeepEqual(got, want) {
			t.Errorf("Expected events %v, got %v", want, got)
		}
		if result.Step == nil || result.Step.Gained != 4 || result.Step.ScoreAfter != 4 {
			t.Errorf("Unexpected step %+v", result.Step)
		}
		if result.Step.EmptyCells != 14 {
			t.Errorf("Expected 14 empty cells, got %d", result.Step.EmptyCells)
		}
		if f.sessions.saves != 1 {
			t.Errorf("Expected session to be saved once, got %d", f.sessions.saves)
		}
	})

	t.Run("blocked", func(t *testing.T) {
		f := newFixture()
		id := f.newGame(t, "classic", oneTile())

		result, err := f.svc.Move(ctx, id, "up", false)
		if err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		if result.Success {
			t.Error("Expected blocked move to report failure")
		}
		if got := eventTypes(result.Events); !reflect.DeepEqual(got, []string{service.EventBlocked}) {
			t.Errorf("Expected a single blocked event, got %v", got)
		}
		if result.Step == nil || result.Step.Changed {
			t.Errorf("Expected unchanged step, got %+v", result.Step)
		}
		if engine.CountTiles(result.GameState.Cells) != 1 {
			t.Error("Blocked move must not spawn")
		}
	})

	t.Run("invalid direction", func(t *testing.T) {
		f := newFixture()
		id := f.newGame(t, "classic", nil)

		_, err := f.svc.Move(ctx, id, "diagonal", false)
		if !errors.Is(err, engine.ErrInvalidDirection) {
			t.Errorf("Expected ErrInvalidDirection, got %v", err)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newFixture()
		if _, err := f.svc.Move(ctx, "nope", "left", false); !errors.Is(err, service.ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("with reset", func(t *testing.T) {
		f := newFixture()
		id := f.newGame(t, "classic", nil)

		result, err := f.svc.Move(ctx, id, "left", true)
		if err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		if len(result.Events) == 0 || result.Events[0].Type != service.EventReset {
			t.Errorf("Expected reset event first, got %v", eventTypes(result.Events))
		}
	})
}

func TestGameService_GameOverRecordsScore(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id := f.newGame(t, "tiny", nearlyOver())

	result, err := f.svc.Move(ctx, id, "left", false)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if !result.GameState.GameOver {
		t.Fatalf("Expected game over, board %v", result.GameState.Cells)
	}
	types := eventTypes(result.Events)
	if types[len(types)-1] != service.EventGameOver {
		t.Errorf("Expected game_over as last event, got %v", types)
	}

	if len(f.scores.entries) != 1 {
		t.Fatalf("Expected one recorded score, got %d", len(f.scores.entries))
	}
	entry := f.scores.entries[0]
	if entry.SessionID != id || entry.ConfigID != "tiny" || entry.Score != 8 || entry.MaxTile != 8 || entry.Moves != 1 {
		t.Errorf("Unexpected score entry %+v", entry)
	}

	info, err := f.svc.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if info.BestScore != 8 {
		t.Errorf("Expected best score 8 for tiny, got %d", info.BestScore)
	}

	// Moves after game over are not attempted and not recorded again
	after, err := f.svc.Move(ctx, id, "up", false)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if after.Success || after.Step != nil {
		t.Errorf("Expected no step after game over, got %+v", after)
	}
	if len(f.scores.entries) != 1 {
		t.Errorf("Expected score to be recorded once, got %d", len(f.scores.entries))
	}
}

func TestGameService_BulkMove(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked moves are counted", func(t *testing.T) {
		f := newFixture()
		id := f.newGame(t, "classic", oneTile())

		result, err := f.svc.BulkMove(ctx, id, []string{"left", "up", "right"}, false)
		if err != nil {
			t.Fatalf("BulkMove() error = %v", err)
		}
		if result.MovesExecuted != 3 || result.BlockedMoves != 2 {
			t.Errorf("Expected 3 executed and 2 blocked, got %d and %d", result.MovesExecuted, result.BlockedMoves)
		}
		if result.StopReasonCode != "" || !result.Success {
			t.Errorf("Expected no stop, got %q", result.StopReasonCode)
		}
		if len(result.Steps) != 3 || result.Steps[2].Idx != 3 || !result.Steps[2].Changed {
			t.Errorf("Unexpected steps %+v", result.Steps)
		}
	})

	t.Run("invalid direction stops", func(t *testing.T) {
		f := newFixture()
		id := f.newGame(t, "classic", mergeRow())

		result, err := f.svc.BulkMove(ctx, id, []string{"left", "sideways", "right"}, false)
		if err != nil {
			t.Fatalf("BulkMove() error = %v", err)
		}
		if result.StopReasonCode != service.StopInvalidDirection || result.StoppedOnMove != 2 {
			t.Errorf("Expected invalid_direction on move 2, got %q on %d", result.StopReasonCode, result.StoppedOnMove)
		}
		if result.Success || result.MovesExecuted != 1 {
			t.Errorf("Expected failure after 1 move, got success=%v executed=%d", result.Success, result.MovesExecuted)
		}
		if result.ScoreDelta != 4 || result.StartScore != 0 || result.EndScore != 4 {
			t.Errorf("Unexpected score snapshot %d -> %d (delta %d)", result.StartScore, result.EndScore, result.ScoreDelta)
		}
	})

	t.Run("game over stops", func(t *testing.T) {
		f := newFixture()
		id := f.newGame(t, "tiny", nearlyOver())

		result, err := f.svc.BulkMove(ctx, id, []string{"left", "up", "down"}, false)
		if err != nil {
			t.Fatalf("BulkMove() error = %v", err)
		}
		if result.StopReasonCode != service.StopGameOver || result.StoppedOnMove != 1 {
			t.Errorf("Expected game_over on move 1, got %q on %d", result.StopReasonCode, result.StoppedOnMove)
		}
		if result.MovesExecuted != 1 || !result.GameOver {
			t.Errorf("Expected 1 move and game over, got %d and %v", result.MovesExecuted, result.GameOver)
		}
		if len(result.PossibleMoves) != 0 {
			t.Errorf("Expected no possible moves, got %v", result.PossibleMoves)
		}
		if len(f.scores.entries) != 1 {
			t.Errorf("Expected one recorded score, got %d", len(f.scores.entries))
		}

		again, err := f.svc.BulkMove(ctx, id, []string{"left"}, false)
		if err != nil {
			t.Fatalf("BulkMove() error = %v", err)
		}
		if again.StopReasonCode != service.StopGameOver || again.MovesExecuted != 0 {
			t.Errorf("Expected immediate game_over stop, got %q after %d moves", again.StopReasonCode, again.MovesExecuted)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		f := newFixture()
		id := f.newGame(t, "big", nil)

		moves := make([]string, engine.MaxBulkMoves+20)
		for i := range moves {
			moves[i] = []string{"left", "right"}[i%2]
		}

		result, err := f.svc.BulkMove(ctx, id, moves, false)
		if err != nil {
			t.Fatalf("BulkMove() error = %v", err)
		}
		if !result.Truncated || result.Limit != engine.MaxBulkMoves {
			t.Errorf("Expected truncation at %d, got truncated=%v limit=%d", engine.MaxBulkMoves, result.Truncated, result.Limit)
		}
		if result.RequestedMoves != len(moves) || result.MovesExecuted > engine.MaxBulkMoves {
			t.Errorf("Unexpected counts requested=%d executed=%d", result.RequestedMoves, result.MovesExecuted)
		}
	})
}

func TestGameService_GetMoveHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id := f.newGame(t, "big", nil)

	// 25 moves on 36 cells cannot fill the board
	moves := make([]string, 25)
	for i := range moves {
		moves[i] = []string{"left", "right"}[i%2]
	}
	if _, err := f.svc.BulkMove(ctx, id, moves, false); err != nil {
		t.Fatalf("BulkMove() error = %v", err)
	}

	tests := []struct {
		name      string
		opts      service.HistoryOptions
		wantLen   int
		wantFirst int
		wantNext  bool
		wantPrev  bool
	}{
		{"defaults are newest first", service.HistoryOptions{}, 20, 25, true, false},
		{"desc page 1", service.HistoryOptions{Page: 1, Limit: 10, Order: "desc"}, 10, 25, true, false},
		{"desc last page", service.HistoryOptions{Page: 3, Limit: 10, Order: "desc"}, 5, 5, false, true},
		{"asc page 2", service.HistoryOptions{Page: 2, Limit: 10, Order: "asc"}, 10, 11, true, true},
		{"past the end", service.HistoryOptions{Page: 9, Limit: 10, Order: "asc"}, 0, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history, err := f.svc.GetMoveHistory(ctx, id, tt.opts)
			if err != nil {
				t.Fatalf("GetMoveHistory() error = %v", err)
			}
			if history.TotalMoves != 25 {
				t.Errorf("Expected 25 total moves, got %d", history.TotalMoves)
			}
			if len(history.Moves) != tt.wantLen {
				t.Fatalf("Expected %d moves, got %d", tt.wantLen, len(history.Moves))
			}
			if tt.wantLen > 0 && history.Moves[0].MoveNumber != tt.wantFirst {
				t.Errorf("Expected first move number %d, got %d", tt.wantFirst, history.Moves[0].MoveNumber)
			}
			if history.HasNext != tt.wantNext || history.HasPrevious != tt.wantPrev {
				t.Errorf("Expected next=%v prev=%v, got next=%v prev=%v", tt.wantNext, tt.wantPrev, history.HasNext, history.HasPrevious)
			}
		})
	}
}

func TestGameService_ListAndDeleteSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for i := 0; i < 3; i++ {
		if _, err := f.svc.CreateSession(ctx, "", nil); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
	}

	sessions, err := f.svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("Expected 3 sessions, got %d", len(sessions))
	}

	if err := f.svc.DeleteSession(ctx, sessions[0].ID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := f.svc.GetSession(ctx, sessions[0].ID); err == nil {
		t.Error("Expected deleted session to be gone")
	}
	remaining, _ := f.svc.ListSessions(ctx)
	if len(remaining) != 2 {
		t.Errorf("Expected 2 sessions after delete, got %d", len(remaining))
	}
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	id := f.newGame(t, "classic", mergeRow())

	if _, err := f.svc.Move(ctx, id, "left", false); err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	state, err := f.svc.Reset(ctx, id)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if state.Score != 0 || engine.CountTiles(state.Cells) != engine.StartTiles {
		t.Errorf("Expected a fresh board, got score %d", state.Score)
	}
	if state.TotalMoves != 1 || state.CurrentMovesCount != 0 {
		t.Errorf("Expected cumulative total 1 and empty segment, got %d and %d", state.TotalMoves, state.CurrentMovesCount)
	}

	if _, err := f.svc.Reset(ctx, "missing"); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestGameService_Leaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("without store", func(t *testing.T) {
		svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager(), nil)
		entries, err := svc.Leaderboard(ctx, "", 5)
		if err != nil {
			t.Fatalf("Leaderboard() error = %v", err)
		}
		if entries == nil || len(entries) != 0 {
			t.Errorf("Expected empty leaderboard, got %v", entries)
		}
	})

	t.Run("limits", func(t *testing.T) {
		f := newFixture()
		f.scores.entries = []service.ScoreEntry{{SessionID: "ab12", ConfigID: "classic", Score: 1000}}

		entries, err := f.svc.Leaderboard(ctx, "classic", 0)
		if err != nil {
			t.Fatalf("Leaderboard() error = %v", err)
		}
		if len(entries) != 1 || entries[0].Score != 1000 {
			t.Errorf("Unexpected entries %v", entries)
		}
		if f.scores.lastLimit != service.DefaultLeaderboardLimit || f.scores.lastID != "classic" {
			t.Errorf("Expected default limit for classic, got %d for %q", f.scores.lastLimit, f.scores.lastID)
		}

		f.svc.Leaderboard(ctx, "", 1000)
		if f.scores.lastLimit != 100 {
			t.Errorf("Expected limit to be capped at 100, got %d", f.scores.lastLimit)
		}
	})
}

func TestGameService_Configs(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	configs, err := f.svc.ListConfigs(ctx)
	if err != nil {
		t.Fatalf("ListConfigs() error = %v", err)
	}
	if len(configs) != 3 {
		t.Errorf("Expected 3 configs, got %d", len(configs))
	}

	custom := testConfig("Custom", 5)
	if err := f.svc.SaveConfig(ctx, "custom", custom); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	loaded, err := f.svc.LoadConfig(ctx, "custom")
	if err != nil || loaded.GridSize != 5 {
		t.Errorf("Expected saved config to load, got %v, %v", loaded, err)
	}
}
