package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/slide2048/game/engine"
	"github.com/wricardo/slide2048/game/service"
)

// FilePersistence implements SessionPersistence using file system storage
type FilePersistence struct {
	sessionsDir   string
	configManager service.ConfigManager
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, configManager service.ConfigManager) (*FilePersistence, error) {
	// Create sessions directory if it doesn't exist
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir:   sessionsDir,
		configManager: configManager,
	}, nil
}

// Save persists a session to a JSON file. The file is written to a temporary
// name first and renamed so a crash never leaves a truncated session.
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	// Snapshot under the session lock so a concurrent move cannot tear the state
	state, lastAccessed := session.Snapshot()
	data := PersistedSessionData{
		ID:             session.ID,
		ConfigName:     session.ConfigID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: lastAccessed,
		GameState:      state,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	filePath := fp.getFilePath(session.ID)
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	return nil
}

// Load retrieves a session from a JSON file and rebuilds its board
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	if data.GameState == nil {
		return nil, fmt.Errorf("session %s has no game state", id)
	}

	gameConfig, err := fp.configManager.LoadConfig(data.ConfigName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config '%s': %w", data.ConfigName, err)
	}

	gameEngine, err := engine.NewEngine(gameConfig, data.GameState.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create game engine: %w", err)
	}

	if err := gameEngine.SetState(data.GameState); err != nil {
		return nil, fmt.Errorf("failed to set game state: %w", err)
	}

	return &service.Session{
		ID:             data.ID,
		ConfigID:       data.ConfigName,
		Engine:         gameEngine,
		Config:         gameConfig,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session file
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}

	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a session ID. IDs are stored
// lowercase so lookups stay case-insensitive on every filesystem.
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", strings.ToLower(filepath.Base(id))))
}
