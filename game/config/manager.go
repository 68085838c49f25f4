package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/slide2048/game/engine"
	"github.com/wricardo/slide2048/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultConfigName is the config preferred as the default when present.
const DefaultConfigName = "classic"

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	m.loadDefaultConfig()
	return m, nil
}

// configKey normalizes a config name for cache lookups and file names.
func configKey(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), ".json")
}

// LoadConfig loads a configuration by name
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	key := configKey(name)
	if key == "" || strings.ContainsAny(key, `/\`) {
		return nil, ErrConfigNotFound
	}

	m.mu.RLock()
	// Check cache first
	if config, exists := m.configs[key]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	config, err := m.readConfig(key)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another goroutine may have won the race
	if cached, exists := m.configs[key]; exists {
		return cached, nil
	}
	m.configs[key] = config
	return config, nil
}

// readConfig reads and validates a config file without touching the cache.
func (m *Manager) readConfig(key string) (*engine.GameConfig, error) {
	configPath := filepath.Join(m.configDir, key+".json")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &config, nil
}

// ListConfigs returns information about all valid configurations, sorted by id
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := configKey(entry.Name())

		config, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			GridSize:    config.GridSize,
			TargetTile:  config.Target(),
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// ReloadConfig drops a cached configuration and reads it again from disk
func (m *Manager) ReloadConfig(name string) error {
	m.mu.Lock()
	delete(m.configs, configKey(name))
	m.mu.Unlock()

	_, err := m.LoadConfig(name)
	return err
}

// RefreshCache reloads all cached configurations from disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	m.loadDefaultConfig()
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// loadDefaultConfig picks classic, then the first valid config on disk,
// then the built-in default.
func (m *Manager) loadDefaultConfig() {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		config = engine.DefaultGameConfig()
		if configs, listErr := m.ListConfigs(); listErr == nil && len(configs) > 0 {
			if first, loadErr := m.LoadConfig(configs[0].ConfigID); loadErr == nil {
				config = first
			}
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

// SaveConfig saves a configuration to disk
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	// Validate config before saving
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	key := configKey(name)
	if key == "" || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: config name %q is not a plain file name", ErrInvalidConfig, name)
	}

	configPath := filepath.Join(m.configDir, key+".json")

	// Marshal config to JSON with indentation
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.configs[key] = config
	m.mu.Unlock()

	return nil
}
