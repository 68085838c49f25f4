package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate grid size
	if config.GridSize < MinGridSize || config.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: grid_size must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridSize)
	}

	// Validate target tile
	if config.TargetTile != 0 {
		if !IsPowerOfTwo(config.TargetTile) || config.TargetTile <= SpawnValue {
			return fmt.Errorf("config validation: target_tile must be a power of two greater than %d, got %d", SpawnValue, config.TargetTile)
		}
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("config validation: messages.victory is required")
	}
	if config.Messages.GameOver == "" {
		return fmt.Errorf("config validation: messages.game_over is required")
	}

	// Validate format strings
	if err := checkNumberFormat("victory", config.Messages.Victory, "target tile"); err != nil {
		return err
	}
	if err := checkNumberFormat("game_over", config.Messages.GameOver, "final score"); err != nil {
		return err
	}
	if config.Messages.Moved != "" {
		if err := checkNumberFormat("moved", config.Messages.Moved, "score"); err != nil {
			return err
		}
	}

	return nil
}

// checkNumberFormat requires format to hold exactly one printf directive, an integer %d
func checkNumberFormat(field, format, arg string) error {
	verbs := formatVerbs(format)
	if len(verbs) != 1 || verbs[0] != 'd' {
		return fmt.Errorf("config validation: messages.%s must contain exactly one %%d for the %s, got %q", field, arg, format)
	}
	return nil
}

// formatVerbs returns the verb of each printf directive in format. %% is a literal.
// A trailing lone % is reported as '!'.
func formatVerbs(format string) []byte {
	var verbs []byte
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			continue
		}
		for i < len(format) && strings.IndexByte("+-# 0123456789.", format[i]) >= 0 {
			i++
		}
		if i == len(format) {
			verbs = append(verbs, '!')
			break
		}
		verbs = append(verbs, format[i])
	}
	return verbs
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		// If filename starts with "configs/", replace with CONFIG_DIR
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	// Validate the loaded configuration
	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultGameConfig returns the classic 4x4 game aiming for the 2048 tile.
func DefaultGameConfig() *GameConfig {
	config := &GameConfig{
		Name:        "classic",
		Description: "The classic 4x4 board. Reach the 2048 tile.",
		GridSize:    DefaultGridSize,
		TargetTile:  DefaultTargetTile,
	}
	config.Messages.Welcome = "Welcome! Slide the tiles and merge equal numbers."
	config.Messages.Moved = "Score: %d"
	config.Messages.Blocked = "Nothing moves that way."
	config.Messages.Victory = "You made the %d tile! Keep going."
	config.Messages.GameOver = "No moves left. Final score: %d"
	return config
}
