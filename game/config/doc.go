// Package config provides configuration management for the tile game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Caching parsed configurations by id
//   - Default configuration selection
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// The file name without extension is the config id used when creating
// sessions. Each configuration defines the grid size, the winning tile and
// the messages shown for each kind of move.
//
// Available Configurations:
//
//   - classic: 4x4 board, target 2048
//   - mini: 3x3 board, target 256
//   - wide: 5x5 board, target 4096
//   - marathon: 6x6 board, target 8192
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("mini")
//	configs, err := manager.ListConfigs()
package config
