package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/slide2048/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Info holds a short description of the config; otherwise
// Errors holds the reason it was rejected.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Info   []string
}

// validateConfig loads a configuration JSON file and applies the same rules
// the server uses before accepting a config.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Info = append(result.Info,
		fmt.Sprintf("Name: %s", config.Name),
		fmt.Sprintf("Grid: %dx%d", config.GridSize, config.GridSize),
		fmt.Sprintf("Target tile: %d", config.Target()),
	)
	return result
}

// validateDir validates every *.json file in dir, in name order.
func validateDir(dir string) ([]ValidationResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("find config files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files in %s", dir)
	}

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, validateConfig(file))
	}
	return results, nil
}

// writeValidation prints a report and reports whether every file was valid.
func writeValidation(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  ✓ "+info)
			}
			continue
		}

		allValid = false
		fmt.Fprintln(w, "❌ INVALID")
		for _, msg := range result.Errors {
			fmt.Fprintln(w, "  ❌ "+msg)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}
