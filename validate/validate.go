// Command validate checks the match presets in a configs directory
// (../configs by default, or the first argument). It checks:
//   - JSON or YAML structure
//   - Required fields and rule limits (board size, connect_n, target_score)
//   - Two players with distinct names and colors
//   - The preset name matches its file name, which is the config_id clients use
//   - How many winning lines the board offers for connect_n
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/connectfour/game/engine"
	"gopkg.in/yaml.v3"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single preset file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		result.fail("Unsupported file type %q", ext)
		return result
	}
	if err != nil {
		result.fail("Invalid %s: %v", strings.ToUpper(strings.TrimPrefix(ext, ".")), err)
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
		return result
	}

	if stem := strings.TrimSuffix(result.File, filepath.Ext(result.File)); config.Name != stem {
		result.fail("Name %q does not match file name %q", config.Name, stem)
	}
	if strings.TrimSpace(config.Description) == "" {
		result.fail("Description is empty")
	}

	if !result.Valid {
		return result
	}

	result.info("Board: %dx%d, connect %d, first to %d", config.Rows, config.Cols, config.ConnectN, config.TargetScore)
	result.info("Players: %s (%s) vs %s (%s)",
		config.Players[0].Name, config.Players[0].Color,
		config.Players[1].Name, config.Players[1].Color)
	result.info("Winning lines: %d", countWinningLines(config.Rows, config.Cols, config.ConnectN))

	return result
}

// countWinningLines returns the number of distinct runs of n cells in a
// straight line (horizontal, vertical or diagonal) on a rows x cols board.
func countWinningLines(rows, cols, n int) int {
	span := func(size int) int {
		if size < n {
			return 0
		}
		return size - n + 1
	}

	horizontal := rows * span(cols)
	vertical := cols * span(rows)
	diagonal := 2 * span(rows) * span(cols)
	return horizontal + vertical + diagonal
}

// findConfigs returns every preset file in dir
func findConfigs(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	return files, nil
}

// main validates each preset, printing a concise report and exiting with
// non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := findConfigs(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No presets found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All presets are valid!")
	} else {
		fmt.Println("❌ Some presets have errors")
		os.Exit(1)
	}
}
