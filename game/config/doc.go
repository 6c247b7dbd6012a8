// Package config provides match preset management for the Connect Four server.
//
// The config package handles:
//   - Loading presets from JSON or YAML files
//   - Preset validation through the engine rules
//   - A built-in classic preset when none is on disk
//   - Preset discovery, listing and saving
//
// Preset Format:
//
// Presets live in the config directory as <name>.json, <name>.yaml or
// <name>.yml. Each preset defines the board size, the run length needed to
// win a round, the number of round wins needed to win the match and the two
// players with their colors:
//
//	name: classic
//	description: Classic 6x7 board, four in a row, first to three rounds
//	rows: 6
//	cols: 7
//	connect_n: 4
//	target_score: 3
//	players:
//	  - name: Player 1
//	    color: red
//	  - name: Player 2
//	    color: yellow
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	preset, err := manager.LoadConfig("blitz")
//	presets, err := manager.ListConfigs()
package config
