package engine

import (
	"fmt"
	"strings"
)

// GameConfig is a match preset loaded from the config directory
type GameConfig struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Rows        int      `json:"rows" yaml:"rows"`
	Cols        int      `json:"cols" yaml:"cols"`
	ConnectN    int      `json:"connect_n" yaml:"connect_n"`
	TargetScore int      `json:"target_score" yaml:"target_score"`
	Players     []Player `json:"players" yaml:"players"`
}

// DefaultGameConfig returns the classic 6x7 connect-four preset, first to three rounds
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Classic 6x7 board, four in a row, first to three rounds",
		Rows:        6,
		Cols:        7,
		ConnectN:    4,
		TargetScore: 3,
		Players: []Player{
			{Name: "Player 1", Color: Red},
			{Name: "Player 2", Color: Yellow},
		},
	}
}

// ValidateGameConfig checks that a preset describes a playable match
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if strings.TrimSpace(config.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if config.Rows < MinBoardSize || config.Rows > MaxBoardSize {
		return fmt.Errorf("%w: rows must be between %d and %d, got %d", ErrInvalidConfig, MinBoardSize, MaxBoardSize, config.Rows)
	}
	if config.Cols < MinBoardSize || config.Cols > MaxBoardSize {
		return fmt.Errorf("%w: cols must be between %d and %d, got %d", ErrInvalidConfig, MinBoardSize, MaxBoardSize, config.Cols)
	}
	if config.ConnectN < MinConnectN {
		return fmt.Errorf("%w: connect_n must be at least %d, got %d", ErrInvalidConfig, MinConnectN, config.ConnectN)
	}
	if config.ConnectN > config.Rows && config.ConnectN > config.Cols {
		return fmt.Errorf("%w: connect_n %d does not fit on a %dx%d board", ErrInvalidConfig, config.ConnectN, config.Rows, config.Cols)
	}
	if config.TargetScore < MinTargetScore || config.TargetScore > MaxTargetScore {
		return fmt.Errorf("%w: target_score must be between %d and %d, got %d", ErrInvalidConfig, MinTargetScore, MaxTargetScore, config.TargetScore)
	}
	if len(config.Players) != 2 {
		return fmt.Errorf("%w: exactly 2 players are required, got %d", ErrInvalidConfig, len(config.Players))
	}
	return validatePlayers([2]Player{config.Players[0], config.Players[1]})
}

// NewMatchFromConfig builds a board and a match for a validated preset
func NewMatchFromConfig(config *GameConfig) (*Match, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	board, err := NewBoard(config.Rows, config.Cols)
	if err != nil {
		return nil, err
	}

	return NewMatch(board, config.ConnectN, config.TargetScore, [2]Player{config.Players[0], config.Players[1]})
}
