package service

import (
	"time"

	"github.com/wricardo/mcp-training/connectfour/game/engine"
)

// SessionInfo provides information about a match session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.MatchState `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// Move result codes
const (
	CodeOK          = "ok"
	CodeRoundWon    = "round_won"
	CodeMatchWon    = "match_won"
	CodeInvalidMove = "invalid_move"
	CodeColumnFull  = "column_full"
	CodeMatchOver   = "match_over"
)

// MoveResult contains the result of a piece drop
type MoveResult struct {
	Success   bool               `json:"success"`
	Code      string             `json:"code"`
	GameState *engine.MatchState `json:"game_state"`
	Message   string             `json:"message"`
	Events    []GameEvent        `json:"events,omitempty"`
	Turn      *engine.TurnResult `json:"turn,omitempty"`

	// FinalBoard is the textual snapshot of a won round, taken before the
	// board is cleared for the next one.
	FinalBoard []string `json:"final_board,omitempty"`
}

// GameEvent represents an event that occurred during play
type GameEvent struct {
	Type      string    `json:"type"` // "move", "round_won", "match_won", "next_round", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Player    string    `json:"player,omitempty"`
	Row       int       `json:"row"`
	Column    int       `json:"column"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
	Round int    `json:"round"` // 0 for every round
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveRecord `json:"moves"`
	TotalMoves  int                 `json:"total_moves"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a match preset
type ConfigInfo struct {
	Filename    string `json:"filename,omitempty"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	ConnectN    int    `json:"connect_n"`
	TargetScore int    `json:"target_score"`
}
