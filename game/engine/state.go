package engine

// TurnResult describes one successful placement
type TurnResult struct {
	Player     Player `json:"player"`
	Row        int    `json:"row"`
	Column     int    `json:"column"`
	Round      int    `json:"round"`
	MoveNumber int    `json:"move_number"`
	RoundWon   bool   `json:"round_won"`
	MatchWon   bool   `json:"match_won"`
	Score      int    `json:"score,omitempty"` // winner's score after a round win
}

// MoveRecord is a single entry of the match history
type MoveRecord struct {
	Round      int    `json:"round"`
	MoveNumber int    `json:"move_number"`
	Player     string `json:"player"`
	Color      Piece  `json:"color"`
	Column     int    `json:"column"`
	Row        int    `json:"row"`
	Winning    bool   `json:"winning,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// MatchState represents the complete state of a match
type MatchState struct {
	Rows        int `json:"rows"`
	Cols        int `json:"cols"`
	ConnectN    int `json:"connect_n"`
	TargetScore int `json:"target_score"`

	Grid  Grid     `json:"grid"`
	Board []string `json:"board"` // textual snapshot, top row first

	Players       []Player       `json:"players"`
	Scores        map[string]int `json:"scores"`
	CurrentPlayer Player         `json:"current_player"`

	Status       Status `json:"status"`
	Round        int    `json:"round"`
	MovesInRound int    `json:"moves_in_round"`
	TotalMoves   int    `json:"total_moves"`
	RoundWinner  string `json:"round_winner,omitempty"`
	MatchWinner  string `json:"match_winner,omitempty"`
	Message      string `json:"message"`

	// BoardFull is informational only; a full board is not a draw.
	BoardFull   bool  `json:"board_full"`
	OpenColumns []int `json:"open_columns"`

	ConfigName string `json:"config_name,omitempty"`
}
