package engine

import (
	"context"
	"fmt"
	"time"
)

// Status is the phase of a match
type Status string

const (
	RoundInProgress Status = "round_in_progress"
	RoundWon        Status = "round_won"
	MatchWon        Status = "match_won"
)

// MoveSource supplies the column chosen for the player whose turn it is.
// NextMove may block; its errors are returned to the caller of PlayRound.
type MoveSource interface {
	NextMove(ctx context.Context, player Player) (int, error)
}

// MoveSourceFunc adapts a function to MoveSource
type MoveSourceFunc func(ctx context.Context, player Player) (int, error)

func (f MoveSourceFunc) NextMove(ctx context.Context, player Player) (int, error) {
	return f(ctx, player)
}

// Match runs rounds between two players on a single board
type Match struct {
	board       *Board
	connectN    int
	targetScore int
	players     [2]Player
	scores      [2]int

	status  Status
	round   int
	turn    int
	moves   int
	winner  int
	history []MoveRecord
}

// NewMatch validates the rules and players and clears the board
func NewMatch(board *Board, connectN, targetScore int, players [2]Player) (*Match, error) {
	if board == nil {
		return nil, fmt.Errorf("%w: board is required", ErrInvalidConfig)
	}
	if connectN < MinConnectN {
		return nil, fmt.Errorf("%w: connect_n must be at least %d, got %d", ErrInvalidConfig, MinConnectN, connectN)
	}
	if connectN > board.Rows() && connectN > board.Cols() {
		return nil, fmt.Errorf("%w: connect_n %d does not fit on a %dx%d board", ErrInvalidConfig, connectN, board.Rows(), board.Cols())
	}
	if targetScore < MinTargetScore || targetScore > MaxTargetScore {
		return nil, fmt.Errorf("%w: target_score must be between %d and %d, got %d", ErrInvalidConfig, MinTargetScore, MaxTargetScore, targetScore)
	}
	if err := validatePlayers(players); err != nil {
		return nil, err
	}

	m := &Match{
		board:       board,
		connectN:    connectN,
		targetScore: targetScore,
		players:     players,
	}
	m.Reset()
	return m, nil
}

func validatePlayers(players [2]Player) error {
	for i, p := range players {
		if p.Name == "" {
			return fmt.Errorf("%w: player %d needs a name", ErrInvalidConfig, i+1)
		}
		if !p.Color.Valid() {
			return fmt.Errorf("%w: player %q has no color", ErrInvalidConfig, p.Name)
		}
	}
	if players[0].Name == players[1].Name {
		return fmt.Errorf("%w: player names must differ, both are %q", ErrInvalidConfig, players[0].Name)
	}
	if players[0].Color == players[1].Color {
		return fmt.Errorf("%w: player colors must differ, both are %s", ErrInvalidConfig, players[0].Color)
	}
	return nil
}

// Reset starts a new match: scores are zeroed and the board is cleared
func (m *Match) Reset() {
	m.scores = [2]int{}
	m.history = []MoveRecord{}
	m.round = 0
	m.startRound()
}

func (m *Match) startRound() {
	m.board.Init()
	m.status = RoundInProgress
	m.round++
	m.turn = 0
	m.moves = 0
	m.winner = -1
}

// NextRound clears the board after a won round. A round whose board filled
// up without a winner is abandoned the same way, and nobody scores.
func (m *Match) NextRound() error {
	switch m.status {
	case MatchWon:
		return ErrMatchOver
	case RoundInProgress:
		if !m.board.Full() {
			return fmt.Errorf("round %d is still in progress", m.round)
		}
	}
	m.startRound()
	return nil
}

// Turn places a piece in column for the current player and checks for a win.
// A rejected placement keeps the turn with the same player.
func (m *Match) Turn(column int) (*TurnResult, error) {
	switch m.status {
	case MatchWon:
		return nil, ErrMatchOver
	case RoundWon:
		return nil, ErrRoundOver
	}

	player := m.players[m.turn]
	row, err := m.board.PlacePiece(column, player.Color)
	if err != nil {
		return nil, err
	}
	m.moves++

	won := m.board.CheckWin(m.connectN, row, column, player.Color)
	result := &TurnResult{
		Player:     player,
		Row:        row,
		Column:     column,
		Round:      m.round,
		MoveNumber: m.moves,
		RoundWon:   won,
	}

	m.history = append(m.history, MoveRecord{
		Round:      m.round,
		MoveNumber: m.moves,
		Player:     player.Name,
		Color:      player.Color,
		Column:     column,
		Row:        row,
		Winning:    won,
		Timestamp:  time.Now().Unix(),
	})

	if won {
		m.scores[m.turn]++
		m.winner = m.turn
		m.status = RoundWon
		if m.scores[m.turn] >= m.targetScore {
			m.status = MatchWon
			result.MatchWon = true
		}
		result.Score = m.scores[m.turn]
		return result, nil
	}

	m.turn = (m.turn + 1) % len(m.players)
	return result, nil
}

// PlayRound asks src for moves until a player completes a line and returns
// that player. A won previous round is cleared first. Placement and move
// source errors are returned as is; calling PlayRound again resumes the
// round with the same player to move.
func (m *Match) PlayRound(ctx context.Context, src MoveSource) (Player, error) {
	switch m.status {
	case MatchWon:
		return Player{}, ErrMatchOver
	case RoundWon:
		m.startRound()
	}

	for {
		player := m.players[m.turn]
		column, err := src.NextMove(ctx, player)
		if err != nil {
			return Player{}, err
		}

		result, err := m.Turn(column)
		if err != nil {
			return Player{}, err
		}
		if result.RoundWon {
			return player, nil
		}
	}
}

// PlayMatch plays rounds until a player reaches the target score. The board
// is cleared after every round, including the last one.
func (m *Match) PlayMatch(ctx context.Context, src MoveSource) (Player, error) {
	if m.status == MatchWon {
		return m.players[m.winner], nil
	}

	maxScore := m.maxScore()
	var winner Player
	for maxScore < m.targetScore {
		var err error
		winner, err = m.PlayRound(ctx, src)
		if err != nil {
			return Player{}, err
		}
		if s := m.Score(winner); s > maxScore {
			maxScore = s
		}
		m.board.Init()
	}
	return winner, nil
}

func (m *Match) maxScore() int {
	best := 0
	for _, s := range m.scores {
		if s > best {
			best = s
		}
	}
	return best
}

// Board returns the board driven by the match
func (m *Match) Board() *Board {
	return m.board
}

// ConnectN returns the run length needed to win a round
func (m *Match) ConnectN() int {
	return m.connectN
}

// TargetScore returns the number of round wins needed to win the match
func (m *Match) TargetScore() int {
	return m.targetScore
}

// Players returns both players in turn order
func (m *Match) Players() [2]Player {
	return m.players
}

// CurrentPlayer returns the player to move, or the round winner once a round is won
func (m *Match) CurrentPlayer() Player {
	return m.players[m.turn]
}

// Score returns the round wins of player, matched by name
func (m *Match) Score(player Player) int {
	for i, p := range m.players {
		if p.Name == player.Name {
			return m.scores[i]
		}
	}
	return 0
}

// Scores returns round wins keyed by player name
func (m *Match) Scores() map[string]int {
	scores := make(map[string]int, len(m.players))
	for i, p := range m.players {
		scores[p.Name] = m.scores[i]
	}
	return scores
}

// Status returns the current phase
func (m *Match) Status() Status {
	return m.status
}

// Round returns the 1-based number of the current round
func (m *Match) Round() int {
	return m.round
}

// Winner returns the winner of the last completed round
func (m *Match) Winner() (Player, bool) {
	if m.winner < 0 {
		return Player{}, false
	}
	return m.players[m.winner], true
}

// History returns every successful placement since the match started
func (m *Match) History() []MoveRecord {
	return append([]MoveRecord(nil), m.history...)
}

// State returns a snapshot of the match for transport layers
func (m *Match) State() *MatchState {
	grid := m.board.Grid()
	state := &MatchState{
		Rows:          m.board.Rows(),
		Cols:          m.board.Cols(),
		ConnectN:      m.connectN,
		TargetScore:   m.targetScore,
		Grid:          grid,
		Board:         grid.Lines(),
		Players:       []Player{m.players[0], m.players[1]},
		Scores:        m.Scores(),
		Status:        m.status,
		Round:         m.round,
		MovesInRound:  m.moves,
		TotalMoves:    len(m.history),
		CurrentPlayer: m.players[m.turn],
		BoardFull:     m.board.Full(),
		OpenColumns:   m.board.OpenColumns(),
	}

	switch m.status {
	case RoundWon:
		state.RoundWinner = m.players[m.winner].Name
		state.Message = fmt.Sprintf("%s won round %d", state.RoundWinner, m.round)
	case MatchWon:
		state.RoundWinner = m.players[m.winner].Name
		state.MatchWinner = m.players[m.winner].Name
		state.Message = fmt.Sprintf("%s won the match %d round(s) to %d", state.MatchWinner, m.scores[m.winner], m.scores[1-m.winner])
	default:
		if state.BoardFull {
			state.Message = "The board is full with no winner; start the next round to continue"
		} else {
			state.Message = fmt.Sprintf("Round %d: %s (%s) to move", m.round, state.CurrentPlayer.Name, state.CurrentPlayer.Color)
		}
	}

	return state
}
