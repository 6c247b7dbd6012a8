package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Piece is the content of a single board cell
type Piece uint8

const (
	Empty Piece = iota
	Red
	Yellow
)

const (
	// Validation constants
	MinBoardSize   = 2
	MaxBoardSize   = 20
	MinConnectN    = 2
	MinTargetScore = 1
	MaxTargetScore = 99
	MaxHistoryPage = 100
)

var (
	// ErrInvalidMove is returned when a column is out of range or already full.
	ErrInvalidMove = errors.New("invalid move")
	// ErrInvalidPiece is returned when placing the Empty sentinel or an unknown piece.
	ErrInvalidPiece = errors.New("invalid piece")
	// ErrRoundOver is returned by Turn once the current round has a winner.
	ErrRoundOver = errors.New("round already won")
	// ErrMatchOver is returned once a player has reached the target score.
	ErrMatchOver = errors.New("match is over")
	// ErrInvalidConfig wraps every board, match and preset validation failure.
	ErrInvalidConfig = errors.New("invalid match configuration")
)

// Reasons carried by MoveError
const (
	ReasonOutOfRange = "out_of_range"
	ReasonColumnFull = "column_full"
)

// MoveError describes a rejected placement. It matches ErrInvalidMove.
type MoveError struct {
	Column int
	Reason string
}

func (e *MoveError) Error() string {
	switch e.Reason {
	case ReasonColumnFull:
		return fmt.Sprintf("invalid move: column %d is full", e.Column)
	default:
		return fmt.Sprintf("invalid move: column %d is out of range", e.Column)
	}
}

func (e *MoveError) Unwrap() error {
	return ErrInvalidMove
}

// Valid reports whether p is a placeable color
func (p Piece) Valid() bool {
	return p == Red || p == Yellow
}

// Symbol returns the single character used in textual snapshots
func (p Piece) Symbol() byte {
	switch p {
	case Red:
		return 'R'
	case Yellow:
		return 'Y'
	default:
		return '.'
	}
}

func (p Piece) String() string {
	switch p {
	case Empty:
		return "empty"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	default:
		return fmt.Sprintf("piece(%d)", uint8(p))
	}
}

// MarshalText encodes the piece by name so grids read naturally in JSON and YAML
func (p Piece) MarshalText() ([]byte, error) {
	if p > Yellow {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPiece, uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *Piece) UnmarshalText(text []byte) error {
	parsed, err := ParsePiece(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePiece accepts a piece name or symbol, case-insensitively
func ParsePiece(s string) (Piece, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "empty", ".":
		return Empty, nil
	case "red", "r":
		return Red, nil
	case "yellow", "y":
		return Yellow, nil
	}
	return Empty, fmt.Errorf("%w: %q", ErrInvalidPiece, s)
}

// Player is an immutable name and color assignment
type Player struct {
	Name  string `json:"name" yaml:"name"`
	Color Piece  `json:"color" yaml:"color"`
}

// Grid is a read-only copy of the board cells, indexed [row][col] with row 0 at the top
type Grid [][]Piece

// Lines renders the grid as one string per row, top row first
func (g Grid) Lines() []string {
	lines := make([]string, len(g))
	for r, row := range g {
		buf := make([]byte, len(row))
		for c, cell := range row {
			buf[c] = cell.Symbol()
		}
		lines[r] = string(buf)
	}
	return lines
}

// Count returns the number of cells holding piece
func (g Grid) Count(piece Piece) int {
	n := 0
	for _, row := range g {
		for _, cell := range row {
			if cell == piece {
				n++
			}
		}
	}
	return n
}
