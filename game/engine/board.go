package engine

import "fmt"

// Board holds a rows x cols grid with row 0 at the top. Pieces fall towards
// the last row, so the occupied cells of every column form a contiguous block
// anchored at the bottom.
type Board struct {
	rows int
	cols int
	grid [][]Piece
}

// NewBoard creates a cleared board with the given dimensions
func NewBoard(rows, cols int) (*Board, error) {
	if rows < MinBoardSize || rows > MaxBoardSize {
		return nil, fmt.Errorf("%w: rows must be between %d and %d, got %d", ErrInvalidConfig, MinBoardSize, MaxBoardSize, rows)
	}
	if cols < MinBoardSize || cols > MaxBoardSize {
		return nil, fmt.Errorf("%w: cols must be between %d and %d, got %d", ErrInvalidConfig, MinBoardSize, MaxBoardSize, cols)
	}

	b := &Board{rows: rows, cols: cols}
	b.Init()
	return b, nil
}

// Init resets every cell to Empty
func (b *Board) Init() {
	grid := make([][]Piece, b.rows)
	for r := range grid {
		grid[r] = make([]Piece, b.cols)
	}
	b.grid = grid
}

// Rows returns the number of rows
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the number of columns
func (b *Board) Cols() int {
	return b.cols
}

// PlacePiece drops piece into column and returns the row it landed on.
// The grid is left untouched when an error is returned.
func (b *Board) PlacePiece(column int, piece Piece) (int, error) {
	if !piece.Valid() {
		return 0, fmt.Errorf("%w: cannot place %s", ErrInvalidPiece, piece)
	}
	if column < 0 || column >= b.cols {
		return 0, &MoveError{Column: column, Reason: ReasonOutOfRange}
	}

	for row := b.rows - 1; row >= 0; row-- {
		if b.grid[row][column] == Empty {
			b.grid[row][column] = piece
			return row, nil
		}
	}

	return 0, &MoveError{Column: column, Reason: ReasonColumnFull}
}

// CheckWin reports whether piece has a run of at least connectN cells on the
// row, the column or either diagonal passing through (row, col). Each line is
// scanned end to end, so the answer is only meaningful for the piece that was
// just placed at (row, col).
func (b *Board) CheckWin(connectN, row, col int, piece Piece) bool {
	if connectN < 1 || !piece.Valid() {
		return false
	}

	// horizontal
	count := 0
	for c := 0; c < b.cols; c++ {
		count = b.extend(count, row, c, piece)
		if count == connectN {
			return true
		}
	}

	// vertical
	count = 0
	for r := 0; r < b.rows; r++ {
		count = b.extend(count, r, col, piece)
		if count == connectN {
			return true
		}
	}

	// diagonal, constant row+col
	count = 0
	for r := 0; r < b.rows; r++ {
		count = b.extend(count, r, row+col-r, piece)
		if count == connectN {
			return true
		}
	}

	// anti-diagonal, constant row-col
	count = 0
	for r := b.rows - 1; r >= 0; r-- {
		count = b.extend(count, r, col-row+r, piece)
		if count == connectN {
			return true
		}
	}

	return false
}

// extend returns the run length after visiting (r, c): incremented on a
// match, zero on a mismatch or when the cell is off the board.
func (b *Board) extend(count, r, c int, piece Piece) int {
	if r < 0 || r >= b.rows || c < 0 || c >= b.cols {
		return 0
	}
	if b.grid[r][c] != piece {
		return 0
	}
	return count + 1
}

// Grid returns a copy of the cells
func (b *Board) Grid() Grid {
	grid := make(Grid, b.rows)
	for r := range b.grid {
		grid[r] = append([]Piece(nil), b.grid[r]...)
	}
	return grid
}

// At returns the piece at (row, col), or Empty when off the board
func (b *Board) At(row, col int) Piece {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return Empty
	}
	return b.grid[row][col]
}

// Full reports whether no column can accept another piece
func (b *Board) Full() bool {
	for c := 0; c < b.cols; c++ {
		if b.grid[0][c] == Empty {
			return false
		}
	}
	return true
}

// ColumnFull reports whether column has no empty cell left. Out-of-range
// columns are reported as full.
func (b *Board) ColumnFull(column int) bool {
	if column < 0 || column >= b.cols {
		return true
	}
	return b.grid[0][column] != Empty
}

// OpenColumns lists the columns that still accept a piece
func (b *Board) OpenColumns() []int {
	open := make([]int, 0, b.cols)
	for c := 0; c < b.cols; c++ {
		if !b.ColumnFull(c) {
			open = append(open, c)
		}
	}
	return open
}
