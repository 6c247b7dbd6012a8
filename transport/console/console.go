package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/connectfour/game/engine"
)

var (
	// ErrQuit is returned when a player types q at the prompt.
	ErrQuit = errors.New("player quit")
	// ErrBoardFull is returned by NextMove when no column can take a piece.
	ErrBoardFull = errors.New("board is full")
)

// Console plays a hot-seat match on a terminal. It renders the board before
// every prompt and reads the chosen column from its input, one per line.
type Console struct {
	match *engine.Match
	out   io.Writer

	in       io.Reader
	lines    chan string
	done     chan struct{}
	startOne sync.Once
	stopOne  sync.Once
}

// New creates a console for match reading from in and writing to out
func New(match *engine.Match, in io.Reader, out io.Writer) *Console {
	return &Console{
		match: match,
		in:    in,
		out:   out,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
}

// readLines feeds input lines to NextMove so that a blocked read never
// outlives a cancelled context.
func (c *Console) readLines() {
	defer close(c.lines)
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-c.done:
			return
		}
	}
}

// Close stops the input reader
func (c *Console) Close() {
	c.stopOne.Do(func() { close(c.done) })
}

// NextMove implements engine.MoveSource. Lines that are not numbers are
// re-prompted here; numbers outside the board are left to the engine.
func (c *Console) NextMove(ctx context.Context, player engine.Player) (int, error) {
	c.startOne.Do(func() { go c.readLines() })

	board := c.match.Board()
	if board.Full() {
		return 0, ErrBoardFull
	}

	Render(c.out, c.match.State())
	fmt.Fprintf(c.out, "%s's turn (%s)\n", player.Name, player.Color)

	for {
		fmt.Fprintf(c.out, "Enter column between 0 and %d to add a piece (q to quit): ", board.Cols()-1)

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case line, ok := <-c.lines:
			if !ok {
				return 0, io.ErrUnexpectedEOF
			}
			line = strings.TrimSpace(line)
			if strings.EqualFold(line, "q") || strings.EqualFold(line, "quit") {
				return 0, ErrQuit
			}
			column, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintf(c.out, "%q is not a column number\n", line)
				continue
			}
			return column, nil
		}
	}
}

// Play runs the match to completion and returns its winner. Rejected drops
// are reported and the same player is asked again. A board filled without a
// winner starts the match over.
func (c *Console) Play(ctx context.Context) (engine.Player, error) {
	defer c.Close()

	for {
		if winner, ok := c.match.Winner(); ok && c.match.Status() == engine.MatchWon {
			Render(c.out, c.match.State())
			fmt.Fprintf(c.out, "%s won the match\n", winner.Name)
			return winner, nil
		}

		winner, err := c.match.PlayRound(ctx, c)
		switch {
		case err == nil:
			Render(c.out, c.match.State())
			fmt.Fprintf(c.out, "%s won round %d\n", winner.Name, c.match.Round())
		case errors.Is(err, ErrBoardFull):
			fmt.Fprintf(c.out, "The board is full and nobody connected. Round %d does not count, scores stay as they are.\n", c.match.Round())
			if err := c.match.NextRound(); err != nil {
				return engine.Player{}, err
			}
		case errors.Is(err, engine.ErrInvalidMove):
			fmt.Fprintf(c.out, "%v, try again\n", err)
		default:
			return engine.Player{}, err
		}
	}
}

// Render writes the board top row first between column separators, under a
// row of column indices, followed by the score line.
func Render(w io.Writer, state *engine.MatchState) {
	if state == nil || len(state.Board) == 0 {
		return
	}

	var b strings.Builder
	for c := 0; c < state.Cols; c++ {
		fmt.Fprintf(&b, "  %-2d", c)
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))

	for _, line := range state.Board {
		b.Reset()
		b.WriteByte('|')
		for i := 0; i < len(line); i++ {
			cell := line[i]
			if cell == '.' {
				cell = ' '
			}
			b.WriteByte(' ')
			b.WriteByte(cell)
			b.WriteString(" |")
		}
		fmt.Fprintln(w, b.String())
	}

	scores := make([]string, 0, len(state.Players))
	for _, p := range state.Players {
		scores = append(scores, fmt.Sprintf("%s %d", p.Name, state.Scores[p.Name]))
	}
	fmt.Fprintf(w, "Round %d | %s | first to %d\n", state.Round, strings.Join(scores, " - "), state.TargetScore)
}
