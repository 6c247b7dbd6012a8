package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/connectfour/game/engine"
)

func newTestMatch(t *testing.T, rows, cols, connectN, target int) *engine.Match {
	t.Helper()
	match, err := engine.NewMatchFromConfig(&engine.GameConfig{
		Name:        "console",
		Rows:        rows,
		Cols:        cols,
		ConnectN:    connectN,
		TargetScore: target,
		Players: []engine.Player{
			{Name: "Ann", Color: engine.Red},
			{Name: "Bob", Color: engine.Yellow},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create match: %v", err)
	}
	return match
}

func TestRender(t *testing.T) {
	match := newTestMatch(t, 2, 3, 3, 1)
	if _, err := match.Turn(1); err != nil {
		t.Fatalf("Turn failed: %v", err)
	}

	var out bytes.Buffer
	Render(&out, match.State())

	expected := "  0   1   2\n" +
		"|   |   |   |\n" +
		"|   | R |   |\n" +
		"Round 1 | Ann 0 - Bob 0 | first to 1\n"
	if out.String() != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, out.String())
	}
}

func TestRenderNilState(t *testing.T) {
	var out bytes.Buffer
	Render(&out, nil)
	if out.Len() != 0 {
		t.Errorf("Expected no output for nil state, got %q", out.String())
	}
}

func TestNextMove(t *testing.T) {
	match := newTestMatch(t, 4, 4, 3, 1)

	tests := []struct {
		name     string
		input    string
		expected int
		err      error
	}{
		{"number", "2\n", 2, nil},
		{"surrounding spaces", "  3 \n", 3, nil},
		{"reprompt on text", "left\n1\n", 1, nil},
		{"out of range is passed through", "9\n", 9, nil},
		{"quit", "q\n", 0, ErrQuit},
		{"quit word", "QUIT\n", 0, ErrQuit},
		{"end of input", "", 0, io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := New(match, strings.NewReader(tt.input), &out)
			defer c.Close()

			column, err := c.NextMove(context.Background(), match.CurrentPlayer())
			if !errors.Is(err, tt.err) {
				t.Fatalf("Expected error %v, got %v", tt.err, err)
			}
			if column != tt.expected {
				t.Errorf("Expected column %d, got %d", tt.expected, column)
			}
			if !strings.Contains(out.String(), "Ann's turn (red)") {
				t.Errorf("Expected prompt for Ann, got %q", out.String())
			}
		})
	}
}

func TestNextMoveRepromptMessage(t *testing.T) {
	match := newTestMatch(t, 4, 4, 3, 1)
	var out bytes.Buffer
	c := New(match, strings.NewReader("abc\n0\n"), &out)
	defer c.Close()

	if _, err := c.NextMove(context.Background(), match.CurrentPlayer()); err != nil {
		t.Fatalf("NextMove failed: %v", err)
	}
	if !strings.Contains(out.String(), `"abc" is not a column number`) {
		t.Errorf("Expected reprompt message, got %q", out.String())
	}
	if n := strings.Count(out.String(), "Enter column between 0 and 3"); n != 2 {
		t.Errorf("Expected 2 prompts, got %d", n)
	}
}

func TestNextMoveContextCancelled(t *testing.T) {
	match := newTestMatch(t, 4, 4, 3, 1)
	r, w := io.Pipe()
	defer w.Close()

	c := New(match, r, io.Discard)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.NextMove(ctx, match.CurrentPlayer()); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestPlay(t *testing.T) {
	match := newTestMatch(t, 4, 4, 3, 1)
	var out bytes.Buffer

	// Ann stacks column 0, Bob column 1
	c := New(match, strings.NewReader("0\n1\n0\n1\n0\n"), &out)
	winner, err := c.Play(context.Background())
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	if winner.Name != "Ann" {
		t.Errorf("Expected Ann to win, got %s", winner.Name)
	}
	if match.Status() != engine.MatchWon {
		t.Errorf("Expected match won, got %s", match.Status())
	}
	for _, want := range []string{"Ann won round 1", "Ann won the match"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in output, got:\n%s", want, out.String())
		}
	}
}

func TestPlayResumesAfterInvalidMove(t *testing.T) {
	match := newTestMatch(t, 4, 4, 3, 1)
	var out bytes.Buffer

	c := New(match, strings.NewReader("9\n0\n1\n0\n1\n0\n"), &out)
	winner, err := c.Play(context.Background())
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	if winner.Name != "Ann" {
		t.Errorf("Expected Ann to win after the rejected drop, got %s", winner.Name)
	}
	if !strings.Contains(out.String(), "column 9 is out of range, try again") {
		t.Errorf("Expected rejected drop to be reported, got:\n%s", out.String())
	}
	if len(match.History()) != 5 {
		t.Errorf("Expected 5 recorded moves, got %d", len(match.History()))
	}
}

func TestPlayFullBoardStartsNextRound(t *testing.T) {
	match := newTestMatch(t, 2, 3, 3, 2)
	var out bytes.Buffer

	// Bottom row R Y R, top row Y R Y: no line of three
	c := New(match, strings.NewReader("0\n1\n2\n0\n1\n2\nq\n"), &out)
	_, err := c.Play(context.Background())
	if !errors.Is(err, ErrQuit) {
		t.Fatalf("Expected ErrQuit, got %v", err)
	}

	if !strings.Contains(out.String(), "Round 1 does not count") {
		t.Errorf("Expected void round notice, got:\n%s", out.String())
	}
	if match.Round() != 2 {
		t.Errorf("Expected round 2 after the full board, got %d", match.Round())
	}
	if len(match.History()) != 6 {
		t.Errorf("Expected the 6 moves of round 1 kept, got %d", len(match.History()))
	}
	for name, score := range match.Scores() {
		if score != 0 {
			t.Errorf("Expected %s to have no points, got %d", name, score)
		}
	}
	if match.Board().Full() {
		t.Error("Expected the board to be cleared")
	}
}
