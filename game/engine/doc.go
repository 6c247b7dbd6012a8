// Package engine provides the core rules for Connect Four matches.
//
// The engine package implements:
//   - A fixed-size board with gravity-drop placement
//   - Win detection along rows, columns and both diagonals
//   - Multi-round matches scored to a target number of round wins
//   - Match presets and their validation
//
// Core Types:
//
// Board owns the grid of Pieces. Match drives two Players through rounds on a
// Board, asking an injected MoveSource for each column choice. MatchState is
// the serialisable view of a Match used by the service and transport layers.
//
// Usage:
//
//	board, err := engine.NewBoard(6, 7)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	match, err := engine.NewMatch(board, 4, 3, [2]engine.Player{
//		{Name: "Player 1", Color: engine.Red},
//		{Name: "Player 2", Color: engine.Yellow},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	winner, err := match.PlayMatch(ctx, source)
//
// Rules:
//
// Players alternate in fixed order, the first player opening every round. A
// round is won by the first player to complete an unbroken line of ConnectN
// pieces. The match is won by the first player to reach TargetScore round
// wins. A full board without a winning line has no special outcome: every
// further placement fails with ErrInvalidMove until the match is reset.
//
// Win detection scans the whole row, column and diagonals through the given
// cell, so CheckWin must be called for the piece that was just placed.
package engine
