// Package console is the terminal front end for a local hot-seat match.
//
// Console implements engine.MoveSource by prompting the player to move and
// reading a column number per line; Render prints the textual snapshot of a
// match. Both players share the keyboard.
//
// Usage:
//
//	c := console.New(match, os.Stdin, os.Stdout)
//	winner, err := c.Play(ctx)
package console
