package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lox/passtally/internal/board"
	"github.com/lox/passtally/internal/game"
	"github.com/lox/passtally/internal/piece"
	"github.com/lox/passtally/internal/scenario"
)

// TraceCmd follows a signal from a track slot or an explicit cell and side
type TraceCmd struct {
	Scenario string `short:"f" help:"Scenario file to build the board from" type:"path"`
	Slot     *int   `short:"s" help:"Track slot to enter from (0-23)"`
	X        *int   `help:"Column of the entry cell"`
	Y        *int   `help:"Row of the entry cell"`
	Side     string `help:"Side the signal enters the cell from" default:"top" enum:"top,right,bottom,left"`
}

// Validate is called by kong once flags are parsed
func (c *TraceCmd) Validate() error {
	cell := c.X != nil || c.Y != nil
	switch {
	case c.Slot != nil && cell:
		return errors.New("--slot can't be combined with --x/--y")
	case c.Slot == nil && (c.X == nil || c.Y == nil):
		return errors.New("either --slot or both --x and --y are required")
	}
	return nil
}

func (c *TraceCmd) Run(globals *Globals) error {
	logger := globals.Logger("trace")
	r := globals.Renderer()
	out := globals.Stdout()

	g, err := c.buildGame()
	if err != nil {
		return err
	}
	b := g.Board()

	var path board.Path
	switch {
	case c.Slot != nil:
		logger.Debug("Tracing from slot", "slot", *c.Slot)
		path, err = g.TraceFromSlot(*c.Slot)
	default:
		side, perr := piece.ParseSide(c.Side)
		if perr != nil {
			return perr
		}
		entry := piece.Pos(*c.X, *c.Y)
		logger.Debug("Tracing from cell", "pos", entry, "side", side)
		path, err = b.Trace(entry, side)
	}

	fmt.Fprintln(out, r.Title(" passtally trace "))
	fmt.Fprintln(out)
	fmt.Fprint(out, r.Board(b, g.Markers(), &path))
	fmt.Fprintln(out)
	if err != nil {
		for i, s := range path.Steps {
			fmt.Fprintf(out, "%2d. %s in %s out %s\n", i+1, s.Pos, s.In, s.Out)
		}
		fmt.Fprintln(os.Stderr, r.Error(err.Error()))
		return err
	}
	fmt.Fprint(out, r.Path(path))

	if slot, ok := game.ExitSlot(path.End, b.TopPiece(path.End).Pass(path.EndSide)); ok {
		fmt.Fprintf(out, "exit slot %d\n", slot)
	}
	return nil
}

func (c *TraceCmd) buildGame() (*game.Game, error) {
	if c.Scenario == "" {
		return game.New(1)
	}
	sc, err := scenario.Load(c.Scenario)
	if err != nil {
		return nil, err
	}
	g, err := sc.Build()
	if err != nil {
		return nil, err
	}
	if _, err := sc.Play(g); err != nil {
		return nil, err
	}
	return g, nil
}
