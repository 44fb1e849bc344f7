package main

import (
	"fmt"

	"github.com/lox/passtally/internal/scenario"
)

// PlayCmd replays a scenario file and reports each turn's outcome
type PlayCmd struct {
	File  string `arg:"" help:"Scenario file" type:"existingfile"`
	Quiet bool   `short:"q" help:"Only print the final board"`
}

func (c *PlayCmd) Run(globals *Globals) error {
	logger := globals.Logger("play")
	r := globals.Renderer()
	out := globals.Stdout()

	sc, err := scenario.Load(c.File)
	if err != nil {
		return err
	}
	g, err := sc.Build()
	if err != nil {
		return err
	}
	logger.Info("Loaded scenario", "name", sc.Name, "players", sc.Players, "turns", len(sc.Turns))

	results, err := sc.Play(g)
	if err != nil {
		return err
	}

	title := sc.Name
	if title == "" {
		title = c.File
	}
	fmt.Fprintln(out, r.Title(" " + title + " "))
	fmt.Fprintln(out)

	rejected := 0
	for _, res := range results {
		if res.Err != nil {
			rejected++
		}
		if c.Quiet {
			continue
		}
		status := "ok"
		if res.Err != nil {
			status = r.Error(res.Err.Error())
		}
		fmt.Fprintf(out, "turn %2d  player %d  %s, %s  %s\n", res.Index+1, res.Player, res.Turn.First, res.Turn.Second, status)
	}
	if !c.Quiet {
		fmt.Fprintln(out)
	}

	fmt.Fprint(out, r.Board(g.Board(), g.Markers(), nil))
	fmt.Fprintf(out, "\nround %d, next player %d, %d of %d turns rejected\n", g.Round(), g.NextPlayer(), rejected, len(results))
	return nil
}
