package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/lox/passtally/internal/randutil"
	"github.com/lox/passtally/internal/simulator"
)

// SimulateCmd runs seeded random self-play and summarises what happened
type SimulateCmd struct {
	Matches  int    `default:"100" help:"Number of matches to play"`
	Turns    int    `default:"20" help:"Turns to attempt per match"`
	Players  int    `default:"2" help:"Players per match"`
	Markers  int    `default:"2" help:"Markers each player places before the first turn"`
	Seed     *int64 `env:"PASSTALLY_SEED" help:"Deterministic seed (optional)"`
	Parallel int    `default:"4" help:"Matches played concurrently"`
}

func (c *SimulateCmd) Run(globals *Globals) error {
	logger := globals.Logger("simulate")
	r := globals.Renderer()
	out := globals.Stdout()

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = randutil.Seed()
		logger.Info("Using random seed", "seed", seed)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	sim := simulator.New(simulator.Config{
		Matches:          c.Matches,
		Players:          c.Players,
		Turns:            c.Turns,
		MarkersPerPlayer: c.Markers,
		Seed:             seed,
		Parallel:         c.Parallel,
		Logger:           logger,
	})
	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, r.Title(" passtally simulation "))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "matches        %d\n", len(report.Matches))
	fmt.Fprintf(out, "rounds played  %d of %d attempts\n", report.Rounds, report.Attempts)
	fmt.Fprintf(out, "routes traced  %d (mean %.2f hops, longest %d)\n", report.Routes, report.MeanRoute, report.LongestRoute)
	fmt.Fprintf(out, "trace errors   %d\n", report.TraceErrors)

	reasons := make([]string, 0, len(report.Rejections))
	for reason := range report.Rejections {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	if len(reasons) > 0 {
		fmt.Fprintln(out, "rejections")
		for _, reason := range reasons {
			fmt.Fprintf(out, "  %-16s %d\n", reason, report.Rejections[reason])
		}
	}
	fmt.Fprintf(out, "elapsed        %s\n", report.Elapsed.Round(time.Millisecond))
	return nil
}
