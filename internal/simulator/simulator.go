// Package simulator plays seeded random matches to exercise the rules
// engine and gather statistics about rejected turns and signal routes.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/passtally/internal/board"
	"github.com/lox/passtally/internal/game"
	"github.com/lox/passtally/internal/match"
	"github.com/lox/passtally/internal/piece"
	"github.com/lox/passtally/internal/randutil"
)

// Config holds configuration for running simulations
type Config struct {
	Matches int
	Players int
	// Turns is how many successful turns each match aims for.
	Turns int
	// MaxAttempts caps the turns tried per match, accepted or not.
	// Zero means 20 attempts per wanted turn.
	MaxAttempts int
	// MarkersPerPlayer is how many markers each player sets up.
	MarkersPerPlayer int
	Seed             int64
	Parallel         int
	Logger           *log.Logger
	Clock            quartz.Clock
	// Registry hosts the matches while they are played. Each match is
	// removed again once it finishes. Nil creates a private registry.
	Registry *match.Registry
}

// MatchResult summarises one simulated match
type MatchResult struct {
	Seed         int64
	Rounds       int
	Attempts     int
	PiecesPlaced int
	Rejections   map[string]int
	// RouteLengths holds the hop count of the signal from each track slot
	// on the final board. Routes that leave the board are counted in
	// TraceErrors instead.
	RouteLengths []int
	TraceErrors  int
}

// Report aggregates all matches of a run
type Report struct {
	Matches      []MatchResult
	Rounds       int
	Attempts     int
	Rejections   map[string]int
	Routes       int
	TraceErrors  int
	LongestRoute int
	MeanRoute    float64
	Elapsed      time.Duration
}

// Simulator runs passtally match simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Players <= 0 {
		config.Players = 2
	}
	if config.Parallel <= 0 {
		config.Parallel = 1
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = config.Turns * 20
	}
	if config.MarkersPerPlayer <= 0 {
		config.MarkersPerPlayer = 2
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Registry == nil {
		config.Registry = match.NewRegistry(config.Logger, config.Clock)
	}
	return &Simulator{config: config}
}

// Run plays every match and returns the aggregated report
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Matches <= 0 {
		return nil, errors.New("at least one match is required")
	}
	if s.config.Players*s.config.MarkersPerPlayer > game.TrackLength {
		return nil, fmt.Errorf("%d players with %d markers each don't fit on the track", s.config.Players, s.config.MarkersPerPlayer)
	}

	start := s.config.Clock.Now()
	results := make([]MatchResult, s.config.Matches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)
	for i := range results {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			result, err := s.playMatch(ctx, seed)
			if err != nil {
				return fmt.Errorf("match %d (seed %d): %w", i, seed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := aggregate(results)
	report.Elapsed = s.config.Clock.Since(start)
	s.config.Logger.Info("Simulation complete",
		"matches", len(results),
		"rounds", report.Rounds,
		"attempts", report.Attempts,
		"elapsed", report.Elapsed)
	return report, nil
}

func (s *Simulator) playMatch(ctx context.Context, seed int64) (MatchResult, error) {
	reg := s.config.Registry
	id, err := reg.Create(match.Config{Players: s.config.Players, Seed: seed})
	if err != nil {
		return MatchResult{}, err
	}
	defer reg.Remove(id)

	rng := randutil.New(seed)
	if err := s.setupMarkers(id, rng); err != nil {
		return MatchResult{}, err
	}

	result := MatchResult{Seed: seed, Rejections: make(map[string]int)}
	for result.Attempts < s.config.MaxAttempts {
		if err := ctx.Err(); err != nil {
			return MatchResult{}, err
		}

		state, err := reg.Snapshot(id)
		if err != nil {
			return MatchResult{}, err
		}
		if state.Round >= s.config.Turns {
			break
		}
		decks, err := reg.Decks(id)
		if err != nil {
			return MatchResult{}, err
		}

		result.Attempts++
		t, draws := randomTurn(decks, rng)
		if err := reg.PlayTurnAs(id, state.NextPlayer, t); err != nil {
			result.Rejections[Reason(err)]++
			continue
		}
		for _, d := range draws {
			if _, err := reg.Draw(id, d); err != nil {
				return MatchResult{}, err
			}
		}
	}

	state, err := reg.Snapshot(id)
	if err != nil {
		return MatchResult{}, err
	}
	result.Rounds = state.Round
	result.PiecesPlaced = state.Board.PiecesPlaced()
	for slot := 0; slot < game.TrackLength; slot++ {
		pos, side, err := game.SlotEntry(slot)
		if err != nil {
			return MatchResult{}, err
		}
		path, err := state.Board.Trace(pos, side)
		if err != nil {
			result.TraceErrors++
			continue
		}
		result.RouteLengths = append(result.RouteLengths, path.Hops())
	}

	s.config.Logger.Debug("Match finished",
		"id", id,
		"seed", seed,
		"rounds", result.Rounds,
		"attempts", result.Attempts,
		"pieces", result.PiecesPlaced)
	return result, nil
}

func (s *Simulator) setupMarkers(id string, rng *rand.Rand) error {
	slots := rng.Perm(game.TrackLength)
	next := 0
	for player := 0; player < s.config.Players; player++ {
		for m := 0; m < s.config.MarkersPerPlayer; m++ {
			if err := s.config.Registry.PlaceMarker(id, slots[next], player); err != nil {
				return err
			}
			next++
		}
	}
	return nil
}

// randomTurn builds a turn of two random actions. Placements use the top
// piece of a random non-empty deck; the decks to draw from once the turn is
// accepted are returned alongside.
func randomTurn(decks [game.DeckCount][]piece.Piece, rng *rand.Rand) (game.Turn, []int) {
	var draws []int
	actions := make([]game.Action, 0, 2)

	for len(actions) < 2 {
		if rng.IntN(3) > 0 {
			deck := rng.IntN(game.DeckCount)
			depth := 0
			for _, d := range draws {
				if d == deck {
					depth++
				}
			}
			if depth < len(decks[deck]) {
				actions = append(actions, game.PlacePiece{Piece: piece.PositionedPiece{
					Piece:    decks[deck][depth],
					Position: piece.Pos(rng.IntN(piece.BoardSize), rng.IntN(piece.BoardSize)),
					Rotation: piece.Rotation(rng.IntN(4)),
				}})
				draws = append(draws, deck)
				continue
			}
		}

		from := rng.IntN(game.TrackLength)
		step := 1 + rng.IntN(3)
		if rng.IntN(2) == 0 {
			step = game.TrackLength - step
		}
		actions = append(actions, game.MoveMarker{From: from, To: (from + step) % game.TrackLength})
	}

	return game.Turn{First: actions[0], Second: actions[1]}, draws
}

// Reason names the rule a rejected turn broke.
func Reason(err error) string {
	switch {
	case errors.Is(err, board.ErrInvalidPosition):
		return "invalid_position"
	case errors.Is(err, board.ErrHeightMismatch):
		return "height_mismatch"
	case errors.Is(err, board.ErrDuplicatePiece):
		return "duplicate_piece"
	case errors.Is(err, game.ErrNoMarker):
		return "no_marker"
	case errors.Is(err, game.ErrMarkerPresent):
		return "marker_present"
	case errors.Is(err, game.ErrMoveTooFar):
		return "too_far"
	default:
		return "other"
	}
}

func aggregate(results []MatchResult) *Report {
	report := &Report{Matches: results, Rejections: make(map[string]int)}
	total := 0
	for _, r := range results {
		report.Rounds += r.Rounds
		report.Attempts += r.Attempts
		report.TraceErrors += r.TraceErrors
		for reason, n := range r.Rejections {
			report.Rejections[reason] += n
		}
		for _, hops := range r.RouteLengths {
			report.Routes++
			total += hops
			report.LongestRoute = max(report.LongestRoute, hops)
		}
	}
	if report.Routes > 0 {
		report.MeanRoute = float64(total) / float64(report.Routes)
	}
	return report
}
