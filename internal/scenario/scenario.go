// Package scenario loads match scripts from HCL files: the players and seed,
// the initial markers and a list of turns to play.
//
//	players = 2
//	seed    = 42
//
//	marker {
//	  slot   = 0
//	  player = 0
//	}
//
//	turn {
//	  action "place" {
//	    piece    = "pink"
//	    x        = 0
//	    y        = 0
//	    rotation = 0
//	  }
//	  action "move" {
//	    from = 0
//	    to   = 1
//	  }
//	}
package scenario

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/passtally/internal/game"
	"github.com/lox/passtally/internal/piece"
)

// Scenario is a decoded scenario file
type Scenario struct {
	Name    string         `hcl:"name,optional"`
	Players int            `hcl:"players"`
	Seed    int64          `hcl:"seed,optional"`
	Markers []MarkerConfig `hcl:"marker,block"`
	Turns   []TurnConfig   `hcl:"turn,block"`
}

// MarkerConfig places one marker before the first round
type MarkerConfig struct {
	Slot   int `hcl:"slot"`
	Player int `hcl:"player"`
}

// TurnConfig holds the two actions of a turn, in order
type TurnConfig struct {
	Actions []ActionConfig `hcl:"action,block"`
}

// ActionConfig is either a "place" or a "move" action.
type ActionConfig struct {
	Type string `hcl:"type,label"`

	// place
	Piece    string `hcl:"piece,optional"`
	X        *int   `hcl:"x,optional"`
	Y        *int   `hcl:"y,optional"`
	Rotation int    `hcl:"rotation,optional"`

	// move
	From *int `hcl:"from,optional"`
	To   *int `hcl:"to,optional"`
}

const (
	actionPlace = "place"
	actionMove  = "move"
)

// Load reads and validates a scenario file
func Load(filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse reads a scenario from src. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Scenario, error) {
	var sc Scenario
	if diags := gohcl.DecodeBody(body, nil, &sc); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the parts of the scenario that don't depend on play. Rule
// violations such as illegal placements are left for the game to report.
func (sc *Scenario) Validate() error {
	if sc.Players < 1 || sc.Players > game.TrackLength {
		return fmt.Errorf("players must be between 1 and %d, got %d", game.TrackLength, sc.Players)
	}

	for i, m := range sc.Markers {
		if m.Player < 0 || m.Player >= sc.Players {
			return fmt.Errorf("marker %d: player %d out of range", i, m.Player)
		}
	}

	for i, t := range sc.Turns {
		if len(t.Actions) != 2 {
			return fmt.Errorf("turn %d: expected 2 actions, got %d", i, len(t.Actions))
		}
		for j, a := range t.Actions {
			if _, err := a.Action(); err != nil {
				return fmt.Errorf("turn %d action %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// Action converts the config into a game action
func (a ActionConfig) Action() (game.Action, error) {
	switch a.Type {
	case actionPlace:
		if a.X == nil || a.Y == nil {
			return nil, errors.New("place needs x and y")
		}
		p, err := piece.ParsePiece(a.Piece)
		if err != nil {
			return nil, err
		}
		if a.Rotation < 0 || a.Rotation > 3 {
			return nil, fmt.Errorf("%w: got %d", piece.ErrInvalidRotation, a.Rotation)
		}
		return game.PlacePiece{Piece: piece.PositionedPiece{
			Piece:    p,
			Position: piece.Pos(*a.X, *a.Y),
			Rotation: piece.Rotation(a.Rotation),
		}}, nil
	case actionMove:
		if a.From == nil || a.To == nil {
			return nil, errors.New("move needs from and to")
		}
		return game.MoveMarker{From: *a.From, To: *a.To}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", a.Type)
	}
}

// GameTurns converts every scripted turn into game turns.
func (sc *Scenario) GameTurns() ([]game.Turn, error) {
	turns := make([]game.Turn, 0, len(sc.Turns))
	for i, t := range sc.Turns {
		if len(t.Actions) != 2 {
			return nil, fmt.Errorf("turn %d: expected 2 actions, got %d", i, len(t.Actions))
		}
		first, err := t.Actions[0].Action()
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", i, err)
		}
		second, err := t.Actions[1].Action()
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", i, err)
		}
		turns = append(turns, game.Turn{First: first, Second: second})
	}
	return turns, nil
}

// Build creates the game the scenario starts from, with markers placed
// but no turns played.
func (sc *Scenario) Build(opts ...game.Option) (*game.Game, error) {
	if sc.Seed != 0 {
		opts = append(opts, game.WithSeed(sc.Seed))
	}
	g, err := game.New(sc.Players, opts...)
	if err != nil {
		return nil, err
	}
	for i, m := range sc.Markers {
		if err := g.PlaceMarker(m.Slot, m.Player); err != nil {
			return nil, fmt.Errorf("marker %d: %w", i, err)
		}
	}
	return g, nil
}

// Result is the outcome of one scripted turn
type Result struct {
	Index  int
	Turn   game.Turn
	Player int
	Err    error
}

// Play runs every scripted turn against g in order. Rejected turns don't
// stop the run; their errors are reported in the results.
func (sc *Scenario) Play(g *game.Game) ([]Result, error) {
	turns, err := sc.GameTurns()
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(turns))
	for i, t := range turns {
		player := g.NextPlayer()
		results = append(results, Result{Index: i, Turn: t, Player: player, Err: g.PlayTurn(t)})
	}
	return results, nil
}
