package game

import (
	"fmt"

	"github.com/lox/passtally/internal/piece"
)

// Action is one half of a turn. The set of actions is closed: PlacePiece
// and MoveMarker.
type Action interface {
	fmt.Stringer
	action()
}

// PlacePiece lays a piece on the board.
type PlacePiece struct {
	Piece piece.PositionedPiece
}

func (PlacePiece) action() {}

func (a PlacePiece) String() string {
	return "place " + a.Piece.String()
}

// MoveMarker moves the marker in slot From to the empty slot To.
type MoveMarker struct {
	From int
	To   int
}

func (MoveMarker) action() {}

func (a MoveMarker) String() string {
	return fmt.Sprintf("move marker %d -> %d", a.From, a.To)
}

// Turn is the two actions a player takes in one round.
type Turn struct {
	First  Action
	Second Action
}

// PlayTurn applies both actions of t or neither. On failure the board and
// markers are restored to their state before the turn and the round
// counter is left alone.
func (g *Game) PlayTurn(t Turn) error {
	if missing(t.First) || missing(t.Second) {
		return ErrIncompleteTurn
	}

	player := g.NextPlayer()
	boardBackup, markersBackup := g.board, g.markers

	err := g.do(t.First)
	if err != nil {
		err = fmt.Errorf("first action (%s): %w", t.First, err)
	} else if err = g.do(t.Second); err != nil {
		err = fmt.Errorf("second action (%s): %w", t.Second, err)
	}
	if err != nil {
		g.board = boardBackup
		g.markers = markersBackup
		return err
	}

	g.round++
	g.logger.Debug("Turn played", "round", g.round, "player", player, "first", t.First, "second", t.Second)
	return nil
}

// missing reports whether a is nil, including a typed nil pointer.
func missing(a Action) bool {
	switch a := a.(type) {
	case nil:
		return true
	case *PlacePiece:
		return a == nil
	case *MoveMarker:
		return a == nil
	}
	return false
}

func (g *Game) do(a Action) error {
	switch a := a.(type) {
	case PlacePiece:
		return g.board.PlacePiece(a.Piece)
	case MoveMarker:
		return g.moveMarker(a.From, a.To)
	case *PlacePiece:
		return g.do(*a)
	case *MoveMarker:
		return g.do(*a)
	}
	return fmt.Errorf("unknown action %T", a)
}
