// Package game implements match state and turn execution for passtally.
//
// The main type is Game, which owns the board, the 24-slot marker track
// around it, the three piece decks and the round counter.
//
// # Basic Usage
//
// Create a match and play a turn:
//
//	g, err := game.New(2)
//	// Markers go on the track before the first round.
//	g.PlaceMarker(0, 0)
//	g.PlaceMarker(12, 1)
//	err = g.PlayTurn(game.Turn{
//	    First:  game.PlacePiece{Piece: piece.PositionedPiece{Piece: piece.Pink, Position: piece.Pos(0, 0)}},
//	    Second: game.MoveMarker{From: 0, To: 1},
//	})
//
// # Turns
//
// A Turn is two actions applied as a unit. The board and the marker track
// are copied before the first action; if either action fails both are
// restored and the first error is returned, so a rejected turn leaves no
// trace. The round counter only advances on success, and NextPlayer is
// derived from it.
//
// # Deterministic Testing
//
// Deck order is the only random part of a match. Use WithSeed or WithRand
// to fix it:
//
//	g, err := game.New(3, game.WithSeed(42))
//
// A Game is not safe for concurrent use. Callers sharing one between
// goroutines must serialise access, as internal/match does.
package game
