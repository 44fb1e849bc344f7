package game

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/passtally/internal/piece"
	"github.com/lox/passtally/internal/randutil"
)

const (
	// DeckCount is the number of draw piles.
	DeckCount = 3
	// DeckSize is the number of pieces in each pile at the start.
	DeckSize = 14

	copiesPerPiece = 7
)

// newDecks shuffles seven of each colour and deals them into three piles.
func newDecks(rng *rand.Rand) [DeckCount][]piece.Piece {
	pool := make([]piece.Piece, 0, copiesPerPiece*len(piece.Pieces))
	for i := 0; i < copiesPerPiece; i++ {
		pool = append(pool, piece.Pieces[:]...)
	}
	randutil.Shuffle(rng, pool)

	var decks [DeckCount][]piece.Piece
	for i := range decks {
		decks[i] = slices.Clone(pool[i*DeckSize : (i+1)*DeckSize])
	}
	return decks
}

// Decks returns copies of the three piles, top of each pile first.
func (g *Game) Decks() [DeckCount][]piece.Piece {
	var decks [DeckCount][]piece.Piece
	for i, d := range g.decks {
		decks[i] = slices.Clone(d)
	}
	return decks
}

// Draw takes the top piece from a pile.
func (g *Game) Draw(deck int) (piece.Piece, error) {
	if deck < 0 || deck >= DeckCount {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidDeck, deck)
	}
	if len(g.decks[deck]) == 0 {
		return 0, ErrDeckEmpty
	}
	p := g.decks[deck][0]
	g.decks[deck] = g.decks[deck][1:]
	return p, nil
}
