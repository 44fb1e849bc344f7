package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/passtally/internal/board"
	"github.com/lox/passtally/internal/piece"
	"github.com/lox/passtally/internal/randutil"
)

// Game is a complete passtally match.
type Game struct {
	board       board.Board
	markers     [TrackLength]Slot
	playerCount int
	round       int // rounds played
	decks       [DeckCount][]piece.Piece
	logger      *log.Logger
}

type options struct {
	rng    *rand.Rand
	logger *log.Logger
}

// Option configures a new Game
type Option func(*options)

// WithSeed shuffles the decks with a deterministic source derived from seed
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = randutil.New(seed)
	}
}

// WithRand shuffles the decks with rng
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a match for playerCount players with an empty board, an empty
// marker track and freshly shuffled decks.
func New(playerCount int, opts ...Option) (*Game, error) {
	if playerCount < 1 || playerCount > TrackLength {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, playerCount)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = randutil.New(randutil.Seed())
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	return &Game{
		board:       board.New(),
		playerCount: playerCount,
		decks:       newDecks(o.rng),
		logger:      o.logger,
	}, nil
}

// NextPlayer returns the index of the player whose turn it is.
func (g *Game) NextPlayer() int {
	return g.round % g.playerCount
}

// Round returns how many turns have been played successfully.
func (g *Game) Round() int {
	return g.round
}

// PlayerCount returns the number of players in the match
func (g *Game) PlayerCount() int {
	return g.playerCount
}

// Board returns a copy of the board.
func (g *Game) Board() board.Board {
	return g.board
}

// State is a copy of everything a presentation layer needs to draw a match.
type State struct {
	Board       board.Board
	Markers     [TrackLength]Slot
	Round       int
	NextPlayer  int
	PlayerCount int
	DeckSizes   [DeckCount]int
}

// State returns a snapshot of the match.
func (g *Game) State() State {
	s := State{
		Board:       g.board,
		Markers:     g.markers,
		Round:       g.round,
		NextPlayer:  g.NextPlayer(),
		PlayerCount: g.playerCount,
	}
	for i, d := range g.decks {
		s.DeckSizes[i] = len(d)
	}
	return s
}
