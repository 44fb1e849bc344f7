// Package match keeps many games in one process and serialises access to
// each of them. A Game is not safe for concurrent use, so every operation on
// a match runs under that match's own lock.
package match

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/passtally/internal/game"
	"github.com/lox/passtally/internal/matchid"
	"github.com/lox/passtally/internal/piece"
)

var (
	// ErrNotFound is returned for ids that don't name a live match.
	ErrNotFound = errors.New("match not found")
	// ErrNotYourTurn is returned when a player acts out of turn.
	ErrNotYourTurn = errors.New("not this player's turn")
)

// Config describes a match to create
type Config struct {
	Players int
	// Seed fixes the deck shuffle. Zero picks a random seed.
	Seed int64
}

// Summary holds lightweight metadata about a match.
type Summary struct {
	ID           string
	Players      int
	Round        int
	NextPlayer   int
	CreatedAt    time.Time
	LastActivity time.Time
}

type entry struct {
	mu           sync.Mutex
	id           string
	game         *game.Game
	createdAt    time.Time
	lastActivity time.Time
}

// Registry tracks live matches.
type Registry struct {
	logger *log.Logger
	clock  quartz.Clock
	newID  func() string

	mu      sync.RWMutex
	matches map[string]*entry
}

// NewRegistry constructs an empty registry.
func NewRegistry(logger *log.Logger, clock quartz.Clock) *Registry {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Registry{
		logger:  logger.WithPrefix("match"),
		clock:   clock,
		newID:   matchid.Generate,
		matches: make(map[string]*entry),
	}
}

// Create starts a new match and returns its id.
func (r *Registry) Create(cfg Config) (string, error) {
	opts := []game.Option{game.WithLogger(r.logger)}
	if cfg.Seed != 0 {
		opts = append(opts, game.WithSeed(cfg.Seed))
	}
	g, err := game.New(cfg.Players, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create match: %w", err)
	}

	now := r.clock.Now()
	e := &entry{
		id:           r.newID(),
		game:         g,
		createdAt:    now,
		lastActivity: now,
	}

	r.mu.Lock()
	r.matches[e.id] = e
	r.mu.Unlock()

	r.logger.Debug("Match created", "id", e.id, "players", cfg.Players)
	return e.id, nil
}

func (r *Registry) get(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.matches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// with runs fn holding the match's lock and records the activity.
func (r *Registry) with(id string, fn func(*game.Game) error) error {
	e, err := r.get(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastActivity = r.clock.Now()
	return fn(e.game)
}

// PlaceMarker sets up a marker before the first round.
func (r *Registry) PlaceMarker(id string, slot, player int) error {
	return r.with(id, func(g *game.Game) error {
		return g.PlaceMarker(slot, player)
	})
}

// PlayTurn plays t for whichever player is next.
func (r *Registry) PlayTurn(id string, t game.Turn) error {
	return r.with(id, func(g *game.Game) error {
		return r.play(id, g, g.NextPlayer(), t)
	})
}

// PlayTurnAs plays t only if it is player's turn.
func (r *Registry) PlayTurnAs(id string, player int, t game.Turn) error {
	return r.with(id, func(g *game.Game) error {
		if next := g.NextPlayer(); next != player {
			return fmt.Errorf("%w: player %d acted, player %d is next", ErrNotYourTurn, player, next)
		}
		return r.play(id, g, player, t)
	})
}

func (r *Registry) play(id string, g *game.Game, player int, t game.Turn) error {
	if err := g.PlayTurn(t); err != nil {
		r.logger.Debug("Turn rejected", "id", id, "player", player, "round", g.Round(), "error", err)
		return err
	}
	return nil
}

// Draw takes the top piece of one of a match's decks.
func (r *Registry) Draw(id string, deck int) (p piece.Piece, err error) {
	err = r.with(id, func(g *game.Game) error {
		p, err = g.Draw(deck)
		return err
	})
	return p, err
}

// Decks returns copies of a match's draw piles, top first.
func (r *Registry) Decks(id string) (decks [game.DeckCount][]piece.Piece, err error) {
	err = r.with(id, func(g *game.Game) error {
		decks = g.Decks()
		return nil
	})
	return decks, err
}

// Snapshot returns a copy of a match's state.
func (r *Registry) Snapshot(id string) (game.State, error) {
	var s game.State
	err := r.with(id, func(g *game.Game) error {
		s = g.State()
		return nil
	})
	return s, err
}

// Remove deletes a match. It reports whether the match existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[id]; !ok {
		return false
	}
	delete(r.matches, id)
	r.logger.Debug("Match removed", "id", id)
	return true
}

// List returns a summary of every match, ordered by id.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.matches))
	for _, e := range r.matches {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	summaries := make([]Summary, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		summaries = append(summaries, Summary{
			ID:           e.id,
			Players:      e.game.PlayerCount(),
			Round:        e.game.Round(),
			NextPlayer:   e.game.NextPlayer(),
			CreatedAt:    e.createdAt,
			LastActivity: e.lastActivity,
		})
		e.mu.Unlock()
	}
	slices.SortFunc(summaries, func(a, b Summary) int {
		return strings.Compare(a.ID, b.ID)
	})
	return summaries
}

// ReapIdle removes matches that haven't been touched for maxIdle and returns
// their ids.
func (r *Registry) ReapIdle(maxIdle time.Duration) []string {
	cutoff := r.clock.Now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	var reaped []string
	for id, e := range r.matches {
		e.mu.Lock()
		idle := e.lastActivity.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(r.matches, id)
			reaped = append(reaped, id)
		}
	}
	slices.Sort(reaped)
	if len(reaped) > 0 {
		r.logger.Info("Reaped idle matches", "count", len(reaped), "maxIdle", maxIdle)
	}
	return reaped
}
