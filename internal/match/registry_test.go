package match

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/passtally/internal/board"
	"github.com/lox/passtally/internal/game"
	"github.com/lox/passtally/internal/matchid"
	"github.com/lox/passtally/internal/piece"
)

func newTestRegistry(t *testing.T) (*Registry, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return NewRegistry(logger, clock), clock
}

func placeTurn(x, y int) game.Turn {
	return game.Turn{
		First:  game.PlacePiece{Piece: piece.PositionedPiece{Piece: piece.Red, Position: piece.Pos(x, y)}},
		Second: game.PlacePiece{Piece: piece.PositionedPiece{Piece: piece.Blue, Position: piece.Pos(x, y + 1)}},
	}
}

func TestRegistry_CreateAndSnapshot(t *testing.T) {
	r, _ := newTestRegistry(t)

	id, err := r.Create(Config{Players: 2, Seed: 42})
	require.NoError(t, err)
	require.NoError(t, matchid.Validate(id))

	s, err := r.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, 2, s.PlayerCount)
	assert.Equal(t, 0, s.Round)
	assert.Equal(t, [game.DeckCount]int{game.DeckSize, game.DeckSize, game.DeckSize}, s.DeckSizes)

	_, err = r.Create(Config{Players: 0})
	assert.ErrorIs(t, err, game.ErrInvalidPlayerCount)

	_, err = r.Snapshot("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_PlayTurn(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, err := r.Create(Config{Players: 2, Seed: 1})
	require.NoError(t, err)

	require.NoError(t, r.PlayTurn(id, placeTurn(0, 0)))
	err = r.PlayTurn(id, placeTurn(0, 0))
	assert.ErrorIs(t, err, board.ErrDuplicatePiece)

	s, err := r.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Round)
	assert.Equal(t, 1, s.NextPlayer)

	assert.ErrorIs(t, r.PlayTurn("missing", placeTurn(2, 2)), ErrNotFound)
}

func TestRegistry_PlayTurnAs(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, err := r.Create(Config{Players: 3, Seed: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, r.PlayTurnAs(id, 1, placeTurn(0, 0)), ErrNotYourTurn)
	require.NoError(t, r.PlayTurnAs(id, 0, placeTurn(0, 0)))
	require.NoError(t, r.PlayTurnAs(id, 1, placeTurn(2, 0)))
	assert.ErrorIs(t, r.PlayTurnAs(id, 1, placeTurn(4, 0)), ErrNotYourTurn)
}

func TestRegistry_MarkersAndDraw(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, err := r.Create(Config{Players: 2, Seed: 3})
	require.NoError(t, err)

	require.NoError(t, r.PlaceMarker(id, 4, 1))
	assert.ErrorIs(t, r.PlaceMarker(id, 4, 0), game.ErrMarkerPresent)

	s, err := r.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, game.Slot{Player: 1, Occupied: true}, s.Markers[4])

	decks, err := r.Decks(id)
	require.NoError(t, err)
	drawn, err := r.Draw(id, 0)
	require.NoError(t, err)
	assert.Equal(t, decks[0][0], drawn)
	_, err = r.Draw(id, 5)
	assert.ErrorIs(t, err, game.ErrInvalidDeck)

	s, err = r.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, game.DeckSize-1, s.DeckSizes[0])

	after, err := r.Decks(id)
	require.NoError(t, err)
	assert.Equal(t, decks[0][1:], after[0])
	assert.Equal(t, decks[1], after[1])

	_, err = r.Decks("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_ConcurrentTurns(t *testing.T) {
	r, _ := newTestRegistry(t)
	id, err := r.Create(Config{Players: 4, Seed: 9})
	require.NoError(t, err)

	// Every worker tries to place on the same pair of rows; the lock makes
	// exactly one attempt per column pair succeed.
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for x := 0; x < piece.BoardSize; x += 2 {
				_ = r.PlayTurn(id, placeTurn(x, 0))
			}
		}()
	}
	wg.Wait()

	s, err := r.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Round)
	assert.Equal(t, 6, s.Board.PiecesPlaced())
}

func TestRegistry_ListRemoveAndReap(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r, clock := newTestRegistry(t)
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := r.Create(Config{Players: i + 1})
		require.NoError(t, err, fmt.Sprintf("match %d", i))
		ids = append(ids, id)
	}

	list := r.List()
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}

	clock.Advance(10 * time.Minute).MustWait(ctx)
	require.NoError(t, r.PlayTurn(ids[1], placeTurn(0, 0)))

	clock.Advance(10 * time.Minute).MustWait(ctx)
	reaped := r.ReapIdle(15 * time.Minute)
	assert.ElementsMatch(t, []string{ids[0], ids[2]}, reaped)

	list = r.List()
	require.Len(t, list, 1)
	assert.Equal(t, ids[1], list[0].ID)
	assert.Equal(t, 1, list[0].Round)
	assert.Equal(t, 10*time.Minute, list[0].LastActivity.Sub(list[0].CreatedAt))

	assert.True(t, r.Remove(ids[1]))
	assert.False(t, r.Remove(ids[1]))
	assert.Empty(t, r.List())
}
