package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/passtally/internal/board"
	"github.com/lox/passtally/internal/piece"
)

func newMatch(t *testing.T, players int) *Game {
	t.Helper()
	g, err := New(players, WithSeed(42), WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	return g
}

// fillTrack puts a marker on every slot except the given ones.
func fillTrack(t *testing.T, g *Game, empty ...int) {
	t.Helper()
	skip := make(map[int]bool, len(empty))
	for _, s := range empty {
		skip[s] = true
	}
	for slot := 0; slot < TrackLength; slot++ {
		if !skip[slot] {
			require.NoError(t, g.PlaceMarker(slot, slot%g.PlayerCount()))
		}
	}
}

func placeAt(p piece.Piece, x, y int, rotation piece.Rotation) PlacePiece {
	return PlacePiece{Piece: piece.PositionedPiece{Piece: p, Position: piece.Pos(x, y), Rotation: rotation}}
}

func TestGame_Creation(t *testing.T) {
	g := newMatch(t, 2)

	assert.Equal(t, 0, g.Round())
	assert.Equal(t, 0, g.NextPlayer())
	assert.Equal(t, 2, g.PlayerCount())
	assert.Equal(t, board.New(), g.Board())
	assert.Equal(t, [TrackLength]Slot{}, g.Markers())

	counts := make(map[piece.Piece]int)
	for _, d := range g.Decks() {
		assert.Len(t, d, DeckSize)
		for _, p := range d {
			counts[p]++
		}
	}
	require.Len(t, counts, len(piece.Pieces))
	for p, n := range counts {
		assert.Equal(t, 7, n, "copies of %s", p)
	}
}

func TestGame_CreationDeterministic(t *testing.T) {
	a, err := New(3, WithSeed(7))
	require.NoError(t, err)
	b, err := New(3, WithSeed(7))
	require.NoError(t, err)
	assert.Equal(t, a.Decks(), b.Decks())
}

func TestGame_InvalidPlayerCount(t *testing.T) {
	for _, n := range []int{0, -1, 25} {
		_, err := New(n)
		assert.ErrorIs(t, err, ErrInvalidPlayerCount, "players %d", n)
	}
}

func TestGame_PlayTurn(t *testing.T) {
	g := newMatch(t, 2)
	fillTrack(t, g, 1, 2, 3)

	err := g.PlayTurn(Turn{
		First:  placeAt(piece.Pink, 0, 0, 0),
		Second: MoveMarker{From: 0, To: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, g.Round())
	assert.Equal(t, 1, g.NextPlayer())
	b := g.Board()
	assert.Equal(t, uint32(1), b.Height(piece.Pos(1, 0)))

	markers := g.Markers()
	assert.False(t, markers[0].Occupied)
	assert.Equal(t, Slot{Player: 0, Occupied: true}, markers[1])
}

func TestGame_PlayTurnRollback(t *testing.T) {
	t.Run("second action fails", func(t *testing.T) {
		g := newMatch(t, 2)
		fillTrack(t, g, 5, 17)
		before := g.State()

		err := g.PlayTurn(Turn{
			First:  placeAt(piece.Red, 2, 2, 1),
			Second: MoveMarker{From: 5, To: 17},
		})
		require.ErrorIs(t, err, ErrNoMarker)
		assert.Contains(t, err.Error(), "second action")
		assert.Equal(t, before, g.State())
	})

	t.Run("first action fails", func(t *testing.T) {
		g := newMatch(t, 2)
		fillTrack(t, g, 5, 17)
		before := g.State()

		err := g.PlayTurn(Turn{
			First:  placeAt(piece.Red, 5, 5, 0),
			Second: MoveMarker{From: 4, To: 5},
		})
		require.ErrorIs(t, err, board.ErrInvalidPosition)
		assert.Contains(t, err.Error(), "first action")
		assert.Equal(t, before, g.State())
	})

	t.Run("two placements that collide", func(t *testing.T) {
		g := newMatch(t, 2)
		before := g.State()

		err := g.PlayTurn(Turn{
			First:  placeAt(piece.Blue, 1, 1, 0),
			Second: placeAt(piece.Blue, 1, 1, 0),
		})
		require.ErrorIs(t, err, board.ErrDuplicatePiece)
		assert.Equal(t, before, g.State())
	})

	t.Run("marker moves are undone too", func(t *testing.T) {
		g := newMatch(t, 2)
		fillTrack(t, g, 3, 4)
		before := g.State()

		err := g.PlayTurn(Turn{
			First:  MoveMarker{From: 2, To: 3},
			Second: placeAt(piece.Green, 0, 5, 3),
		})
		require.NoError(t, err)

		err = g.PlayTurn(Turn{
			First:  MoveMarker{From: 1, To: 2},
			Second: placeAt(piece.Green, 0, 5, 3),
		})
		require.ErrorIs(t, err, board.ErrDuplicatePiece)
		assert.Equal(t, 1, g.Round())
		assert.False(t, g.Markers()[2].Occupied)
		assert.NotEqual(t, before, g.State())
	})

	t.Run("incomplete turn", func(t *testing.T) {
		g := newMatch(t, 2)
		err := g.PlayTurn(Turn{First: placeAt(piece.Red, 0, 0, 0)})
		assert.ErrorIs(t, err, ErrIncompleteTurn)
		assert.Equal(t, 0, g.Round())
	})
}

func TestGame_PointerActions(t *testing.T) {
	g := newMatch(t, 1)
	fillTrack(t, g, 10)

	a := placeAt(piece.Cyan, 3, 3, 0)
	err := g.PlayTurn(Turn{First: &a, Second: &MoveMarker{From: 9, To: 10}})
	require.NoError(t, err)
	assert.Equal(t, 0, g.NextPlayer())
}

func TestGame_NilPointerActions(t *testing.T) {
	place := placeAt(piece.Cyan, 3, 3, 0)
	tests := []struct {
		name string
		turn Turn
	}{
		{"nil place first", Turn{First: (*PlacePiece)(nil), Second: MoveMarker{From: 9, To: 10}}},
		{"nil move second", Turn{First: place, Second: (*MoveMarker)(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newMatch(t, 1)
			fillTrack(t, g, 10)
			before := g.State()

			err := g.PlayTurn(tt.turn)
			assert.ErrorIs(t, err, ErrIncompleteTurn)
			assert.Equal(t, before, g.State())
		})
	}
}

func TestGame_MoveMarker(t *testing.T) {
	tests := []struct {
		name    string
		empty   []int
		from    int
		to      int
		wantErr error
	}{
		{"adjacent", []int{4, 5, 17}, 3, 4, nil},
		{"no gaps on the short way", []int{4, 5, 17}, 0, 4, nil},
		{"one gap on the short way", []int{2, 6}, 0, 6, nil},
		{"one gap on the long way", []int{2, 3, 5, 12}, 0, 5, nil},
		{"wraps past slot 23", []int{22, 1}, 20, 1, nil},
		{"both ways too far", []int{4, 5, 10, 17, 20}, 0, 10, ErrMoveTooFar},
		{"no marker at source", []int{4, 5}, 4, 5, ErrNoMarker},
		{"destination taken", []int{4}, 0, 3, ErrMarkerPresent},
		{"same slot", []int{}, 6, 6, ErrMarkerPresent},
		{"source out of range", []int{4}, 24, 4, ErrInvalidSlot},
		{"destination out of range", []int{4}, 0, -1, ErrInvalidSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newMatch(t, 3)
			fillTrack(t, g, tt.empty...)
			before := g.Markers()

			err := g.moveMarker(tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, g.Markers())
				return
			}

			require.NoError(t, err)
			after := g.Markers()
			assert.False(t, after[tt.from].Occupied)
			assert.Equal(t, before[tt.from], after[tt.to])
		})
	}
}

func TestGame_PlaceMarker(t *testing.T) {
	g := newMatch(t, 2)

	require.NoError(t, g.PlaceMarker(0, 1))
	assert.ErrorIs(t, g.PlaceMarker(0, 0), ErrMarkerPresent)
	assert.ErrorIs(t, g.PlaceMarker(1, 2), ErrInvalidPlayer)
	assert.ErrorIs(t, g.PlaceMarker(24, 0), ErrInvalidSlot)
	require.NoError(t, g.PlaceMarker(23, 0))

	require.NoError(t, g.PlayTurn(Turn{
		First:  MoveMarker{From: 0, To: 1},
		Second: placeAt(piece.Yellow, 2, 2, 0),
	}))
	assert.ErrorIs(t, g.PlaceMarker(5, 0), ErrSetupClosed)
}

func TestGame_NextPlayer(t *testing.T) {
	g := newMatch(t, 3)
	fillTrack(t, g, 0)

	// Shuffle one marker back and forth; the gap follows it.
	want := []int{1, 2, 0, 1}
	for i, next := range want {
		from, to := 1, 0
		if i%2 == 1 {
			from, to = 0, 1
		}
		require.NoError(t, g.PlayTurn(Turn{
			First:  MoveMarker{From: from, To: to},
			Second: placeAt(piece.Red, 0, i, 0),
		}))
		assert.Equal(t, next, g.NextPlayer())
	}
	assert.Equal(t, 4, g.Round())
}

func TestGame_Draw(t *testing.T) {
	g := newMatch(t, 2)
	top := g.Decks()[1][0]

	p, err := g.Draw(1)
	require.NoError(t, err)
	assert.Equal(t, top, p)
	assert.Len(t, g.Decks()[1], DeckSize-1)
	assert.Equal(t, [DeckCount]int{DeckSize, DeckSize - 1, DeckSize}, g.State().DeckSizes)

	for i := 1; i < DeckSize; i++ {
		_, err = g.Draw(1)
		require.NoError(t, err)
	}
	_, err = g.Draw(1)
	assert.ErrorIs(t, err, ErrDeckEmpty)

	_, err = g.Draw(3)
	assert.ErrorIs(t, err, ErrInvalidDeck)
}

func TestSlotEntry(t *testing.T) {
	tests := []struct {
		slot int
		pos  piece.Position
		side piece.Side
	}{
		{0, piece.Pos(0, 0), piece.Top},
		{5, piece.Pos(5, 0), piece.Top},
		{6, piece.Pos(5, 0), piece.Right},
		{11, piece.Pos(5, 5), piece.Right},
		{12, piece.Pos(5, 5), piece.Bottom},
		{17, piece.Pos(0, 5), piece.Bottom},
		{18, piece.Pos(0, 5), piece.Left},
		{23, piece.Pos(0, 0), piece.Left},
	}

	for _, tt := range tests {
		pos, side, err := SlotEntry(tt.slot)
		require.NoError(t, err)
		assert.Equal(t, tt.pos, pos, "slot %d", tt.slot)
		assert.Equal(t, tt.side, side, "slot %d", tt.slot)
	}

	for slot := 0; slot < TrackLength; slot++ {
		pos, side, err := SlotEntry(slot)
		require.NoError(t, err)
		back, ok := ExitSlot(pos, side)
		require.True(t, ok)
		assert.Equal(t, slot, back)
	}

	_, _, err := SlotEntry(TrackLength)
	assert.ErrorIs(t, err, ErrInvalidSlot)

	_, ok := ExitSlot(piece.Pos(2, 2), piece.Top)
	assert.False(t, ok)
}

func TestGame_TraceFromSlot(t *testing.T) {
	g := newMatch(t, 2)

	path, err := g.TraceFromSlot(2)
	require.NoError(t, err)
	assert.Equal(t, piece.Pos(2, 5), path.End)

	b := g.Board()
	slot, ok := ExitSlot(path.End, b.TopPiece(path.End).Pass(path.EndSide))
	require.True(t, ok)
	assert.Equal(t, 15, slot)

	path, err = g.TraceFromSlot(20)
	require.NoError(t, err)
	assert.Equal(t, piece.Pos(5, 3), path.End)
}
