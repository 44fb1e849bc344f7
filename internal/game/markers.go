package game

import (
	"fmt"

	"github.com/lox/passtally/internal/board"
	"github.com/lox/passtally/internal/piece"
)

// TrackLength is the number of marker slots around the board.
const TrackLength = 24

// Slot is one position on the marker track
type Slot struct {
	Player   int
	Occupied bool
}

// Markers returns a copy of the marker track.
func (g *Game) Markers() [TrackLength]Slot {
	return g.markers
}

// PlaceMarker puts a marker for player on an empty slot. Markers can only be
// set up before the first round is played.
func (g *Game) PlaceMarker(slot, player int) error {
	if g.round > 0 {
		return ErrSetupClosed
	}
	if !validSlot(slot) {
		return fmt.Errorf("%w: got %d", ErrInvalidSlot, slot)
	}
	if player < 0 || player >= g.playerCount {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
	if g.markers[slot].Occupied {
		return ErrMarkerPresent
	}
	g.markers[slot] = Slot{Player: player, Occupied: true}
	return nil
}

func (g *Game) moveMarker(from, to int) error {
	if !validSlot(from) {
		return fmt.Errorf("%w: from %d", ErrInvalidSlot, from)
	}
	if !validSlot(to) {
		return fmt.Errorf("%w: to %d", ErrInvalidSlot, to)
	}
	if !g.markers[from].Occupied {
		return ErrNoMarker
	}
	if g.markers[to].Occupied {
		return ErrMarkerPresent
	}

	// Both directions matter: with 22 markers in a row and two gaps, the
	// short way round can look too far while the long way is not.
	if emptyBetween(&g.markers, from, to) > 1 && emptyBetween(&g.markers, to, from) > 1 {
		return ErrMoveTooFar
	}

	g.markers[to] = g.markers[from]
	g.markers[from] = Slot{}
	return nil
}

// emptyBetween counts the empty slots strictly between from and to, walking
// clockwise.
func emptyBetween(markers *[TrackLength]Slot, from, to int) int {
	empty := 0
	for i := (from + 1) % TrackLength; i != to; i = (i + 1) % TrackLength {
		if !markers[i].Occupied {
			empty++
		}
	}
	return empty
}

func validSlot(slot int) bool {
	return slot >= 0 && slot < TrackLength
}

// SlotEntry maps a track slot to the edge cell it faces and the side a
// signal from that slot enters the cell through. Slots run clockwise from
// the top left corner: 0-5 along the top, 6-11 down the right, 12-17 back
// along the bottom and 18-23 up the left.
func SlotEntry(slot int) (piece.Position, piece.Side, error) {
	if !validSlot(slot) {
		return piece.Position{}, 0, fmt.Errorf("%w: got %d", ErrInvalidSlot, slot)
	}

	const n = piece.BoardSize
	i := slot % n
	switch slot / n {
	case 0:
		return piece.Pos(i, 0), piece.Top, nil
	case 1:
		return piece.Pos(n-1, i), piece.Right, nil
	case 2:
		return piece.Pos(n-1-i, n-1), piece.Bottom, nil
	default:
		return piece.Pos(0, n-1-i), piece.Left, nil
	}
}

// ExitSlot maps a signal leaving edge cell pos through side back to the
// track slot it points at. ok is false if side doesn't face off the board.
func ExitSlot(pos piece.Position, side piece.Side) (slot int, ok bool) {
	const n = piece.BoardSize
	if !pos.Valid() || pos.Add(side.Delta()).Valid() {
		return 0, false
	}
	switch side {
	case piece.Top:
		return pos.X, true
	case piece.Right:
		return n + pos.Y, true
	case piece.Bottom:
		return 2*n + (n - 1 - pos.X), true
	default:
		return 3*n + (n - 1 - pos.Y), true
	}
}

// TraceFromSlot follows a signal entering the board from a track slot.
func (g *Game) TraceFromSlot(slot int) (board.Path, error) {
	pos, side, err := SlotEntry(slot)
	if err != nil {
		return board.Path{}, err
	}
	return g.board.Trace(pos, side)
}
