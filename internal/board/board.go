// Package board holds the 6x6 grid of stacked pieces. It validates
// placements and traces signals from one edge of the board to another.
package board

import (
	"fmt"

	"github.com/lox/passtally/internal/piece"
)

const size = piece.BoardSize

// Board is the grid of placed pieces. All state lives in fixed arrays
// indexed [x][y], so copying a Board value takes a full snapshot.
type Board struct {
	topPieces [size][size]piece.RotatedPartialPiece // exposed routing shape per cell
	tileID    [size][size]uint32                    // placement stamp, 0 for bare board
	height    [size][size]uint32                    // pieces stacked on each cell
	nextID    uint32
}

// New returns an empty board. Bare cells route straight through, which is
// also what the zero value of RotatedPartialPiece does.
func New() Board {
	return Board{nextID: 1}
}

// PlacePiece lays p on the board. Nothing changes unless every check passes:
// both cells must be on the board, at equal height, and must not both
// belong to one previously placed piece.
func (b *Board) PlacePiece(p piece.PositionedPiece) error {
	if err := p.Validate(); err != nil {
		return err
	}

	pos1, pos2 := p.Positions()
	if !pos1.Valid() {
		return &PositionError{Pos: pos1, Err: ErrInvalidPosition}
	}
	if !pos2.Valid() {
		return &PositionError{Pos: pos2, Err: ErrInvalidPosition}
	}

	if b.Height(pos1) != b.Height(pos2) {
		return fmt.Errorf("%w: %d at %s, %d at %s", ErrHeightMismatch, b.Height(pos1), pos1, b.Height(pos2), pos2)
	}

	// Bare cells never count as the same piece.
	id1, id2 := b.TileID(pos1), b.TileID(pos2)
	if id1 != 0 && id2 != 0 && id1 == id2 {
		return ErrDuplicatePiece
	}

	b.height[pos1.X][pos1.Y]++
	b.height[pos2.X][pos2.Y]++

	id := b.NextID()
	b.tileID[pos1.X][pos1.Y] = id
	b.tileID[pos2.X][pos2.Y] = id
	b.nextID = id + 1

	first, second := p.RotatedPartialPieces()
	b.topPieces[pos1.X][pos1.Y] = first
	b.topPieces[pos2.X][pos2.Y] = second

	return nil
}

// TopPiece returns the shape exposed at pos. pos must be valid.
func (b *Board) TopPiece(pos piece.Position) piece.RotatedPartialPiece {
	return b.topPieces[pos.X][pos.Y]
}

// TileID returns the stamp of the piece on top of pos, or 0 for bare board.
func (b *Board) TileID(pos piece.Position) uint32 {
	return b.tileID[pos.X][pos.Y]
}

// Height returns how many pieces cover pos.
func (b *Board) Height(pos piece.Position) uint32 {
	return b.height[pos.X][pos.Y]
}

// Heights returns a copy of the height grid, indexed [x][y].
func (b *Board) Heights() [size][size]uint32 {
	return b.height
}

// TileIDs returns a copy of the tile id grid, indexed [x][y].
func (b *Board) TileIDs() [size][size]uint32 {
	return b.tileID
}

// NextID is the stamp the next placed piece will receive.
func (b *Board) NextID() uint32 {
	if b.nextID == 0 {
		return 1
	}
	return b.nextID
}

// PiecesPlaced returns how many pieces have been placed so far.
func (b *Board) PiecesPlaced() int {
	return int(b.NextID()) - 1
}
