package piece

import (
	"errors"
	"fmt"
)

// ErrUnknownPiece is returned by ParsePiece for names that aren't a colour.
var ErrUnknownPiece = errors.New("unknown piece")

// Piece is a two-cell domino identified by its colour. Each colour carries a
// fixed pair of shapes.
type Piece uint8

const (
	Red    Piece = iota // A A
	Green               // B B
	Yellow              // C C
	Blue                // A B
	Cyan                // A C
	Pink                // C B
)

// Pieces lists every colour.
var Pieces = [6]Piece{Red, Green, Yellow, Blue, Cyan, Pink}

// String returns the colour name
func (p Piece) String() string {
	switch p {
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Blue:
		return "blue"
	case Cyan:
		return "cyan"
	case Pink:
		return "pink"
	default:
		return fmt.Sprintf("piece(%d)", uint8(p))
	}
}

// Shapes returns the shapes of the piece's first and second cell, where
// A is TopBottomLeftRight, B is TopLeftBottomRight and C is
// TopRightBottomLeft.
func (p Piece) Shapes() (PartialPiece, PartialPiece) {
	switch p {
	case Green:
		return TopLeftBottomRight, TopLeftBottomRight
	case Yellow:
		return TopRightBottomLeft, TopRightBottomLeft
	case Blue:
		return TopBottomLeftRight, TopLeftBottomRight
	case Cyan:
		return TopBottomLeftRight, TopRightBottomLeft
	case Pink:
		return TopRightBottomLeft, TopLeftBottomRight
	}
	return TopBottomLeftRight, TopBottomLeftRight
}

// ParsePiece parses a colour name, ignoring case.
func ParsePiece(name string) (Piece, error) {
	for _, p := range Pieces {
		if equalFold(name, p.String()) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPiece, name)
}

// PositionedPiece is a piece laid on the board. Position is the first cell;
// at rotation 0 the second cell lies to its right and the whole piece turns
// clockwise with Rotation.
type PositionedPiece struct {
	Piece    Piece
	Position Position
	Rotation Rotation
}

// Positions returns the two cells the piece covers, first cell first.
func (pp PositionedPiece) Positions() (Position, Position) {
	var offset Position
	switch pp.Rotation % 4 {
	case 0:
		offset = Position{X: 1, Y: 0}
	case 1:
		offset = Position{X: 0, Y: 1}
	case 2:
		offset = Position{X: -1, Y: 0}
	case 3:
		offset = Position{X: 0, Y: -1}
	}
	return pp.Position, pp.Position.Add(offset)
}

// RotatedPartialPieces returns the shapes exposed on the first and second
// cell, both turned by the piece's rotation.
func (pp PositionedPiece) RotatedPartialPieces() (RotatedPartialPiece, RotatedPartialPiece) {
	first, second := pp.Piece.Shapes()
	return NewRotatedPartialPiece(first, pp.Rotation), NewRotatedPartialPiece(second, pp.Rotation)
}

// Validate checks the parts of the piece that don't depend on the board.
func (pp PositionedPiece) Validate() error {
	if !pp.Rotation.Valid() {
		return fmt.Errorf("%w: got %d", ErrInvalidRotation, pp.Rotation)
	}
	if pp.Piece > Pink {
		return fmt.Errorf("%w: %s", ErrUnknownPiece, pp.Piece)
	}
	return nil
}

func (pp PositionedPiece) String() string {
	return fmt.Sprintf("%s at %s rot %d", pp.Piece, pp.Position, pp.Rotation)
}
