package piece

import "fmt"

// PartialPiece is one of the three pipe shapes a single cell can expose.
// Each shape connects the four sides of its cell in two pairs.
type PartialPiece uint8

const (
	// TopBottomLeftRight pipes top to bottom and left to right
	TopBottomLeftRight PartialPiece = iota
	// TopLeftBottomRight pipes top to left and bottom to right
	TopLeftBottomRight
	// TopRightBottomLeft pipes top to right and bottom to left
	TopRightBottomLeft
)

// PartialPieces lists every shape.
var PartialPieces = [3]PartialPiece{TopBottomLeftRight, TopLeftBottomRight, TopRightBottomLeft}

func (pp PartialPiece) String() string {
	switch pp {
	case TopBottomLeftRight:
		return "TopBottom_LeftRight"
	case TopLeftBottomRight:
		return "TopLeft_BottomRight"
	case TopRightBottomLeft:
		return "TopRight_BottomLeft"
	default:
		return fmt.Sprintf("shape(%d)", uint8(pp))
	}
}

// Pass returns the side a signal leaves through after entering from side.
// Pass(Pass(s)) == s for every shape and side.
func (pp PartialPiece) Pass(side Side) Side {
	switch pp {
	case TopLeftBottomRight:
		switch side {
		case Top:
			return Left
		case Left:
			return Top
		case Bottom:
			return Right
		case Right:
			return Bottom
		}
	case TopRightBottomLeft:
		switch side {
		case Top:
			return Right
		case Right:
			return Top
		case Bottom:
			return Left
		case Left:
			return Bottom
		}
	}
	return side.Opposite()
}

// RotatedPartialPiece is a shape turned clockwise by Rotation quarter-turns.
// It is what a board cell exposes for routing.
type RotatedPartialPiece struct {
	Shape    PartialPiece
	Rotation Rotation
}

// NewRotatedPartialPiece creates a rotated shape
func NewRotatedPartialPiece(shape PartialPiece, rotation Rotation) RotatedPartialPiece {
	return RotatedPartialPiece{Shape: shape, Rotation: rotation}
}

// Pass maps side into the shape's own frame, passes through it and maps the
// exit back into board orientation.
func (rp RotatedPartialPiece) Pass(side Side) Side {
	local := side.Rotate(rp.Rotation.Inverse())
	return rp.Shape.Pass(local).Rotate(rp.Rotation)
}

func (rp RotatedPartialPiece) String() string {
	return fmt.Sprintf("%s@%d", rp.Shape, rp.Rotation)
}
