package piece

import (
	"errors"
	"fmt"
)

// ErrInvalidRotation is returned when a rotation falls outside 0..3.
var ErrInvalidRotation = errors.New("rotation must be between 0 and 3")

// Side represents one of the four sides of a board cell
type Side uint8

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Sides lists every side in clockwise order starting at Top
var Sides = [4]Side{Top, Right, Bottom, Left}

// String returns the string representation of a side
func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// Opposite returns the side facing s across a cell
func (s Side) Opposite() Side {
	return s.Rotate(2)
}

// Rotate turns the side clockwise by r quarter-turns.
func (s Side) Rotate(r Rotation) Side {
	return Side((uint8(s) + uint8(r)) % 4)
}

// Delta is the offset to the neighbouring cell that shares this side.
func (s Side) Delta() Position {
	switch s {
	case Top:
		return Position{X: 0, Y: -1}
	case Bottom:
		return Position{X: 0, Y: 1}
	case Left:
		return Position{X: -1, Y: 0}
	case Right:
		return Position{X: 1, Y: 0}
	}
	return Position{}
}

// ParseSide parses a side name such as "top" or "Left".
func ParseSide(name string) (Side, error) {
	for _, s := range Sides {
		if equalFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown side %q", name)
}

// Rotation is a number of clockwise quarter-turns, 0..3
type Rotation uint8

// Valid reports whether r is one of the four quarter-turn amounts.
func (r Rotation) Valid() bool {
	return r < 4
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	return Rotation((4 - uint8(r)%4) % 4)
}
