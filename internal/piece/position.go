package piece

import (
	"fmt"
	"strings"
)

// BoardSize is the width and height of the board in cells.
const BoardSize = 6

// Position is a cell on the board. X grows to the right and Y grows
// downward, with (0,0) in the top left corner. Both are 0..5 when on the
// board.
type Position struct {
	X int
	Y int
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns the componentwise sum of p and o
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Valid reports whether p lies on the board.
func (p Position) Valid() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// OnEdge reports whether p is in the outer ring of cells.
func (p Position) OnEdge() bool {
	return p.X == 0 || p.Y == 0 || p.X == BoardSize-1 || p.Y == BoardSize-1
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}
