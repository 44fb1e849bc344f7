package board

import (
	"errors"
	"fmt"

	"github.com/lox/passtally/internal/piece"
)

var (
	// ErrInvalidPosition means a cell lies outside the board.
	ErrInvalidPosition = errors.New("position is outside of the board")
	// ErrHeightMismatch means the two cells under a piece have different stack heights.
	ErrHeightMismatch = errors.New("the height for the two positions isn't the same")
	// ErrDuplicatePiece means the piece would sit exactly on top of another piece.
	ErrDuplicatePiece = errors.New("cannot place a piece directly on top of another piece")
	// ErrLeftBoard means a traced signal stepped off the grid before reaching an edge cell.
	ErrLeftBoard = errors.New("signal left the board")
	// ErrTraceLoop means a traced signal never reached an edge cell.
	ErrTraceLoop = errors.New("signal never reached the edge")
)

// PositionError reports the cell a placement or trace failed at.
type PositionError struct {
	Pos piece.Position
	Err error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Pos)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}
