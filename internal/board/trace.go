package board

import "github.com/lox/passtally/internal/piece"

// maxHops bounds a trace. Every piece routes reversibly, so a signal can
// pass through each (cell, side) pair at most once before it would repeat.
const maxHops = 4 * size * size

// Step is one cell a signal passed through.
type Step struct {
	Pos piece.Position
	In  piece.Side // side the signal entered the cell from
	Out piece.Side // side it left through
}

// Path is the route a signal takes across the board.
type Path struct {
	Steps []Step
	// End is the edge cell the signal stopped at.
	End piece.Position
	// EndSide is the side it entered End from.
	EndSide piece.Side
}

// Hops returns how many cells the signal moved through before stopping.
func (p Path) Hops() int {
	return len(p.Steps)
}

// Enter sends a signal into entry from side and follows the pipes until it
// arrives at an edge cell other than entry. The entry cell never counts as
// an arrival, so the signal always moves at least once.
func (b *Board) Enter(entry piece.Position, side piece.Side) (piece.Position, error) {
	path, err := b.Trace(entry, side)
	if err != nil {
		return piece.Position{}, err
	}
	return path.End, nil
}

// Trace works like Enter but returns every cell visited. A signal that would
// step off the grid fails with ErrLeftBoard; the partial path is returned
// alongside the error.
func (b *Board) Trace(entry piece.Position, side piece.Side) (Path, error) {
	if !entry.Valid() {
		return Path{}, &PositionError{Pos: entry, Err: ErrInvalidPosition}
	}

	var path Path
	pos := entry
	for {
		if len(path.Steps) >= maxHops {
			return path, &PositionError{Pos: pos, Err: ErrTraceLoop}
		}

		exit := b.TopPiece(pos).Pass(side)
		path.Steps = append(path.Steps, Step{Pos: pos, In: side, Out: exit})

		next := pos.Add(exit.Delta())
		if !next.Valid() {
			return path, &PositionError{Pos: next, Err: ErrLeftBoard}
		}

		// The next cell is entered from the side facing the one we left by.
		pos, side = next, exit.Opposite()
		if pos != entry && pos.OnEdge() {
			break
		}
	}

	path.End = pos
	path.EndSide = side
	return path, nil
}
