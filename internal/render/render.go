// Package render draws boards, marker tracks and traced routes as text for
// the command line.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/passtally/internal/board"
	"github.com/lox/passtally/internal/game"
	"github.com/lox/passtally/internal/piece"
)

// Renderer formats game state for a terminal
type Renderer struct {
	title  lipgloss.Style
	cell   lipgloss.Style
	raised lipgloss.Style
	route  lipgloss.Style
	marker lipgloss.Style
	errorS lipgloss.Style
}

// New creates a renderer for out. With noColor set, or when out isn't a
// colour terminal, output is plain text.
func New(out io.Writer, noColor bool) *Renderer {
	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	} else {
		r.SetColorProfile(termenv.NewOutput(out).EnvColorProfile())
	}

	return &Renderer{
		title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		cell:   r.NewStyle().Foreground(lipgloss.Color("241")),
		raised: r.NewStyle().Foreground(lipgloss.Color("#E0E0E0")),
		route:  r.NewStyle().Foreground(lipgloss.Color("#FFCC00")).Bold(true),
		marker: r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		errorS: r.NewStyle().Foreground(lipgloss.Color("#FF5F87")),
	}
}

// Title renders a heading
func (r *Renderer) Title(s string) string {
	return r.title.Render(s)
}

// Error renders a failure message
func (r *Renderer) Error(s string) string {
	return r.errorS.Render(s)
}

// Glyph is the one-character picture of the pipes a cell exposes, keyed on
// where a signal from the top goes: "/" when it turns left, "\" when it
// turns right and "+" when it runs straight through.
func Glyph(rp piece.RotatedPartialPiece) string {
	switch rp.Pass(piece.Top) {
	case piece.Left:
		return "/"
	case piece.Right:
		return `\`
	default:
		return "+"
	}
}

// MarkerChar is how a track slot is drawn: the player number, or "." when
// empty.
func MarkerChar(s game.Slot) string {
	if !s.Occupied {
		return "."
	}
	if s.Player < 10 {
		return fmt.Sprint(s.Player)
	}
	return string(rune('a' + s.Player - 10))
}

// Board draws the grid with the marker track around it. Each cell shows its
// glyph and stack height. Cells on route, if given, are highlighted.
func (r *Renderer) Board(b board.Board, markers [game.TrackLength]game.Slot, route *board.Path) string {
	const n = piece.BoardSize
	onRoute := make(map[piece.Position]bool)
	if route != nil {
		for _, s := range route.Steps {
			onRoute[s.Pos] = true
		}
		onRoute[route.End] = true
	}

	var sb strings.Builder
	sb.WriteString("   ")
	for x := 0; x < n; x++ {
		sb.WriteString(" " + r.marker.Render(MarkerChar(markers[x])) + " ")
	}
	sb.WriteString("\n")

	for y := 0; y < n; y++ {
		sb.WriteString(" " + r.marker.Render(MarkerChar(markers[4*n-1-y])) + " ")
		for x := 0; x < n; x++ {
			pos := piece.Pos(x, y)
			text := fmt.Sprintf(" %s%d", Glyph(b.TopPiece(pos)), b.Height(pos))
			switch {
			case onRoute[pos]:
				sb.WriteString(r.route.Render(text))
			case b.Height(pos) > 0:
				sb.WriteString(r.raised.Render(text))
			default:
				sb.WriteString(r.cell.Render(text))
			}
		}
		sb.WriteString("  " + r.marker.Render(MarkerChar(markers[n+y])) + "\n")
	}

	sb.WriteString("   ")
	for x := 0; x < n; x++ {
		sb.WriteString(" " + r.marker.Render(MarkerChar(markers[3*n-1-x])) + " ")
	}
	sb.WriteString("\n")
	return sb.String()
}

// Path lists the cells a signal passed through.
func (r *Renderer) Path(p board.Path) string {
	var sb strings.Builder
	for i, s := range p.Steps {
		fmt.Fprintf(&sb, "%2d. %s in %-6s out %s\n", i+1, s.Pos, s.In, s.Out)
	}
	fmt.Fprintf(&sb, "end %s from %s after %d hops\n", r.route.Render(p.End.String()), p.EndSide, p.Hops())
	return sb.String()
}
