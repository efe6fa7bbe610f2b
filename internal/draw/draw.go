// Package draw renders grid cells to an ANSI terminal.
package draw

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Block characters for drawing. Each terminal character holds two grid rows:
// the upper half is the foreground, the lower half the background.
const (
	BlockFull      = "█"
	BlockUpperHalf = "▀"
	BlockLowerHalf = "▄"
	BlockEmpty     = " "
)

// cellPair is the upper and lower grid cell sharing one terminal character.
// Zero alpha means empty.
type cellPair struct {
	upper, lower color.RGBA
}

// Painter turns colors into styled terminal strings.
// Styles are cached per color pair since the palette is tiny.
type Painter struct {
	renderer *lipgloss.Renderer
	pairs    map[cellPair]string
}

// NewPainter creates a painter for output written to w. The color profile is
// forced to true color because SSH sessions are not detected as terminals.
func NewPainter(w io.Writer) *Painter {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)
	return &Painter{
		renderer: r,
		pairs:    make(map[cellPair]string),
	}
}

// Pair returns the half-block glyph showing upper above lower.
func (p *Painter) Pair(upper, lower color.RGBA) string {
	key := cellPair{upper: upper, lower: lower}
	if s, ok := p.pairs[key]; ok {
		return s
	}

	var s string
	switch {
	case upper.A == 0 && lower.A == 0:
		s = BlockEmpty
	case lower.A == 0:
		s = p.Text(upper, BlockUpperHalf)
	case upper.A == 0:
		s = p.Text(lower, BlockLowerHalf)
	case upper == lower:
		s = p.Text(upper, BlockFull)
	default:
		s = p.renderer.NewStyle().Foreground(Hex(upper)).Background(Hex(lower)).Render(BlockUpperHalf)
	}
	p.pairs[key] = s
	return s
}

// Text returns s with c as foreground color.
func (p *Painter) Text(c color.RGBA, s string) string {
	return p.renderer.NewStyle().Foreground(Hex(c)).Render(s)
}

// Bold returns s in bold with c as foreground color.
func (p *Painter) Bold(c color.RGBA, s string) string {
	return p.renderer.NewStyle().Bold(true).Foreground(Hex(c)).Render(s)
}

// Hex converts c into a lipgloss color.
func Hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}
