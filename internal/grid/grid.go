// Package grid provides cell coordinates, directions and boundary arithmetic
// for a fixed-size playfield.
package grid

import "fmt"

// Cell is a grid-aligned position. Coordinates are in logical units and are
// always multiples of the owning Grid's CellSize.
type Cell struct {
	X, Y int
}

// String implements fmt.Stringer.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Boundary selects what happens when a move leaves the grid.
type Boundary int

const (
	Wrap    Boundary = iota // Exiting one edge re-enters from the opposite edge
	Bounded                 // Exiting the grid is fatal
)

// String implements fmt.Stringer.
func (b Boundary) String() string {
	switch b {
	case Wrap:
		return "wrap"
	case Bounded:
		return "bounded"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary converts a config name into a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "wrap", "":
		return Wrap, nil
	case "bounded":
		return Bounded, nil
	default:
		return Wrap, fmt.Errorf("unknown boundary %q (want wrap or bounded)", s)
	}
}

// Grid holds the playfield dimensions.
type Grid struct {
	Width    int // Columns
	Height   int // Rows
	CellSize int // Logical units per cell
}

// PixelWidth returns the playfield width in logical units.
func (g Grid) PixelWidth() int {
	return g.Width * g.CellSize
}

// PixelHeight returns the playfield height in logical units.
func (g Grid) PixelHeight() int {
	return g.Height * g.CellSize
}

// Center returns the cell at the middle of the grid.
func (g Grid) Center() Cell {
	return Cell{X: g.Width / 2 * g.CellSize, Y: g.Height / 2 * g.CellSize}
}

// At returns the cell at column col and row row.
func (g Grid) At(col, row int) Cell {
	return Cell{X: col * g.CellSize, Y: row * g.CellSize}
}

// ColRow converts a cell back into column and row indices.
func (g Grid) ColRow(c Cell) (col, row int) {
	return c.X / g.CellSize, c.Y / g.CellSize
}

// Contains reports whether c lies inside the grid.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.PixelWidth() && c.Y >= 0 && c.Y < g.PixelHeight()
}

// Wrap folds c back into the grid (Snake-style torus).
func (g Grid) Wrap(c Cell) Cell {
	w := g.PixelWidth()
	h := g.PixelHeight()
	if w > 0 {
		c.X %= w
		if c.X < 0 {
			c.X += w
		}
	}
	if h > 0 {
		c.Y %= h
		if c.Y < 0 {
			c.Y += h
		}
	}
	return c
}

// Step moves c one cell in direction d. With Wrap the result is always inside
// the grid. With Bounded, ok is false when the result left the grid.
func (g Grid) Step(c Cell, d Direction, b Boundary) (next Cell, ok bool) {
	dx, dy := d.Delta()
	next = Cell{X: c.X + dx*g.CellSize, Y: c.Y + dy*g.CellSize}
	if b == Wrap {
		return g.Wrap(next), true
	}
	return next, g.Contains(next)
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}
