// Package object holds the game entities: the snake and its food.
package object

import (
	"image/color"

	"github.com/tomz197/snake/internal/grid"
)

// Palette colors shared by every front-end.
var (
	BackgroundColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	BorderColor     = color.RGBA{R: 93, G: 216, B: 228, A: 255}
	FoodColor       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	SnakeColor      = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// Drawable is anything a renderer can paint as a set of filled cells.
type Drawable interface {
	// Cells returns the occupied cells. Callers must not modify the slice.
	Cells() []grid.Cell
	// Color returns the fill color of every cell.
	Color() color.RGBA
}

// Occupancy is a set of cells.
type Occupancy map[grid.Cell]struct{}

// Has reports whether c is in the set.
func (o Occupancy) Has(c grid.Cell) bool {
	_, ok := o[c]
	return ok
}

// OccupancyOf builds a set from the cells of the given drawables.
func OccupancyOf(ds ...Drawable) Occupancy {
	n := 0
	for _, d := range ds {
		n += len(d.Cells())
	}
	o := make(Occupancy, n)
	for _, d := range ds {
		for _, c := range d.Cells() {
			o[c] = struct{}{}
		}
	}
	return o
}
