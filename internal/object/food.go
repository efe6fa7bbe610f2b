package object

import (
	"image/color"
	"math/rand"

	"github.com/tomz197/snake/internal/grid"
)

// Food is the single cell the snake is chasing.
type Food struct {
	Position  grid.Cell
	BodyColor color.RGBA
}

// NewFood creates food placed on a free cell.
func NewFood(occupied Occupancy, g grid.Grid, rng *rand.Rand) *Food {
	f := &Food{BodyColor: FoodColor}
	f.Relocate(occupied, g, rng)
	return f
}

// Relocate samples uniformly random cells until one is not occupied.
// If occupied covers the whole grid this never returns.
func (f *Food) Relocate(occupied Occupancy, g grid.Grid, rng *rand.Rand) {
	for {
		c := g.At(rng.Intn(g.Width), rng.Intn(g.Height))
		if !occupied.Has(c) {
			f.Position = c
			return
		}
	}
}

// Cells implements Drawable.
func (f *Food) Cells() []grid.Cell {
	return []grid.Cell{f.Position}
}

// Color implements Drawable.
func (f *Food) Color() color.RGBA {
	return f.BodyColor
}
