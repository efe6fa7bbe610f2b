package draw

import (
	"image/color"
	"strings"
)

// Canvas is a grid of colored cells that only re-emits cells changed since
// the last Render. Two grid rows share one terminal row via half blocks, and
// the board is framed by a one-character border.
type Canvas struct {
	cols   int
	rows   int
	cells  []color.RGBA // Flat slice: [row * cols + col]; zero alpha means empty
	drawn  []color.RGBA // What the terminal currently shows
	redraw bool         // Emit every cell and the border on the next Render

	// Offset for centering the board in the terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	painter     *Painter
	borderColor color.RGBA
}

// NewCanvas creates a canvas of cols x rows cells.
func NewCanvas(cols, rows int, painter *Painter, border color.RGBA) *Canvas {
	return &Canvas{
		cols:        cols,
		rows:        rows,
		cells:       make([]color.RGBA, cols*rows),
		drawn:       make([]color.RGBA, cols*rows),
		redraw:      true,
		painter:     painter,
		borderColor: border,
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Changing the offset forces a full redraw.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.offsetCol = col
		c.offsetRow = row
		c.redraw = true
	}
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// TerminalWidth returns the columns the framed board occupies.
func (c *Canvas) TerminalWidth() int {
	return c.cols + 2
}

// TerminalHeight returns the rows the framed board occupies.
func (c *Canvas) TerminalHeight() int {
	return c.termRows() + 2
}

// termRows is the number of terminal rows holding the cells.
func (c *Canvas) termRows() int {
	return (c.rows + 1) / 2
}

// Set paints the cell at col,row.
func (c *Canvas) Set(col, row int, clr color.RGBA) {
	if col >= 0 && col < c.cols && row >= 0 && row < c.rows {
		clr.A = 255
		c.cells[row*c.cols+col] = clr
	}
}

// Erase empties the cell at col,row.
func (c *Canvas) Erase(col, row int) {
	if col >= 0 && col < c.cols && row >= 0 && row < c.rows {
		c.cells[row*c.cols+col] = color.RGBA{}
	}
}

// At returns the color at col,row and whether the cell is painted.
func (c *Canvas) At(col, row int) (color.RGBA, bool) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return color.RGBA{}, false
	}
	clr := c.cells[row*c.cols+col]
	return clr, clr.A != 0
}

// Clear empties every cell.
func (c *Canvas) Clear() {
	clear(c.cells)
}

// ForceRedraw makes the next Render emit the whole board, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.redraw = true
}

// NeedsRedraw reports whether the next Render clears the screen.
func (c *Canvas) NeedsRedraw() bool {
	return c.redraw
}

// Render writes changed cells to cw. After a forced redraw the screen is
// cleared and every painted cell plus the border is written.
func (c *Canvas) Render(cw *ChunkWriter) {
	full := c.redraw
	if full {
		cw.ClearScreen()
		c.renderBorder(cw)
		clear(c.drawn)
		c.redraw = false
	}

	for trow := 0; trow < c.termRows(); trow++ {
		upper := trow * 2 * c.cols
		lower := upper + c.cols
		hasLower := trow*2+1 < c.rows

		for col := 0; col < c.cols; col++ {
			top := c.cells[upper+col]
			changed := top != c.drawn[upper+col]
			c.drawn[upper+col] = top

			var bottom color.RGBA
			if hasLower {
				bottom = c.cells[lower+col]
				changed = changed || bottom != c.drawn[lower+col]
				c.drawn[lower+col] = bottom
			}
			if !changed {
				continue
			}

			cw.MoveCursor(c.cellColumn(col), c.cellRow(trow))
			cw.WriteString(c.painter.Pair(top, bottom))
		}
	}
}

// cellColumn returns the 1-based terminal column of a grid column.
func (c *Canvas) cellColumn(col int) int {
	return c.offsetCol + 2 + col
}

// cellRow returns the 1-based terminal row of a terminal row index.
func (c *Canvas) cellRow(trow int) int {
	return c.offsetRow + 2 + trow
}

// renderBorder draws a box around the board.
func (c *Canvas) renderBorder(cw *ChunkWriter) {
	inner := c.cols
	left := c.offsetCol + 1
	top := c.offsetRow + 1
	bottom := c.offsetRow + c.termRows() + 2
	right := left + inner + 1

	cw.WriteAt(left, top, c.painter.Text(c.borderColor, "┌"+strings.Repeat("─", inner)+"┐"))
	cw.WriteAt(left, bottom, c.painter.Text(c.borderColor, "└"+strings.Repeat("─", inner)+"┘"))

	bar := c.painter.Text(c.borderColor, "│")
	for row := top + 1; row < bottom; row++ {
		cw.WriteAt(left, row, bar)
		cw.WriteAt(right, row, bar)
	}
}
