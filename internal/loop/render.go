package loop

import (
	"fmt"

	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/object"
)

// hudRows is the number of terminal rows below the board used for text.
const hudRows = 2

const controlsText = "Arrows/WASD to steer, Q to quit"

// drawFrame paints the tick's changes onto the canvas and flushes them.
// Resets and the first frame repaint the whole board; other ticks only touch
// the vacated tail, the new head and the food.
func (s *Session) drawFrame(out Outcome) error {
	if s.tooSmall {
		return s.drawTooSmall()
	}

	if out.Reset != NoReset {
		s.canvas.ForceRedraw()
	}

	if s.canvas.NeedsRedraw() {
		s.paintAll()
		s.lastHUD = ""
	} else {
		s.paintChanges(out)
	}

	s.canvas.Render(s.chunkWriter)
	s.drawHUD()

	return s.chunkWriter.Flush()
}

// paintAll repaints every drawable from scratch.
func (s *Session) paintAll() {
	s.canvas.Clear()
	for _, d := range s.game.Drawables() {
		for _, c := range d.Cells() {
			s.paintCell(c, d)
		}
	}
}

// paintChanges applies the minimal update for a normal tick.
func (s *Session) paintChanges(out Outcome) {
	if out.HasVacated {
		col, row := s.game.Grid.ColRow(out.Vacated)
		s.canvas.Erase(col, row)
	}
	s.paintCell(s.game.Snake.Head(), s.game.Snake)
	s.paintCell(s.game.Food.Position, s.game.Food)
}

func (s *Session) paintCell(c grid.Cell, d object.Drawable) {
	col, row := s.game.Grid.ColRow(c)
	s.canvas.Set(col, row, d.Color())
}

// drawHUD writes the score line under the board when it changed.
func (s *Session) drawHUD() {
	hud := fmt.Sprintf("Score: %-4d Best: %-4d Length: %-4d", s.game.Score, s.game.Best, s.game.Snake.Length)
	if hud == s.lastHUD {
		return
	}
	s.lastHUD = hud

	col := s.canvas.OffsetCol() + 2
	row := s.canvas.OffsetRow() + s.canvas.TerminalHeight() + 1
	s.chunkWriter.WriteAt(col, row, s.painter.Bold(object.SnakeColor, hud))
	s.chunkWriter.WriteAt(col, row+1, controlsText)
}

// drawTooSmall asks the player to enlarge the terminal.
func (s *Session) drawTooSmall() error {
	msg := fmt.Sprintf("Terminal too small: need %dx%d", s.canvas.TerminalWidth(), s.canvas.TerminalHeight()+hudRows)
	if msg == s.lastHUD {
		return nil
	}
	// The canvas stays dirty so the board is repainted once the terminal fits.
	s.chunkWriter.ClearScreen()
	s.chunkWriter.WriteAt(1, 1, msg)
	err := s.chunkWriter.Flush()
	s.lastHUD = msg
	return err
}
