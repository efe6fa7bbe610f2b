package object

import (
	"image/color"

	"github.com/tomz197/snake/internal/grid"
)

// Snake is the player-controlled body. Positions[0] is the head.
type Snake struct {
	Positions []grid.Cell
	Direction grid.Direction
	Length    int
	BodyColor color.RGBA

	start      grid.Cell
	pending    grid.Direction
	hasPending bool
	vacated    grid.Cell
	hasVacated bool
}

// NewSnake creates a one-cell snake at start heading right.
func NewSnake(start grid.Cell) *Snake {
	s := &Snake{start: start, BodyColor: SnakeColor}
	s.Reset()
	return s
}

// Reset puts the snake back on its start cell with length 1.
// A new position slice is allocated so no previous state is shared.
func (s *Snake) Reset() {
	s.Positions = []grid.Cell{s.start}
	s.Length = 1
	s.Direction = grid.Right
	s.hasPending = false
	s.hasVacated = false
}

// Start returns the cell the snake resets to.
func (s *Snake) Start() grid.Cell {
	return s.start
}

// Head returns the head cell.
func (s *Snake) Head() grid.Cell {
	return s.Positions[0]
}

// SetPendingDirection queues d for the next tick. A reversal of the current
// direction is silently ignored.
func (s *Snake) SetPendingDirection(d grid.Direction) {
	if d == s.Direction.Opposite() {
		return
	}
	s.pending = d
	s.hasPending = true
}

// Pending returns the queued direction, if any.
func (s *Snake) Pending() (grid.Direction, bool) {
	return s.pending, s.hasPending
}

// ApplyPendingDirection commits the queued direction.
func (s *Snake) ApplyPendingDirection() {
	if !s.hasPending {
		return
	}
	s.Direction = s.pending
	s.hasPending = false
}

// Advance moves the head one cell. It returns false, leaving the snake
// untouched, when the boundary is Bounded and the head would leave the grid.
// Without pending growth the tail is dropped and remembered as vacated.
func (s *Snake) Advance(g grid.Grid, b grid.Boundary) bool {
	head, ok := g.Step(s.Head(), s.Direction, b)
	if !ok {
		return false
	}

	growing := s.Length != len(s.Positions)
	s.Positions = append(s.Positions, grid.Cell{})
	copy(s.Positions[1:], s.Positions)
	s.Positions[0] = head

	if growing {
		s.hasVacated = false
		return true
	}
	last := len(s.Positions) - 1
	s.vacated = s.Positions[last]
	s.hasVacated = true
	s.Positions = s.Positions[:last]
	return true
}

// Vacated returns the tail cell freed by the last Advance, if any.
func (s *Snake) Vacated() (grid.Cell, bool) {
	return s.vacated, s.hasVacated
}

// CheckSelfCollision reports whether the head overlaps the rest of the body.
// A tail freed during the same tick is no longer part of the body.
func (s *Snake) CheckSelfCollision() bool {
	head := s.Head()
	for _, c := range s.Positions[1:] {
		if c == head {
			return true
		}
	}
	return false
}

// Grow lengthens the snake by one; the tail stays put on the next Advance.
func (s *Snake) Grow() {
	s.Length++
}

// Cells implements Drawable.
func (s *Snake) Cells() []grid.Cell {
	return s.Positions
}

// Color implements Drawable.
func (s *Snake) Color() color.RGBA {
	return s.BodyColor
}
