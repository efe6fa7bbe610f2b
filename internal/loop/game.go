package loop

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/object"
)

// ResetCause explains why a tick reset the snake.
type ResetCause int

const (
	NoReset       ResetCause = iota // The tick completed normally
	SelfCollision                   // The head ran into the body
	WallHit                         // The head left a bounded grid
)

func (c ResetCause) String() string {
	switch c {
	case SelfCollision:
		return "self-collision"
	case WallHit:
		return "wall"
	default:
		return "none"
	}
}

// Outcome tells a renderer what changed during one tick.
type Outcome struct {
	Reset      ResetCause // Non-zero when the board must be fully redrawn
	Ate        bool       // Food was eaten and relocated
	Vacated    grid.Cell  // Tail cell freed this tick
	HasVacated bool
}

// Game holds the rules state of one snake session.
type Game struct {
	Grid     grid.Grid
	Boundary grid.Boundary
	Snake    *object.Snake
	Food     *object.Food
	Score    int // Food eaten since the last reset
	Best     int // Highest score in this process
	Resets   int

	rng *rand.Rand
	log *zap.SugaredLogger
}

// GameOptions configures a new Game.
type GameOptions struct {
	Grid     grid.Grid
	Boundary grid.Boundary
	Seed     int64
	Logger   *zap.SugaredLogger
}

// NewGame creates a snake at the grid center and places the first food.
func NewGame(opts GameOptions) *Game {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	g := &Game{
		Grid:     opts.Grid,
		Boundary: opts.Boundary,
		Snake:    object.NewSnake(opts.Grid.Center()),
		rng:      rand.New(rand.NewSource(opts.Seed)),
		log:      log,
	}
	g.Food = object.NewFood(object.OccupancyOf(g.Snake), g.Grid, g.rng)
	return g
}

// Step runs one tick: queue the requested directions, commit the pending
// one, move, then resolve collisions and food.
func (g *Game) Step(dirs []grid.Direction) Outcome {
	for _, d := range dirs {
		g.Snake.SetPendingDirection(d)
	}
	g.Snake.ApplyPendingDirection()

	if !g.Snake.Advance(g.Grid, g.Boundary) {
		g.reset(WallHit)
		return Outcome{Reset: WallHit}
	}

	var out Outcome
	out.Vacated, out.HasVacated = g.Snake.Vacated()

	if g.Snake.CheckSelfCollision() {
		g.reset(SelfCollision)
		return Outcome{Reset: SelfCollision}
	}

	if g.Snake.Head() == g.Food.Position {
		g.Snake.Grow()
		g.Food.Relocate(object.OccupancyOf(g.Snake), g.Grid, g.rng)
		g.Score++
		if g.Score > g.Best {
			g.Best = g.Score
		}
		out.Ate = true
		g.log.Debugw("food eaten", "score", g.Score, "length", g.Snake.Length, "food", g.Food.Position.String())
	}

	return out
}

// reset restarts the snake and moves the food off the start cell if needed.
func (g *Game) reset(cause ResetCause) {
	g.log.Debugw("snake reset", "cause", cause.String(), "length", g.Snake.Length, "score", g.Score)

	g.Snake.Reset()
	g.Score = 0
	g.Resets++

	occupied := object.OccupancyOf(g.Snake)
	if occupied.Has(g.Food.Position) {
		g.Food.Relocate(occupied, g.Grid, g.rng)
	}
}

// Drawables returns the entities in paint order.
func (g *Game) Drawables() []object.Drawable {
	return []object.Drawable{g.Food, g.Snake}
}
