// Package window runs the game in a desktop window using ebiten.
package window

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/snake/internal/grid"
	"github.com/tomz197/snake/internal/loop"
	"github.com/tomz197/snake/internal/object"
)

// Title is the window caption.
const Title = "Snake"

// keyBinding maps a key to a direction.
type keyBinding struct {
	key ebiten.Key
	dir grid.Direction
}

var bindings = []keyBinding{
	{ebiten.KeyArrowUp, grid.Up},
	{ebiten.KeyW, grid.Up},
	{ebiten.KeyArrowDown, grid.Down},
	{ebiten.KeyS, grid.Down},
	{ebiten.KeyArrowLeft, grid.Left},
	{ebiten.KeyA, grid.Left},
	{ebiten.KeyArrowRight, grid.Right},
	{ebiten.KeyD, grid.Right},
}

// Game adapts loop.Game to ebiten.Game. Ebiten clears the screen every
// frame, so every drawable is repainted and the vacated cell is not needed.
type Game struct {
	game        *loop.Game
	justPressed func(ebiten.Key) bool
}

// New wraps g for ebiten.
func New(g *loop.Game) *Game {
	return &Game{
		game:        g,
		justPressed: inpututil.IsKeyJustPressed,
	}
}

// Run opens the window and blocks until it is closed or the player quits.
func Run(g *loop.Game, tickRate int) error {
	ebiten.SetWindowSize(g.Grid.PixelWidth(), g.Grid.PixelHeight())
	ebiten.SetWindowTitle(Title)
	ebiten.SetTPS(tickRate)
	if err := ebiten.RunGame(New(g)); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game: one call is one tick.
func (w *Game) Update() error {
	if w.justPressed(ebiten.KeyEscape) || w.justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	w.game.Step(w.directions())
	return nil
}

// directions returns the direction keys pressed this tick in binding order.
func (w *Game) directions() []grid.Direction {
	var dirs []grid.Direction
	for _, b := range bindings {
		if w.justPressed(b.key) {
			dirs = append(dirs, b.dir)
		}
	}
	return dirs
}

// Draw implements ebiten.Game.
func (w *Game) Draw(screen *ebiten.Image) {
	screen.Fill(object.BackgroundColor)

	size := float32(w.game.Grid.CellSize)
	for _, d := range w.game.Drawables() {
		for _, c := range d.Cells() {
			x, y := float32(c.X), float32(c.Y)
			vector.DrawFilledRect(screen, x, y, size, size, d.Color(), false)
			vector.StrokeRect(screen, x, y, size, size, 1, object.BorderColor, false)
		}
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("Score: %d  Best: %d", w.game.Score, w.game.Best))
}

// Layout implements ebiten.Game. The logical screen is always the grid.
func (w *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.game.Grid.PixelWidth(), w.game.Grid.PixelHeight()
}
