package loop

import (
	"bufio"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/input"
	"github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/object"
)

// Options configures a terminal session.
type Options struct {
	Settings     config.Settings
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Logger       *zap.SugaredLogger
}

// Session owns everything one player's terminal needs: the game, the output
// surface, the input stream and the tick clock. It is built when the player
// connects and torn down when they quit.
type Session struct {
	game        *Game
	writer      io.Writer
	chunkWriter *draw.ChunkWriter
	painter     *draw.Painter
	canvas      *draw.Canvas
	stream      *input.Stream
	termSize    draw.TermSizeFunc
	interval    time.Duration
	log         *zap.SugaredLogger

	tooSmall bool   // Terminal cannot fit the board; updates are held
	lastHUD  string // HUD text currently on screen
	ticks    int
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	settings := opts.Settings

	game := NewGame(GameOptions{
		Grid:     settings.GridModel(),
		Boundary: settings.BoundaryMode(),
		Seed:     settings.RandSeed(),
		Logger:   log,
	})

	painter := draw.NewPainter(w)
	return &Session{
		game:        game,
		writer:      w,
		chunkWriter: draw.NewChunkWriter(w),
		painter:     painter,
		canvas:      draw.NewCanvas(game.Grid.Width, game.Grid.Height, painter, object.BorderColor),
		stream:      input.StartStream(r),
		termSize:    termSize,
		interval:    settings.TickInterval(),
		log:         log,
	}
}

// Game returns the session's game state.
func (s *Session) Game() *Game {
	return s.game
}

// Ticks returns the number of completed ticks.
func (s *Session) Ticks() int {
	return s.ticks
}
