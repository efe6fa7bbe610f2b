// Package loop runs the Snake rules and drives a terminal session at a
// fixed tick rate.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/snake/internal/draw"
	"github.com/tomz197/snake/internal/input"
)

// Run creates a session and plays until quit, end of input or ctx is done.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	return NewSession(r, w, opts).Run(ctx)
}

// Run starts the Input → Update → Draw cycle, one pass per tick.
// Quitting is not an error.
func (s *Session) Run(ctx context.Context) error {
	defer s.stream.Close()

	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	defer draw.ClearScreen(s.writer)

	s.log.Infow("session started",
		"grid", fmt.Sprintf("%dx%d", s.game.Grid.Width, s.game.Grid.Height),
		"boundary", s.game.Boundary.String(),
		"tick", s.interval.String(),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		quit, err := s.tick()
		if err != nil {
			return err
		}
		if quit {
			s.log.Infow("session ended", "ticks", s.ticks, "best", s.game.Best, "resets", s.game.Resets)
			return nil
		}

		select {
		case <-ctx.Done():
			s.log.Infow("session cancelled", "ticks", s.ticks)
			return nil
		case <-ticker.C:
		}
	}
}

// tick runs a single update and render pass.
func (s *Session) tick() (quit bool, err error) {
	// ===== INPUT PHASE =====
	in := input.ReadInput(s.stream)
	if in.Quit {
		return true, nil
	}

	// ===== UPDATE PHASE =====
	if err := s.updateScreen(); err != nil {
		return false, err
	}

	var out Outcome
	if !s.tooSmall {
		out = s.game.Step(in.Directions())
		s.ticks++
	}

	// ===== DRAW PHASE =====
	if err := s.drawFrame(out); err != nil {
		return false, fmt.Errorf("draw frame: %w", err)
	}
	return false, nil
}

// updateScreen checks for terminal resize and re-centers the board.
func (s *Session) updateScreen() error {
	termWidth, termHeight, err := s.termSize()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	needWidth := s.canvas.TerminalWidth()
	needHeight := s.canvas.TerminalHeight() + hudRows
	tooSmall := termWidth < needWidth || termHeight < needHeight
	if tooSmall != s.tooSmall {
		s.tooSmall = tooSmall
		s.canvas.ForceRedraw()
		s.lastHUD = ""
		if tooSmall {
			s.log.Infow("terminal too small", "width", termWidth, "height", termHeight)
		}
	}
	if tooSmall {
		return nil
	}

	s.canvas.SetOffset((termWidth-needWidth)/2, (termHeight-needHeight)/2)
	return nil
}
