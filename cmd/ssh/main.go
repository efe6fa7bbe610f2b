package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/draw"
	applog "github.com/tomz197/snake/internal/logging"
	"github.com/tomz197/snake/internal/loop"
)

func main() {
	settings, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := applog.New(settings.Log.File, settings.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer applog.Sync(log)

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		log.Warnw("failed to get working directory", "error", workErr)
	}
	log.Infow("SSH config",
		"host", settings.SSH.Host,
		"port", settings.SSH.Port,
		"hostKeyPath", settings.SSH.HostKeyPath,
		"workingDir", workingDir,
	)

	// Cancelled on shutdown so every running game returns.
	sessionsCtx, cancelSessions := context.WithCancel(context.Background())
	defer cancelSessions()

	h := &gameHandler{
		settings: settings,
		log:      log,
		baseCtx:  sessionsCtx,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(settings.SSH.Host, settings.SSH.Port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if settings.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatalw("failed to create server", "error", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Infow("starting SSH server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalw("server error", "error", err)
		}
	}()

	<-done
	log.Info("shutting down server")

	cancelSessions()
	h.wait(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Errorw("shutdown error", "error", err)
	}
}

// gameHandler runs an independent game for every SSH session.
type gameHandler struct {
	settings config.Settings
	log      *zap.SugaredLogger
	baseCtx  context.Context
	active   sync.WaitGroup
}

// middleware handles SSH sessions and runs the game loop.
func (h *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		h.active.Add(1)
		defer h.active.Done()

		log := h.log.With("session", uuid.NewString(), "user", sess.User())
		log.Infow("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(h.baseCtx, cancel)
		defer stop()

		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
			Settings:     h.settings,
			TermSizeFunc: sizeTracker.getSize,
			Logger:       log,
		})
		if err != nil {
			log.Errorw("game error", "error", err)
		}

		log.Info("session ended")
		next(sess)
	}
}

// wait blocks until all sessions returned or the timeout passed.
func (h *gameHandler) wait(timeout time.Duration) {
	finished := make(chan struct{})
	go func() {
		h.active.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(timeout):
		h.log.Warn("sessions still running after shutdown timeout")
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
