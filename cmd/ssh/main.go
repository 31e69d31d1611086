package main

import (
	"context"
	"errors"
	"flag"
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

	"github.com/tomz197/bugcrossing/internal/config"
	"github.com/tomz197/bugcrossing/internal/draw"
	"github.com/tomz197/bugcrossing/internal/game"
	"github.com/tomz197/bugcrossing/internal/input"
	"github.com/tomz197/bugcrossing/internal/object"
	"github.com/tomz197/bugcrossing/internal/render"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML or YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		log.Warn("failed to get working directory", zap.Error(workErr))
	}
	log.Info("SSH config",
		zap.String("host", cfg.SSH.Host),
		zap.String("port", cfg.SSH.Port),
		zap.String("hostKeyPath", cfg.SSH.HostKeyPath),
		zap.String("workingDir", workingDir))

	sessions := &sessionGroup{}
	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			gameMiddleware(cfg.Game, log, sessions),
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

	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal("failed to create server", zap.Error(err))
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info("starting SSH server", zap.String("addr", net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-done
	log.Info("shutting down server")

	// Stop running games first so every session gets to restore its terminal.
	sessions.stopAll(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", zap.Error(err))
	}
}

// gameMiddleware runs one independent game per SSH session.
func gameMiddleware(cfg config.GameConfig, log *zap.Logger, sessions *sessionGroup) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sessLog := log.With(
				zap.String("session", uuid.NewString()),
				zap.String("user", sess.User()))
			sessLog.Info("new game session",
				zap.String("terminal", pty.Term),
				zap.Int("width", pty.Window.Width),
				zap.Int("height", pty.Window.Height))

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			ctx, cancel := context.WithCancel(sess.Context())
			release := sessions.add(cancel)
			if err := runSession(ctx, cancel, sess, sizeTracker.getSize, cfg, sessLog); err != nil {
				sessLog.Warn("game error", zap.Error(err))
			}
			release()

			sessLog.Info("session ended")
			next(sess)
		}
	}
}

// runSession plays a game on sess until the player quits, the connection
// drops or ctx is cancelled.
func runSession(ctx context.Context, cancel context.CancelFunc, sess ssh.Session, size draw.TermSizeFunc, cfg config.GameConfig, log *zap.Logger) error {
	defer cancel()

	draw.HideCursor(sess)
	draw.EnableMouse(sess)
	draw.ClearScreen(sess)
	defer func() {
		draw.DisableMouse(sess)
		draw.ResetStyle(sess)
		draw.ClearScreen(sess)
		draw.ShowCursor(sess)
	}()

	engine := game.NewEngine(game.Options{
		Rand:              object.SeededRand(cfg.Seed),
		Logger:            log,
		ScaleEnemyByDelta: cfg.ScaleEnemyByDelta,
	})
	screen := draw.NewTerminal(sess, size)

	go func() {
		defer cancel()
		if err := input.Pump(sess, engine.Router(), screen.CellToField); err != nil {
			log.Debug("input stopped", zap.Error(err))
		}
	}()

	sched := game.NewFrameScheduler(cfg.TargetFPS)
	screen.OnReady(func() {
		engine.Start(sched, screen)
	})
	screen.Load(render.Assets)

	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return engine.Err()
}

// sessionGroup tracks running games so shutdown can stop them.
type sessionGroup struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	next    int
	cancels map[int]context.CancelFunc
}

func (g *sessionGroup) add(cancel context.CancelFunc) (release func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancels == nil {
		g.cancels = make(map[int]context.CancelFunc)
	}
	id := g.next
	g.next++
	g.cancels[id] = cancel
	g.wg.Add(1)

	return func() {
		g.mu.Lock()
		delete(g.cancels, id)
		g.mu.Unlock()
		g.wg.Done()
	}
}

// stopAll cancels every running game and waits up to timeout for them to end.
func (g *sessionGroup) stopAll(timeout time.Duration) {
	g.mu.Lock()
	for _, cancel := range g.cancels {
		cancel()
	}
	g.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(timeout):
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
