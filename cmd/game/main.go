package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/bugcrossing/internal/config"
	"github.com/tomz197/bugcrossing/internal/draw"
	"github.com/tomz197/bugcrossing/internal/game"
	"github.com/tomz197/bugcrossing/internal/input"
	"github.com/tomz197/bugcrossing/internal/object"
	"github.com/tomz197/bugcrossing/internal/render"
)

// defaultLogFile keeps log lines off the game screen.
const defaultLogFile = "bugcrossing.log"

func main() {
	configPath := flag.String("config", "", "path to a TOML or YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Logging.Output == "stderr" || cfg.Logging.Output == "stdout" {
		cfg.Logging.Output = defaultLogFile
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	return play(context.Background(), cfg, log)
}

func play(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	out := os.Stdout
	draw.HideCursor(out)
	draw.EnableMouse(out)
	draw.ClearScreen(out)
	defer func() {
		draw.DisableMouse(out)
		draw.ResetStyle(out)
		draw.ClearScreen(out)
		draw.ShowCursor(out)
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	engine := game.NewEngine(game.Options{
		Rand:              object.SeededRand(cfg.Game.Seed),
		Logger:            log,
		ScaleEnemyByDelta: cfg.Game.ScaleEnemyByDelta,
	})
	screen := draw.NewTerminal(out, nil)

	go func() {
		defer cancel()
		if err := input.Pump(os.Stdin, engine.Router(), screen.CellToField); err != nil {
			log.Warn("input stopped", zap.Error(err))
		}
	}()

	sched := game.NewFrameScheduler(cfg.Game.TargetFPS)
	screen.OnReady(func() {
		engine.Start(sched, screen)
	})
	screen.Load(render.Assets)

	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return engine.Err()
}
