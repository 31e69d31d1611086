package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/tomz197/bugcrossing/internal/config"
	"github.com/tomz197/bugcrossing/internal/game"
	gameconfig "github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/object"
	"github.com/tomz197/bugcrossing/internal/render"
	ebitenrender "github.com/tomz197/bugcrossing/internal/render/ebiten"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML or YAML config file")
	imagesDir := flag.String("images", "images", "directory with <sprite>.png files")
	flag.Parse()

	if err := run(*configPath, *imagesDir); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, imagesDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	engine := game.NewEngine(game.Options{
		Rand:              object.SeededRand(cfg.Game.Seed),
		Logger:            log,
		ScaleEnemyByDelta: cfg.Game.ScaleEnemyByDelta,
	})

	loader := ebitenrender.NewLoader(imagesDir, log)
	renderer := ebitenrender.NewRenderer(loader)

	ebiten.SetWindowSize(gameconfig.FieldWidth, gameconfig.FieldHeight)
	ebiten.SetWindowTitle("Bug Crossing")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Game.TargetFPS > 0 {
		ebiten.SetTPS(cfg.Game.TargetFPS)
	}

	var runErr error
	loader.OnReady(func() {
		log.Info("starting game", zap.String("images", imagesDir))
		runErr = ebiten.RunGame(ebitenrender.NewGame(engine, renderer))
	})
	loader.Load(render.Assets)

	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		return fmt.Errorf("run game: %w", runErr)
	}
	return nil
}
