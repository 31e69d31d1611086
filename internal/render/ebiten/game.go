package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/bugcrossing/internal/game"
	"github.com/tomz197/bugcrossing/internal/game/config"
)

// Keys maps ebiten keys to game keys.
var Keys = map[ebiten.Key]game.Key{
	ebiten.KeyArrowLeft:  game.KeyLeft,
	ebiten.KeyArrowUp:    game.KeyUp,
	ebiten.KeyArrowRight: game.KeyRight,
	ebiten.KeyArrowDown:  game.KeyDown,
	ebiten.KeyA:          game.KeyLeft,
	ebiten.KeyW:          game.KeyUp,
	ebiten.KeyD:          game.KeyRight,
	ebiten.KeyS:          game.KeyDown,
	ebiten.KeyEnter:      game.KeyConfirm,
}

// Game adapts an Engine to ebiten.Game. Ebiten owns the frame pacing, so the
// engine is updated and rendered directly instead of through a Scheduler.
type Game struct {
	engine   *game.Engine
	renderer *Renderer
}

func NewGame(engine *game.Engine, renderer *Renderer) *Game {
	return &Game{engine: engine, renderer: renderer}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	router := g.engine.Router()
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if key, ok := Keys[k]; ok {
			router.KeyDown(key)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		router.PointerClick(float64(x), float64(y))
	}

	g.engine.Tick()
	return g.engine.Err()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetTarget(screen)
	g.engine.Render(g.renderer)
}

// Layout implements ebiten.Game. The field is drawn at its logical size and
// scaled by ebiten.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.FieldWidth, config.FieldHeight
}
