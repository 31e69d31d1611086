// Package ebiten implements the render contracts on top of Ebitengine and
// adapts a game.Engine to ebiten.Game.
package ebiten

import (
	"image"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/render"
)

// Debug font is approximately 6 pixels per character.
const charWidth = 6.0

// Palette holds the fill color of each placeholder sprite.
var Palette = map[render.SpriteID]color.RGBA{
	render.SpriteWater:        {40, 110, 220, 255},
	render.SpriteStone:        {140, 140, 150, 255},
	render.SpriteGrass:        {60, 170, 60, 255},
	render.SpriteEnemyBug:     {200, 30, 30, 255},
	render.SpriteHeart:        {230, 40, 90, 255},
	render.SpriteHeartSmall:   {230, 40, 90, 255},
	render.SpriteCharBoy:      {240, 200, 60, 255},
	render.SpriteCharCatGirl:  {250, 150, 40, 255},
	render.SpriteCharHornGirl: {150, 90, 200, 255},
	render.SpriteCharPinkGirl: {240, 120, 200, 255},
	render.SpriteCharPrincess: {255, 255, 255, 255},
}

// SpriteBounds returns the opaque area of a placeholder inside its tile-sized
// image. Tiles fill the tile, actors keep the player margins.
func SpriteBounds(id render.SpriteID) image.Rectangle {
	switch id {
	case render.SpriteWater, render.SpriteStone, render.SpriteGrass:
		return image.Rect(0, 0, config.TileWidth, config.TileHeight)
	case render.SpriteHeart, render.SpriteHeartSmall:
		return image.Rect(0, 0, 40, 30)
	case render.SpriteEnemyBug:
		return image.Rect(0, 20, config.EnemyWidth, config.TileHeight-10)
	default:
		return image.Rect(config.PlayerMarginLeft, 10, config.TileWidth-config.PlayerMarginRight, config.TileHeight-5)
	}
}

// Loader implements render.Loader. Sprites are read from Dir/<id>.png when
// Dir is set; anything missing is replaced by a solid placeholder.
type Loader struct {
	Dir string

	images  map[render.SpriteID]*ebiten.Image
	ready   bool
	pending []func()
	log     *zap.Logger
}

func NewLoader(dir string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		Dir:    dir,
		images: make(map[render.SpriteID]*ebiten.Image),
		log:    log,
	}
}

// Load prepares every id and then fires the ready callbacks.
func (l *Loader) Load(ids []render.SpriteID) {
	for _, id := range ids {
		if _, ok := l.images[id]; ok {
			continue
		}
		l.images[id] = l.load(id)
	}
	l.ready = true
	pending := l.pending
	l.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func (l *Loader) load(id render.SpriteID) *ebiten.Image {
	if l.Dir != "" {
		path := filepath.Join(l.Dir, string(id)+".png")
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err == nil {
			return img
		}
		l.log.Debug("sprite file unavailable, using placeholder", zap.String("path", path), zap.Error(err))
	}
	return placeholder(id)
}

func placeholder(id render.SpriteID) *ebiten.Image {
	img := ebiten.NewImage(config.TileWidth, config.TileHeight)
	clr, ok := Palette[id]
	if !ok {
		clr = color.RGBA{255, 0, 255, 255}
	}
	b := SpriteBounds(id)
	img.SubImage(b).(*ebiten.Image).Fill(clr)
	return img
}

// OnReady runs fn once every requested sprite is available.
func (l *Loader) OnReady(fn func()) {
	if l.ready {
		fn()
		return
	}
	l.pending = append(l.pending, fn)
}

// Image returns the loaded image for id.
func (l *Loader) Image(id render.SpriteID) (*ebiten.Image, bool) {
	img, ok := l.images[id]
	return img, ok
}

// Renderer implements render.Renderer by drawing onto the frame target set
// with SetTarget.
type Renderer struct {
	sprites *Loader
	target  *ebiten.Image
}

func NewRenderer(sprites *Loader) *Renderer {
	return &Renderer{sprites: sprites}
}

// SetTarget sets the image the following draw calls paint on.
func (r *Renderer) SetTarget(screen *ebiten.Image) {
	r.target = screen
}

func (r *Renderer) Clear() {
	if r.target != nil {
		r.target.Clear()
	}
}

func (r *Renderer) DrawSprite(id render.SpriteID, x, y float64) {
	if r.target == nil {
		return
	}
	img, ok := r.sprites.Image(id)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	r.target.DrawImage(img, op)
}

// MeasureText approximates the debug font width.
func (r *Renderer) MeasureText(s string) float64 {
	return float64(len(s)) * charWidth
}

// DrawText draws s with the debug font. Color is always white.
func (r *Renderer) DrawText(s string, x, y float64) {
	if r.target == nil {
		return
	}
	ebitenutil.DebugPrintAt(r.target, s, int(x), int(y))
}
