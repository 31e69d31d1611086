// Package render defines the drawing and asset-loading contracts the game core consumes.
// Backends live in internal/draw (ANSI terminal) and internal/render/ebiten (window).
package render

// SpriteID names a drawable asset.
type SpriteID string

// Tiles
const (
	SpriteWater SpriteID = "water-block"
	SpriteStone SpriteID = "stone-block"
	SpriteGrass SpriteID = "grass-block"
)

// Actors and HUD
const (
	SpriteEnemyBug   SpriteID = "enemy-bug"
	SpriteHeart      SpriteID = "heart"
	SpriteHeartSmall SpriteID = "heart-small"

	SpriteCharBoy      SpriteID = "char-boy"
	SpriteCharCatGirl  SpriteID = "char-cat-girl"
	SpriteCharHornGirl SpriteID = "char-horn-girl"
	SpriteCharPinkGirl SpriteID = "char-pink-girl"
	SpriteCharPrincess SpriteID = "char-princess-girl"
)

// Characters lists the selectable player sprites in slot order.
var Characters = []SpriteID{
	SpriteCharBoy,
	SpriteCharCatGirl,
	SpriteCharHornGirl,
	SpriteCharPinkGirl,
	SpriteCharPrincess,
}

// Assets is every sprite the game draws. Loaders must have all of them ready
// before the game is initialized.
var Assets = []SpriteID{
	SpriteStone,
	SpriteWater,
	SpriteGrass,
	SpriteEnemyBug,
	SpriteCharBoy,
	SpriteCharCatGirl,
	SpriteCharHornGirl,
	SpriteCharPinkGirl,
	SpriteCharPrincess,
	SpriteHeart,
	SpriteHeartSmall,
}

// Renderer draws one frame. Coordinates are field pixels with the origin at the
// top-left corner. Implementations decide how pixels map to their output.
type Renderer interface {
	Clear()
	DrawSprite(id SpriteID, x, y float64)
	// MeasureText returns the width of s in field pixels.
	MeasureText(s string) float64
	DrawText(s string, x, y float64)
}

// Loader prepares assets. OnReady callbacks run once every requested asset is usable;
// callbacks registered after readiness run immediately.
type Loader interface {
	Load(ids []SpriteID)
	OnReady(fn func())
}
