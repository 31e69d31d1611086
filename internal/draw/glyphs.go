package draw

import "github.com/tomz197/bugcrossing/internal/render"

// Cells per field tile.
const (
	TileCols = 10
	TileRows = 4
)

// glyph is the terminal rendition of a sprite. Tiles fill their whole cell
// block; actors overlay their lines on whatever is underneath.
type glyph struct {
	tile  bool
	fill  Cell     // For tiles
	lines []string // For actors
	fg    Color
	col   int // Offset inside the tile, in cells
	row   int
}

var glyphs = map[render.SpriteID]glyph{
	render.SpriteWater: {tile: true, fill: Cell{Ch: '~', FG: ColorWhite, BG: ColorBlue}},
	render.SpriteStone: {tile: true, fill: Cell{Ch: ' ', FG: ColorBlack, BG: ColorStone}},
	render.SpriteGrass: {tile: true, fill: Cell{Ch: '"', FG: ColorYellow, BG: ColorGrass}},

	render.SpriteEnemyBug: {
		lines: []string{" ,-----. ", "<(o o   )=", " `-----' "},
		fg:    ColorRed, row: 1,
	},

	render.SpriteCharBoy:      {lines: []string{" o ", "/|\\", "/ \\"}, fg: ColorWhite, col: 4, row: 1},
	render.SpriteCharCatGirl:  {lines: []string{"^o^", "/|\\", "/ \\"}, fg: ColorOrange, col: 4, row: 1},
	render.SpriteCharHornGirl: {lines: []string{"}o{", "/|\\", "/ \\"}, fg: ColorPurple, col: 4, row: 1},
	render.SpriteCharPinkGirl: {lines: []string{" o ", "/|\\", "/^\\"}, fg: ColorPink, col: 4, row: 1},
	render.SpriteCharPrincess: {lines: []string{"\\W/", " o ", "/|\\"}, fg: ColorYellow, col: 4, row: 1},

	render.SpriteHeart:      {lines: []string{"♥♥"}, fg: ColorRed},
	render.SpriteHeartSmall: {lines: []string{"♥"}, fg: ColorRed},
}

// missingGlyph stands in for sprites that were never loaded.
var missingGlyph = glyph{lines: []string{"?"}, fg: ColorPink}
