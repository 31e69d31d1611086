package game

import (
	"fmt"

	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/render"
)

// rowTiles is the background tile for each field row, top to bottom.
var rowTiles = [config.Rows]render.SpriteID{
	render.SpriteWater,
	render.SpriteStone,
	render.SpriteStone,
	render.SpriteStone,
	render.SpriteGrass,
	render.SpriteGrass,
}

// HUD layout
const (
	heartX       = 10
	heartSpacing = 50
	hudTextY     = 30
	hudMargin    = 10
	messageGap   = 40
)

// drawScene draws the whole frame for the current phase.
func drawScene(s *State, r render.Renderer) {
	r.Clear()
	drawBackground(r)

	if !s.Over() {
		for _, e := range s.Entities() {
			e.Draw(r)
		}
	}
	if s.Phase == PhaseSelectingPlayer {
		drawCharacterSlots(r)
	}

	drawHUD(s, r)

	switch {
	case s.Over():
		drawEndScreen(s, r)
	case s.Phase == PhaseSelectingPlayer:
		drawSelectScreen(r)
	}
}

func drawBackground(r render.Renderer) {
	for row := 0; row < config.Rows; row++ {
		for col := 0; col < config.Columns; col++ {
			r.DrawSprite(rowTiles[row], float64(col*config.TileWidth), float64(row*config.TileHeight))
		}
	}
}

// drawCharacterSlots lays the selectable characters across the slot row.
func drawCharacterSlots(r render.Renderer) {
	for i, id := range render.Characters {
		r.DrawSprite(id, float64(i*config.TileWidth), config.SlotRow*config.TileHeight)
	}
}

// drawHUD draws lives, level and timer.
func drawHUD(s *State, r render.Renderer) {
	for i := 0; i < s.Lives; i++ {
		r.DrawSprite(render.SpriteHeartSmall, float64(heartX+i*heartSpacing), 0)
	}

	levelText := fmt.Sprintf("Level: %d", s.Level)
	r.DrawText(levelText, (config.FieldWidth-r.MeasureText(levelText))/2, hudTextY)

	timerText := fmt.Sprintf("Timer: %d", s.Timer)
	r.DrawText(timerText, config.FieldWidth-hudMargin-r.MeasureText(timerText), hudTextY)
}

func drawEndScreen(s *State, r render.Renderer) {
	title := "Game Over!"
	if s.Won() {
		title = "You Win!"
	}
	drawCentered(r, title, "Press Enter To replay")
}

func drawSelectScreen(r render.Renderer) {
	drawCentered(r, "Select Your Player please!", "Use Mouse To Select your player")
}

// drawCentered draws two lines centered horizontally around mid-field.
func drawCentered(r render.Renderer, line1, line2 string) {
	y := float64(config.FieldHeight) / 2
	r.DrawText(line1, (config.FieldWidth-r.MeasureText(line1))/2, y)
	r.DrawText(line2, (config.FieldWidth-r.MeasureText(line2))/2, y+messageGap)
}
