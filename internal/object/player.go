package object

import (
	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/render"
)

// Player is the character crossing the field. Position is always tile-aligned.
type Player struct {
	X, Y        float64
	Width       float64
	MarginLeft  float64 // Hit box inset from the left sprite edge
	MarginRight float64 // Hit box inset from the right sprite edge
	Sprite      render.SpriteID
}

// NewPlayer creates a player on the start tile.
func NewPlayer(sprite render.SpriteID) *Player {
	return &Player{
		X:           config.PlayerStartCol * config.TileWidth,
		Y:           config.PlayerStartRow * config.TileHeight,
		Width:       config.PlayerWidth,
		MarginLeft:  config.PlayerMarginLeft,
		MarginRight: config.PlayerMarginRight,
		Sprite:      sprite,
	}
}

// Move shifts the player one tile in dir if the destination stays on the field.
// reachedTop is true when the move lands on the top row.
func (p *Player) Move(dir Direction) (moved, reachedTop bool) {
	switch dir {
	case DirLeft:
		if p.X > 0 {
			p.X -= config.TileWidth
			moved = true
		}
	case DirRight:
		if p.X < config.FieldWidth-config.TileWidth {
			p.X += config.TileWidth
			moved = true
		}
	case DirUp:
		if p.Y > 0 {
			p.Y -= config.TileHeight
			moved = true
			reachedTop = p.Y == 0
		}
	case DirDown:
		if p.Y < config.FieldHeight-config.TileHeightLast {
			p.Y += config.TileHeight
			moved = true
		}
	}
	return moved, reachedTop
}

// HitBox returns the horizontal extent used for collisions.
func (p *Player) HitBox() (left, right float64) {
	return p.X + p.MarginLeft, p.X + p.Width - p.MarginRight
}

// Update is a no-op; the player only moves on input.
func (p *Player) Update(_ UpdateContext) Event {
	return EventNone
}

// Draw renders the player sprite at its position.
func (p *Player) Draw(r render.Renderer) {
	r.DrawSprite(p.Sprite, p.X, p.Y)
}
