package object

import (
	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/physics"
	"github.com/tomz197/bugcrossing/internal/render"
)

// Enemy is a bug crossing its lane left to right.
type Enemy struct {
	X, Y   float64
	Speed  float64 // Pixels per tick, or per 1/ReferenceFPS second when delta scaled
	Width  float64
	Sprite render.SpriteID
}

// NewEnemy creates an enemy at the given position with a speed drawn for level.
func NewEnemy(x, y float64, level int, rng Rand) *Enemy {
	return &Enemy{
		X:      x,
		Y:      y,
		Speed:  EnemySpeed(level, rng),
		Width:  config.EnemyWidth,
		Sprite: render.SpriteEnemyBug,
	}
}

// SpawnEnemies builds the full set of enemies for a reset: random x on the
// field, one enemy per lane in order.
func SpawnEnemies(level int, rng Rand) []*Enemy {
	enemies := make([]*Enemy, 0, config.EnemyCount)
	for i := 0; i < config.EnemyCount; i++ {
		x := rng.Float64() * (config.FieldWidth - config.TileWidth)
		y := LaneY(i%config.EnemyLanes + 1)
		enemies = append(enemies, NewEnemy(x, y, level, rng))
	}
	return enemies
}

// LaneY returns the pixel row of lane (1-based).
func LaneY(lane int) float64 {
	return float64(lane * config.TileHeight)
}

// SpeedRange returns the [min, max) speed for a level.
func SpeedRange(level int) (minSpeed, maxSpeed float64) {
	minSpeed = float64(config.EnemySpeedBase + level)
	maxSpeed = minSpeed + config.EnemySpeedSpread
	return minSpeed, maxSpeed
}

// EnemySpeed samples a uniform speed in SpeedRange(level).
func EnemySpeed(level int, rng Rand) float64 {
	minSpeed, maxSpeed := SpeedRange(level)
	return minSpeed + rng.Float64()*(maxSpeed-minSpeed)
}

// Update advances the enemy, respawns it past the right edge, then checks
// the current player.
func (e *Enemy) Update(ctx UpdateContext) Event {
	if ctx.ScaleByDelta {
		e.X += e.Speed * physics.SanitizeDelta(ctx.Delta.Seconds()) * config.ReferenceFPS
	} else {
		e.X += e.Speed
	}
	if e.X > config.FieldWidth {
		e.Respawn(ctx.Level, ctx.rng())
	}

	if p, ok := ctx.Player.Get(); ok && e.Collides(p) {
		return EventCollision
	}
	return EventNone
}

// Respawn moves the enemy just off the left edge on a random lane with a new speed.
func (e *Enemy) Respawn(level int, rng Rand) {
	e.X = -config.TileWidth
	e.Y = LaneY(1 + rng.IntN(config.EnemyLanes))
	e.Speed = EnemySpeed(level, rng)
}

// Collides reports whether the enemy overlaps the player's hit box on the same row.
func (e *Enemy) Collides(p *Player) bool {
	left, right := p.HitBox()
	return physics.SameRow(e.Y, p.Y) && physics.RangesOverlap(e.X, e.X+e.Width, left, right)
}

// Draw renders the enemy sprite at its position.
func (e *Enemy) Draw(r render.Renderer) {
	r.DrawSprite(e.Sprite, e.X, e.Y)
}
