package game

import (
	"github.com/tomz197/bugcrossing/internal/object"
)

// updateEntities moves every entity and applies collision events. Entities
// are not updated once the game has ended.
func updateEntities(s *State, ctx object.UpdateContext) {
	if s.Over() {
		return
	}
	ctx.Level = s.Level
	ctx.Player = s.player
	if ctx.Rand == nil {
		ctx.Rand = s.rng
	}

	for _, e := range s.Enemies {
		if e.Update(ctx) == object.EventCollision {
			// The reset replaced the enemy set; the rest of this pass is stale.
			s.LoseLife()
			return
		}
	}
	if p, ok := s.Player(); ok {
		p.Update(ctx)
	}
}
