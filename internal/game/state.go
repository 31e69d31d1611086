// Package game implements the game state machine, the rules engine, the input
// router and the frame loop.
package game

import (
	"go.uber.org/zap"

	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/object"
	"github.com/tomz197/bugcrossing/internal/render"
)

// Phase is the top-level game phase.
type Phase int

const (
	PhaseSelectingPlayer Phase = iota // Character selection screen
	PhasePlaying                      // Active gameplay
	PhaseGameOver                     // Out of lives
	PhaseWon                          // Cleared the last level
)

func (p Phase) String() string {
	switch p {
	case PhaseSelectingPlayer:
		return "selecting-player"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase only accepts a restart.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseWon
}

// State is the whole mutable world of one game. It is owned by a single
// goroutine (the frame loop); nothing in it is safe for concurrent use.
type State struct {
	Phase        Phase
	Level        int
	Lives        int
	Timer        int  // Seconds left
	TimerRunning bool // Set by the first move after a reset
	Character    render.SpriteID
	Enemies      []*object.Enemy

	player   object.Optional[*object.Player]
	timerAcc float64 // Seconds accumulated toward the next timer tick
	rng      object.Rand
	log      *zap.Logger
}

// NewState creates a game on the character selection screen. Enemies are
// spawned right away and roam while the player chooses.
func NewState(rng object.Rand, log *zap.Logger) *State {
	if rng == nil {
		rng = object.DefaultRand
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &State{
		Phase: PhaseSelectingPlayer,
		Level: 1,
		Lives: config.InitialLives,
		rng:   rng,
		log:   log,
	}
	s.Reset()
	return s
}

// Player returns the player if one exists.
func (s *State) Player() (*object.Player, bool) {
	return s.player.Get()
}

// Won reports whether the game ended by clearing the last level.
func (s *State) Won() bool {
	return s.Phase == PhaseWon
}

// Over reports whether the game has ended, won or lost.
func (s *State) Over() bool {
	return s.Phase.Terminal()
}

// Entities returns enemies followed by the player, in draw order.
func (s *State) Entities() []object.Entity {
	entities := make([]object.Entity, 0, len(s.Enemies)+1)
	for _, e := range s.Enemies {
		entities = append(entities, e)
	}
	if p, ok := s.Player(); ok {
		entities = append(entities, p)
	}
	return entities
}
