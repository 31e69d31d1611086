package game

import (
	"go.uber.org/zap"

	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/object"
	"github.com/tomz197/bugcrossing/internal/physics"
	"github.com/tomz197/bugcrossing/internal/render"
)

// Reset rebuilds the player and enemies and refills the timer. Lives, level
// and the selected character are kept.
func (s *State) Reset() {
	s.timerAcc = 0
	s.Timer = config.TimerMax
	s.TimerRunning = false

	if s.Phase == PhaseSelectingPlayer {
		s.player = object.None[*object.Player]()
	} else {
		s.player = object.Some(object.NewPlayer(s.Character))
	}
	s.Enemies = object.SpawnEnemies(s.Level, s.rng)
}

// SelectCharacter picks the player sprite for slot index and starts playing.
// It only has an effect once, on the selection screen.
func (s *State) SelectCharacter(index int) bool {
	if s.Phase != PhaseSelectingPlayer || index < 0 || index >= len(render.Characters) {
		return false
	}
	s.Character = render.Characters[index]
	s.Phase = PhasePlaying
	s.Reset()
	s.log.Info("character selected", zap.String("character", string(s.Character)), zap.Int("slot", index))
	return true
}

// HandleInput applies a move request. Any request starts the timer, even one
// that would leave the field. Reaching the top row clears the level.
func (s *State) HandleInput(dir object.Direction) {
	p, ok := s.Player()
	if s.Phase != PhasePlaying || !ok {
		return
	}
	s.TimerRunning = true

	_, reachedTop := p.Move(dir)
	if reachedTop {
		s.WinLevel()
	}
}

// LoseLife takes a life and resets the level, or ends the game on the last life.
func (s *State) LoseLife() {
	if s.Phase != PhasePlaying {
		return
	}
	s.Lives = physics.ClampInt(s.Lives-1, 0, config.InitialLives)
	if s.Lives > 0 {
		s.log.Info("life lost", zap.Int("lives", s.Lives), zap.Int("level", s.Level))
		s.Reset()
		return
	}
	s.Phase = PhaseGameOver
	s.TimerRunning = false
	s.log.Info("game over", zap.Int("level", s.Level))
}

// WinLevel advances to the next level, or wins the game on the last one.
func (s *State) WinLevel() {
	if s.Phase != PhasePlaying {
		return
	}
	s.Level = physics.ClampInt(s.Level+1, 1, config.MaxLevel)
	if s.Level == config.MaxLevel {
		s.Phase = PhaseWon
		s.TimerRunning = false
		s.log.Info("game won", zap.Int("lives", s.Lives))
		return
	}
	s.log.Info("level cleared", zap.Int("level", s.Level))
	s.Reset()
}

// AdvanceTimer feeds dt seconds into the countdown. Every whole second that
// accumulates takes one off the timer; hitting zero costs a life.
func (s *State) AdvanceTimer(dt float64) {
	if !s.TimerRunning || s.Phase != PhasePlaying {
		return
	}
	s.timerAcc += physics.SanitizeDelta(dt)
	for s.TimerRunning && s.timerAcc >= 1 {
		s.timerAcc--
		s.Timer--
		if s.Timer <= 0 {
			s.Timer = 0
			s.log.Info("timer expired", zap.Int("level", s.Level))
			s.LoseLife()
		}
	}
}
