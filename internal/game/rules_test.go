package game

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/object"
	"github.com/tomz197/bugcrossing/internal/render"
)

func newPlayingState(t *testing.T) *State {
	t.Helper()
	s := NewState(fixedRand{f: 0.1}, nil)
	require.True(t, s.SelectCharacter(0))
	return s
}

func requireFreshReset(t *testing.T, s *State) {
	t.Helper()
	require.Len(t, s.Enemies, config.EnemyCount)
	for _, e := range s.Enemies {
		lane := int(e.Y) / config.TileHeight
		assert.Zero(t, int(e.Y)%config.TileHeight)
		assert.GreaterOrEqual(t, lane, 1)
		assert.LessOrEqual(t, lane, config.EnemyLanes)
	}
	assert.Equal(t, config.TimerMax, s.Timer)
	assert.False(t, s.TimerRunning)
}

func TestNewStateSelecting(t *testing.T) {
	s := NewState(fixedRand{f: 0.5}, nil)
	assert.Equal(t, PhaseSelectingPlayer, s.Phase)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, config.InitialLives, s.Lives)
	_, ok := s.Player()
	assert.False(t, ok)
	requireFreshReset(t, s)
	assert.Len(t, s.Entities(), config.EnemyCount)
}

func TestSelectCharacter(t *testing.T) {
	s := NewState(fixedRand{f: 0.5}, nil)
	require.True(t, s.SelectCharacter(2))
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Equal(t, render.SpriteCharHornGirl, s.Character)

	p, ok := s.Player()
	require.True(t, ok)
	assert.Equal(t, float64(2*config.TileWidth), p.X)
	assert.Equal(t, float64(5*config.TileHeight), p.Y)
	assert.Equal(t, render.SpriteCharHornGirl, p.Sprite)
	requireFreshReset(t, s)

	assert.False(t, s.SelectCharacter(0), "selection happens once")
	assert.Equal(t, render.SpriteCharHornGirl, s.Character)
}

func TestSelectCharacterRejectsBadSlot(t *testing.T) {
	s := NewState(fixedRand{}, nil)
	assert.False(t, s.SelectCharacter(-1))
	assert.False(t, s.SelectCharacter(len(render.Characters)))
	assert.Equal(t, PhaseSelectingPlayer, s.Phase)
}

func TestHandleInputStartsTimerEvenWhenBlocked(t *testing.T) {
	s := newPlayingState(t)
	s.HandleInput(object.DirDown) // Already on the bottom row
	assert.True(t, s.TimerRunning)
	p, _ := s.Player()
	assert.Equal(t, float64(5*config.TileHeight), p.Y)
}

func TestHandleInputIgnoredOutsidePlaying(t *testing.T) {
	s := NewState(fixedRand{}, nil)
	s.HandleInput(object.DirUp)
	assert.False(t, s.TimerRunning)
}

func TestReachingTopRowClearsLevel(t *testing.T) {
	s := newPlayingState(t)
	p, _ := s.Player()
	p.Y = config.TileHeight
	s.TimerRunning = true
	s.Timer = 12

	s.HandleInput(object.DirUp)

	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 3, s.Lives)
	assert.Equal(t, PhasePlaying, s.Phase)
	requireFreshReset(t, s)
	np, ok := s.Player()
	require.True(t, ok)
	assert.NotSame(t, p, np)
	assert.Equal(t, float64(5*config.TileHeight), np.Y)
	assert.Equal(t, render.SpriteCharBoy, np.Sprite, "character persists across resets")
}

func TestResetEnemySpeedFollowsLevel(t *testing.T) {
	s := newPlayingState(t)
	s.Level = 7
	s.Reset()
	for _, e := range s.Enemies {
		assert.GreaterOrEqual(t, e.Speed, 9.0)
		assert.Less(t, e.Speed, 12.0)
	}
}

func TestLastLevelWinsGame(t *testing.T) {
	s := newPlayingState(t)
	s.Level = config.MaxLevel - 1
	s.Lives = 1
	s.Timer = 3
	s.TimerRunning = true

	s.WinLevel()

	assert.Equal(t, PhaseWon, s.Phase)
	assert.True(t, s.Won())
	assert.True(t, s.Over())
	assert.Equal(t, config.MaxLevel, s.Level)
	assert.False(t, s.TimerRunning)

	s.WinLevel()
	assert.Equal(t, config.MaxLevel, s.Level, "level never passes the maximum")
}

func TestLoseLifeResets(t *testing.T) {
	s := newPlayingState(t)
	p, _ := s.Player()
	p.Y = 2 * config.TileHeight
	s.TimerRunning = true
	s.Timer = 4

	s.LoseLife()

	assert.Equal(t, 2, s.Lives)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, PhasePlaying, s.Phase)
	requireFreshReset(t, s)
	np, _ := s.Player()
	assert.Equal(t, float64(5*config.TileHeight), np.Y)
}

func TestLastLifeEndsGame(t *testing.T) {
	s := newPlayingState(t)
	s.Lives = 1
	s.TimerRunning = true

	s.LoseLife()

	assert.Equal(t, PhaseGameOver, s.Phase)
	assert.False(t, s.Won())
	assert.Zero(t, s.Lives)
	assert.False(t, s.TimerRunning)

	s.LoseLife()
	assert.Zero(t, s.Lives, "lives never go negative")
}

func TestCollisionOnLastLifeEndsGame(t *testing.T) {
	s := newPlayingState(t)
	s.Lives = 1
	p, _ := s.Player()
	s.Enemies[0].X = p.X
	s.Enemies[0].Y = p.Y
	s.Enemies[0].Speed = 0

	updateEntities(s, object.UpdateContext{})

	assert.Equal(t, PhaseGameOver, s.Phase)
	assert.False(t, s.Won())
}

func TestCollisionCostsOneLifePerTick(t *testing.T) {
	s := newPlayingState(t)
	p, _ := s.Player()
	for _, e := range s.Enemies {
		e.X, e.Y, e.Speed = p.X, p.Y, 0
	}

	updateEntities(s, object.UpdateContext{})

	assert.Equal(t, 2, s.Lives)
	requireFreshReset(t, s)
}

func TestEntitiesFrozenAfterGameOver(t *testing.T) {
	s := newPlayingState(t)
	s.Phase = PhaseGameOver
	before := s.Enemies[0].X
	updateEntities(s, object.UpdateContext{})
	assert.Equal(t, before, s.Enemies[0].X)
}

func TestTimerOneSecondTicks(t *testing.T) {
	s := newPlayingState(t)
	s.TimerRunning = true
	for i := 0; i < 3; i++ {
		s.AdvanceTimer(1.0)
	}
	assert.Equal(t, config.TimerMax-3, s.Timer)
}

func TestTimerSingleLargeTick(t *testing.T) {
	s := newPlayingState(t)
	s.TimerRunning = true
	s.AdvanceTimer(3.0)
	assert.Equal(t, config.TimerMax-3, s.Timer)
}

func TestTimerAccumulatesFractions(t *testing.T) {
	s := newPlayingState(t)
	s.TimerRunning = true
	for i := 0; i < 9; i++ {
		s.AdvanceTimer(0.25)
	}
	assert.Equal(t, config.TimerMax-2, s.Timer)
}

func TestTimerIgnoresMalformedDelta(t *testing.T) {
	s := newPlayingState(t)
	s.TimerRunning = true
	s.AdvanceTimer(math.NaN())
	s.AdvanceTimer(-5)
	s.AdvanceTimer(math.Inf(1))
	assert.Equal(t, config.TimerMax, s.Timer)
	s.AdvanceTimer(1)
	assert.Equal(t, config.TimerMax-1, s.Timer)
}

func TestTimerNeedsRunningAndPlaying(t *testing.T) {
	s := newPlayingState(t)
	s.AdvanceTimer(5)
	assert.Equal(t, config.TimerMax, s.Timer, "not running")

	sel := NewState(fixedRand{}, nil)
	sel.TimerRunning = true
	sel.AdvanceTimer(5)
	assert.Equal(t, config.TimerMax, sel.Timer, "not playing")
}

func TestTimerExpiryCostsLife(t *testing.T) {
	s := newPlayingState(t)
	s.TimerRunning = true
	s.Timer = 1

	s.AdvanceTimer(1)

	assert.Equal(t, 2, s.Lives)
	requireFreshReset(t, s)
}

func TestTimerExpiryStopsDrainingAfterReset(t *testing.T) {
	s := newPlayingState(t)
	s.TimerRunning = true
	s.Timer = 2

	s.AdvanceTimer(100)

	assert.Equal(t, 2, s.Lives, "one expiry, then the timer waits for input")
	assert.Equal(t, config.TimerMax, s.Timer)
}

func TestTimerExpiryOnLastLife(t *testing.T) {
	s := newPlayingState(t)
	s.TimerRunning = true
	s.Lives = 1
	s.Timer = 2

	s.AdvanceTimer(10)

	assert.Equal(t, PhaseGameOver, s.Phase)
	assert.Zero(t, s.Timer)
	assert.Zero(t, s.Lives)
}

func TestEngineStepTimer(t *testing.T) {
	e := NewEngine(Options{Rand: fixedRand{f: 0.1}})
	require.True(t, e.State().SelectCharacter(0))
	e.State().TimerRunning = true

	e.Step(3 * time.Second)
	assert.Equal(t, config.TimerMax-3, e.State().Timer)
}
