package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/render"
)

func newTestEngine() (*Engine, *manualClock) {
	clock := &manualClock{now: time.Unix(1_700_000_000, 0)}
	return NewEngine(Options{Clock: clock, Rand: fixedRand{f: 0.1}}), clock
}

func TestClickSelectsCharacterOnNextTick(t *testing.T) {
	e, clock := newTestEngine()
	e.Router().PointerClick(0, 5*config.TileHeight)
	assert.Equal(t, PhaseSelectingPlayer, e.State().Phase, "input waits for the tick")

	e.Update(clock.Now())

	s := e.State()
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Equal(t, render.Characters[0], s.Character)
	_, ok := s.Player()
	assert.True(t, ok)
	assert.Len(t, s.Enemies, config.EnemyCount)
	assert.Equal(t, config.TimerMax, s.Timer)
}

func TestMoveStartsTimerAndCountsDown(t *testing.T) {
	e, clock := newTestEngine()
	e.Router().PointerClick(0, 450)
	e.Update(clock.Now())

	e.Router().KeyDown(KeyLeft)
	e.Update(clock.Now())
	require.True(t, e.State().TimerRunning)
	p, _ := e.State().Player()
	assert.Equal(t, float64(config.TileWidth), p.X)

	clock.Advance(3 * time.Second)
	e.Update(clock.Now())
	assert.Equal(t, config.TimerMax-3, e.State().Timer)
}

func TestConfirmRestartsAfterGameOver(t *testing.T) {
	e, clock := newTestEngine()
	e.Router().PointerClick(0, 450)
	e.Update(clock.Now())
	e.State().Lives = 1
	e.State().LoseLife()
	require.Equal(t, PhaseGameOver, e.State().Phase)

	old := e.State()
	e.Router().KeyDown(KeyConfirm)
	e.Update(clock.Now())

	s := e.State()
	assert.NotSame(t, old, s)
	assert.Equal(t, PhaseSelectingPlayer, s.Phase)
	assert.Equal(t, config.InitialLives, s.Lives)
	assert.Equal(t, 1, s.Level)
}

func TestCustomRestartHook(t *testing.T) {
	calls := 0
	e := NewEngine(Options{Rand: fixedRand{}, Restart: func() *State {
		calls++
		return NewState(fixedRand{}, nil)
	}})
	e.Restart()
	assert.Equal(t, 1, calls)
}

func TestStartChainsFrames(t *testing.T) {
	e, clock := newTestEngine()
	sched := &manualScheduler{}
	r := &recordingRenderer{}

	e.Start(sched, r)
	assert.Equal(t, 1, r.clears)
	assert.Equal(t, 1, sched.requests)

	for i := 0; i < 4; i++ {
		clock.Advance(time.Second / 60)
		require.True(t, sched.runFrame())
	}
	assert.Equal(t, 5, r.clears)
	assert.Equal(t, 5, r.presents)
	assert.Equal(t, 5, sched.requests, "exactly one request per frame")
	assert.NoError(t, e.Err())
}

func TestStartStopsOnPresentError(t *testing.T) {
	e, _ := newTestEngine()
	sched := &manualScheduler{}
	r := &recordingRenderer{presentErr: errPresent}

	e.Start(sched, r)

	assert.ErrorIs(t, e.Err(), errPresent)
	assert.Zero(t, sched.requests)
}

func TestFrameSchedulerRun(t *testing.T) {
	s := NewFrameScheduler(60)
	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }
	now := time.Unix(0, 0)
	s.now = func() time.Time { return now }

	frames := 0
	var frame func()
	frame = func() {
		frames++
		if frames < 3 {
			s.RequestNextFrame(frame)
		}
	}
	s.RequestNextFrame(frame)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 3, frames)
	assert.Len(t, slept, 3)
	assert.Equal(t, time.Second/60, slept[0])
}

func TestFrameSchedulerStopsOnCancel(t *testing.T) {
	s := NewFrameScheduler(60)
	s.sleep = func(time.Duration) {}
	ctx, cancel := context.WithCancel(context.Background())

	frames := 0
	var frame func()
	frame = func() {
		frames++
		if frames == 2 {
			cancel()
		}
		s.RequestNextFrame(frame)
	}
	s.RequestNextFrame(frame)

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Equal(t, 2, frames)
}
