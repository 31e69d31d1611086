package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/object"
	"github.com/tomz197/bugcrossing/internal/render"
)

// Clock supplies wall-clock time to the loop.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// Scheduler runs a callback at the next display frame.
type Scheduler interface {
	RequestNextFrame(fn func())
}

// Presenter is implemented by renderers that buffer a frame and must flush it.
type Presenter interface {
	Present() error
}

// Options configures an Engine. Zero values pick defaults.
type Options struct {
	Clock  Clock
	Rand   object.Rand
	Logger *zap.Logger
	// ScaleEnemyByDelta applies enemy speed per 1/ReferenceFPS seconds
	// instead of per tick.
	ScaleEnemyByDelta bool
	// QueueSize bounds the pending input commands.
	QueueSize int
	// Restart builds the replacement state when the player asks to replay.
	// Defaults to a fresh NewState.
	Restart func() *State
}

// Engine runs one game: it drains input, advances the rules and renders,
// once per frame.
type Engine struct {
	state    *State
	router   *Router
	clock    Clock
	rng      object.Rand
	log      *zap.Logger
	scale    bool
	restart  func() *State
	lastTime time.Time
	started  bool
	err      error
}

// NewEngine creates an engine on the character selection screen.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		clock:   opts.Clock,
		rng:     opts.Rand,
		log:     opts.Logger,
		scale:   opts.ScaleEnemyByDelta,
		restart: opts.Restart,
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.rng == nil {
		e.rng = object.DefaultRand
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.restart == nil {
		e.restart = func() *State { return NewState(e.rng, e.log) }
	}
	e.router = NewRouter(opts.QueueSize, e.log)
	e.state = NewState(e.rng, e.log)
	return e
}

// State returns the current game state.
func (e *Engine) State() *State {
	return e.state
}

// Router returns the input router that feeds this engine.
func (e *Engine) Router() *Router {
	return e.router
}

// Err returns the error that stopped the frame chain, if any.
func (e *Engine) Err() error {
	return e.err
}

// Restart replaces the game with a fresh one.
func (e *Engine) Restart() {
	e.state = e.restart()
	e.log.Info("game restarted")
}

// Update runs one tick at time now: queued input first, then the timer, then
// the entities.
func (e *Engine) Update(now time.Time) {
	if !e.started {
		e.lastTime = now
		e.started = true
	}
	dt := now.Sub(e.lastTime)
	e.lastTime = now

	e.router.Drain(e.apply)
	e.Step(dt)
}

// Tick runs Update at the engine clock's current time.
func (e *Engine) Tick() {
	e.Update(e.clock.Now())
}

// Step advances the rules by dt without reading the clock or input.
func (e *Engine) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	e.state.AdvanceTimer(dt.Seconds())
	updateEntities(e.state, object.UpdateContext{
		Delta:        dt,
		Rand:         e.rng,
		ScaleByDelta: e.scale,
	})
}

// apply executes one routed command.
func (e *Engine) apply(cmd Command) {
	routed := Route(cmd, e.state)
	switch routed.Action {
	case ActionMove:
		e.state.HandleInput(routed.Dir)
	case ActionSelect:
		e.state.SelectCharacter(routed.Slot)
	case ActionRestart:
		e.Restart()
	default:
		e.log.Debug("ignored input", zap.Any("command", cmd), zap.Stringer("phase", e.state.Phase))
	}
}

// Render draws the current state.
func (e *Engine) Render(r render.Renderer) {
	drawScene(e.state, r)
}

// Frame runs one update-then-render pass. It returns the renderer's present
// error, if any.
func (e *Engine) Frame(r render.Renderer) error {
	e.Tick()
	e.Render(r)
	if p, ok := r.(Presenter); ok {
		return p.Present()
	}
	return nil
}

// Start renders the first frame and keeps requesting the next one from s
// until a frame fails. The failure is available from Err.
func (e *Engine) Start(s Scheduler, r render.Renderer) {
	e.lastTime = e.clock.Now()
	e.started = true

	var frame func()
	frame = func() {
		if err := e.Frame(r); err != nil {
			e.err = err
			e.log.Error("frame failed", zap.Error(err))
			return
		}
		s.RequestNextFrame(frame)
	}
	frame()
}

// FrameScheduler is a Scheduler that paces frames at a fixed rate on the
// calling goroutine.
type FrameScheduler struct {
	frameTime time.Duration
	pending   func()
	now       func() time.Time
	sleep     func(time.Duration)
}

// NewFrameScheduler creates a scheduler targeting fps frames per second.
func NewFrameScheduler(fps int) *FrameScheduler {
	frameTime := config.TargetFrameTime
	if fps > 0 {
		frameTime = time.Second / time.Duration(fps)
	}
	return &FrameScheduler{
		frameTime: frameTime,
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

// RequestNextFrame stores fn to run at the next frame. Only the latest
// request is kept.
func (s *FrameScheduler) RequestNextFrame(fn func()) {
	s.pending = fn
}

// Run executes requested frames until none is pending or ctx is cancelled.
func (s *FrameScheduler) Run(ctx context.Context) error {
	for s.pending != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		frameStart := s.now()
		fn := s.pending
		s.pending = nil
		fn()

		elapsed := s.now().Sub(frameStart)
		if elapsed < s.frameTime {
			s.sleep(s.frameTime - elapsed)
		}
	}
	return nil
}
