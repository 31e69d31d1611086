package game

import (
	"go.uber.org/zap"

	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/object"
	"github.com/tomz197/bugcrossing/internal/render"
)

// Key is a logical key code delivered by an input source.
type Key int

const (
	KeyLeft Key = iota
	KeyUp
	KeyRight
	KeyDown
	KeyConfirm // Restart after the game ended
)

// Command is a raw input event waiting for the next tick.
type Command interface {
	isCommand()
}

// KeyPress is a key going down.
type KeyPress struct {
	Key Key
}

// PointerClick is a click in field pixel coordinates.
type PointerClick struct {
	X, Y float64
}

func (KeyPress) isCommand()     {}
func (PointerClick) isCommand() {}

// Action is what a command resolves to against the current state.
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionSelect
	ActionRestart
)

// Routed is a command resolved against the current phase.
type Routed struct {
	Action Action
	Dir    object.Direction // For ActionMove
	Slot   int              // For ActionSelect
}

// Route decides what cmd means in the current state. Commands that do not
// apply to the current phase resolve to ActionNone.
func Route(cmd Command, s *State) Routed {
	switch c := cmd.(type) {
	case KeyPress:
		if c.Key == KeyConfirm {
			if s.Over() {
				return Routed{Action: ActionRestart}
			}
			return Routed{}
		}
		dir, ok := keyDirection(c.Key)
		if !ok || s.Phase != PhasePlaying {
			return Routed{}
		}
		if _, hasPlayer := s.Player(); !hasPlayer {
			return Routed{}
		}
		return Routed{Action: ActionMove, Dir: dir}
	case PointerClick:
		if s.Phase != PhaseSelectingPlayer {
			return Routed{}
		}
		slot, ok := SlotAt(c.X, c.Y)
		if !ok {
			return Routed{}
		}
		return Routed{Action: ActionSelect, Slot: slot}
	}
	return Routed{}
}

func keyDirection(k Key) (object.Direction, bool) {
	switch k {
	case KeyLeft:
		return object.DirLeft, true
	case KeyUp:
		return object.DirUp, true
	case KeyRight:
		return object.DirRight, true
	case KeyDown:
		return object.DirDown, true
	}
	return 0, false
}

// SlotAt maps a click to a character slot. Clicks above the slot row, outside
// the field, or past the last character are rejected.
func SlotAt(x, y float64) (int, bool) {
	if y < config.SlotRow*config.TileHeight || y >= config.FieldHeight {
		return 0, false
	}
	if x < 0 || x >= config.FieldWidth {
		return 0, false
	}
	slot := int(x) / config.TileWidth
	if slot >= len(render.Characters) {
		return 0, false
	}
	return slot, true
}

// Router queues input commands from any goroutine and hands them to the
// frame loop once per tick.
type Router struct {
	queue chan Command
	log   *zap.Logger
}

// NewRouter creates a router holding up to size pending commands.
func NewRouter(size int, log *zap.Logger) *Router {
	if size <= 0 {
		size = config.InputQueueSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		queue: make(chan Command, size),
		log:   log,
	}
}

// Push queues a command without blocking. It returns false and drops the
// command when the queue is full.
func (r *Router) Push(cmd Command) bool {
	select {
	case r.queue <- cmd:
		return true
	default:
		r.log.Debug("input queue full, dropping command", zap.Any("command", cmd))
		return false
	}
}

// KeyDown queues a key press.
func (r *Router) KeyDown(k Key) bool {
	return r.Push(KeyPress{Key: k})
}

// PointerClick queues a click.
func (r *Router) PointerClick(x, y float64) bool {
	return r.Push(PointerClick{X: x, Y: y})
}

// Drain calls fn for every queued command, in arrival order, without blocking.
func (r *Router) Drain(fn func(Command)) {
	for {
		select {
		case cmd := <-r.queue:
			fn(cmd)
		default:
			return
		}
	}
}
