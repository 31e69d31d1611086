// Package object holds the entity model: the player, the enemies, and the
// context they are updated with.
package object

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/bugcrossing/internal/render"
)

// Event is what an entity reports back to the rules engine after an update.
type Event int

const (
	EventNone      Event = iota
	EventCollision       // Enemy touched the player
)

// Rand is the randomness source used for spawning.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// DefaultRand uses the auto-seeded package-level generator.
var DefaultRand Rand = globalRand{}

// SeededRand returns a reproducible generator for seed, or DefaultRand
// when seed is 0.
func SeededRand(seed uint64) Rand {
	if seed == 0 {
		return DefaultRand
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Present reports whether a value is held.
func (o Optional[T]) Present() bool {
	return o.ok
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Delta  time.Duration
	Level  int
	Player Optional[*Player]
	Rand   Rand
	// ScaleByDelta makes enemy motion frame-rate independent. When false,
	// enemy speed is applied once per tick.
	ScaleByDelta bool
}

func (ctx UpdateContext) rng() Rand {
	if ctx.Rand == nil {
		return DefaultRand
	}
	return ctx.Rand
}

// Entity is an updatable and drawable game object.
type Entity interface {
	Update(ctx UpdateContext) Event
	Draw(r render.Renderer)
}

// Direction is a one-tile move request.
type Direction int

const (
	DirLeft Direction = iota
	DirUp
	DirRight
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}
