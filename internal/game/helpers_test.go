package game

import (
	"errors"
	"time"

	"github.com/tomz197/bugcrossing/internal/render"
)

// fixedRand returns the same values on every call.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

type drawnText struct {
	s    string
	x, y float64
}

type drawnSprite struct {
	id   render.SpriteID
	x, y float64
}

// recordingRenderer records every draw call of the last frame.
type recordingRenderer struct {
	clears     int
	sprites    []drawnSprite
	texts      []drawnText
	presents   int
	presentErr error
}

func (r *recordingRenderer) Clear() {
	r.clears++
	r.sprites = r.sprites[:0]
	r.texts = r.texts[:0]
}

func (r *recordingRenderer) DrawSprite(id render.SpriteID, x, y float64) {
	r.sprites = append(r.sprites, drawnSprite{id: id, x: x, y: y})
}

func (r *recordingRenderer) MeasureText(s string) float64 {
	return float64(len(s) * 10)
}

func (r *recordingRenderer) DrawText(s string, x, y float64) {
	r.texts = append(r.texts, drawnText{s: s, x: x, y: y})
}

func (r *recordingRenderer) Present() error {
	r.presents++
	return r.presentErr
}

func (r *recordingRenderer) count(id render.SpriteID) int {
	n := 0
	for _, s := range r.sprites {
		if s.id == id {
			n++
		}
	}
	return n
}

func (r *recordingRenderer) hasText(s string) bool {
	for _, t := range r.texts {
		if t.s == s {
			return true
		}
	}
	return false
}

// manualClock advances only when told to.
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// manualScheduler holds the requested frame until the test runs it.
type manualScheduler struct {
	next     func()
	requests int
}

func (s *manualScheduler) RequestNextFrame(fn func()) {
	s.next = fn
	s.requests++
}

func (s *manualScheduler) runFrame() bool {
	fn := s.next
	if fn == nil {
		return false
	}
	s.next = nil
	fn()
	return true
}

var errPresent = errors.New("write failed")
