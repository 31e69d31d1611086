package draw

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/render"
)

// Terminal renders the field to an ANSI terminal. It implements
// render.Renderer, render.Loader and the game's Presenter.
type Terminal struct {
	canvas   *Canvas
	cw       *ChunkWriter
	sizeFunc TermSizeFunc

	mu             sync.Mutex // Guards the offsets, read by the input goroutine
	offCol, offRow int
	termW, termH   int

	loaded  map[render.SpriteID]glyph
	ready   bool
	onReady []func()
}

var (
	_ render.Renderer = (*Terminal)(nil)
	_ render.Loader   = (*Terminal)(nil)
)

// NewTerminal creates a renderer writing to w. sizeFunc reports the terminal
// size so the field can be centered; nil uses DefaultTermSizeFunc.
func NewTerminal(w io.Writer, sizeFunc TermSizeFunc) *Terminal {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	scaleX := float64(TileCols) / config.TileWidth
	scaleY := float64(TileRows) / config.TileHeight
	cols := config.Columns * TileCols
	rows := int(math.Ceil(config.FieldHeight * scaleY))

	return &Terminal{
		canvas:   NewCanvas(cols, rows, scaleX, scaleY),
		cw:       NewChunkWriter(w, 0, 0),
		sizeFunc: sizeFunc,
		loaded:   make(map[render.SpriteID]glyph),
	}
}

// Load makes the glyphs for ids available. Glyphs are built in, so the
// terminal is ready as soon as Load returns.
func (t *Terminal) Load(ids []render.SpriteID) {
	for _, id := range ids {
		if g, ok := glyphs[id]; ok {
			t.loaded[id] = g
		}
	}
	t.ready = true
	callbacks := t.onReady
	t.onReady = nil
	for _, fn := range callbacks {
		fn()
	}
}

// OnReady runs fn once Load has completed.
func (t *Terminal) OnReady(fn func()) {
	if t.ready {
		fn()
		return
	}
	t.onReady = append(t.onReady, fn)
}

// Clear blanks the frame.
func (t *Terminal) Clear() {
	t.canvas.Clear()
}

// DrawSprite draws the glyph for id with its top-left tile corner at x,y.
func (t *Terminal) DrawSprite(id render.SpriteID, x, y float64) {
	g, ok := t.loaded[id]
	if !ok {
		g = missingGlyph
	}
	col, row := t.canvas.LogicalToCell(x, y)
	if g.tile {
		t.canvas.Fill(col, row, TileCols, TileRows, g.fill)
		return
	}
	for i, line := range g.lines {
		c := col + g.col
		for _, r := range line {
			t.canvas.Overlay(c, row+g.row+i, r, g.fg)
			c += runewidth.RuneWidth(r)
		}
	}
}

// MeasureText returns the width of s in field pixels.
func (t *Terminal) MeasureText(s string) float64 {
	return t.canvas.LogicalWidth(runewidth.StringWidth(s))
}

// DrawText prints s at x,y.
func (t *Terminal) DrawText(s string, x, y float64) {
	col, row := t.canvas.LogicalToCell(x, y)
	t.canvas.Print(col, row, s, ColorWhite)
}

// Present writes the frame to the terminal, recentering after a resize.
func (t *Terminal) Present() error {
	if err := t.updateSize(); err != nil {
		return err
	}
	t.canvas.Render(t.cw)
	t.cw.WriteString("\033[0m")
	if err := t.cw.Flush(); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// updateSize centers the canvas in the terminal. A size change clears the
// screen and repaints every cell.
func (t *Terminal) updateSize() error {
	w, h, err := t.sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	if w == t.termW && h == t.termH {
		return nil
	}
	offCol := max(0, (w-t.canvas.Cols())/2)
	offRow := max(0, (h-t.canvas.Rows())/2)

	t.mu.Lock()
	t.termW, t.termH = w, h
	t.offCol, t.offRow = offCol, offRow
	t.mu.Unlock()

	t.cw.WriteString("\033[0m\033[H\033[2J")
	t.cw.SetOffset(offCol, offRow)
	t.canvas.ForceRedraw()
	return nil
}

// CellToField maps a 1-based terminal cell to field pixels. It is safe to
// call from the input goroutine.
func (t *Terminal) CellToField(col, row int) (x, y float64) {
	t.mu.Lock()
	offCol, offRow := t.offCol, t.offRow
	t.mu.Unlock()
	return t.canvas.CellToLogical(col-1-offCol, row-1-offRow)
}
