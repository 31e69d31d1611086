package draw

import (
	"math"

	"github.com/mattn/go-runewidth"
)

// Color is a 256-color palette index.
type Color int16

const noColor Color = -1

// Palette
const (
	ColorBlack  Color = 16
	ColorWhite  Color = 231
	ColorYellow Color = 226
	ColorRed    Color = 196
	ColorPink   Color = 213
	ColorOrange Color = 208
	ColorPurple Color = 135
	ColorBlue   Color = 27
	ColorStone  Color = 244
	ColorGrass  Color = 34
	ColorBrown  Color = 94
)

// Cell is one terminal character with colors.
type Cell struct {
	Ch rune
	FG Color
	BG Color
}

var blankCell = Cell{Ch: ' ', FG: ColorWhite, BG: ColorBlack}

// Canvas is a fixed-size grid of cells addressed in logical (field pixel)
// coordinates. Every frame is diffed against the previous one so only
// changed cells are written.
type Canvas struct {
	cols, rows int
	cells      []Cell // Flat slice: [row * cols + col]
	prev       []Cell // What the terminal currently shows
	dirty      bool   // Redraw every cell on the next render

	scaleX float64 // Columns per logical pixel
	scaleY float64 // Rows per logical pixel
}

// NewCanvas creates a canvas of cols×rows cells mapping scaleX columns and
// scaleY rows to one logical pixel.
func NewCanvas(cols, rows int, scaleX, scaleY float64) *Canvas {
	c := &Canvas{
		cols:   cols,
		rows:   rows,
		cells:  make([]Cell, cols*rows),
		prev:   make([]Cell, cols*rows),
		scaleX: scaleX,
		scaleY: scaleY,
		dirty:  true,
	}
	c.Clear()
	return c
}

// Clear resets every cell to blank.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = blankCell
	}
}

// ForceRedraw makes the next Render write every cell.
func (c *Canvas) ForceRedraw() {
	c.dirty = true
}

// Cols returns the width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height in cells.
func (c *Canvas) Rows() int { return c.rows }

// At returns the cell at 0-based col,row.
func (c *Canvas) At(col, row int) Cell {
	if !c.inBounds(col, row) {
		return Cell{}
	}
	return c.cells[row*c.cols+col]
}

func (c *Canvas) inBounds(col, row int) bool {
	return col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

// Set writes a full cell at 0-based col,row.
func (c *Canvas) Set(col, row int, cell Cell) {
	if c.inBounds(col, row) {
		c.cells[row*c.cols+col] = cell
	}
}

// Overlay writes ch in fg at col,row and keeps the cell's background.
// Spaces are transparent.
func (c *Canvas) Overlay(col, row int, ch rune, fg Color) {
	if ch == ' ' || !c.inBounds(col, row) {
		return
	}
	i := row*c.cols + col
	c.cells[i].Ch = ch
	c.cells[i].FG = fg
}

// Fill sets a block of cells.
func (c *Canvas) Fill(col, row, w, h int, cell Cell) {
	for y := row; y < row+h; y++ {
		for x := col; x < col+w; x++ {
			c.Set(x, y, cell)
		}
	}
}

// cellEpsilon absorbs rounding so tile-aligned coordinates land on their own cell.
const cellEpsilon = 1e-9

// LogicalToCell converts logical coordinates to a 0-based cell.
func (c *Canvas) LogicalToCell(x, y float64) (col, row int) {
	return int(math.Floor(x*c.scaleX + cellEpsilon)), int(math.Floor(y*c.scaleY + cellEpsilon))
}

// CellToLogical converts a 0-based cell to the logical coordinates of its center.
func (c *Canvas) CellToLogical(col, row int) (x, y float64) {
	return (float64(col) + 0.5) / c.scaleX, (float64(row) + 0.5) / c.scaleY
}

// LogicalWidth converts a width in cells to logical pixels.
func (c *Canvas) LogicalWidth(cells int) float64 {
	return float64(cells) / c.scaleX
}

// Render writes the cells that changed since the last render.
func (c *Canvas) Render(cw *ChunkWriter) {
	for row := 0; row < c.rows; row++ {
		offset := row * c.cols
		for col := 0; col < c.cols; col++ {
			cell := c.cells[offset+col]
			if !c.dirty && cell == c.prev[offset+col] {
				continue
			}
			cw.SetColors(cell.FG, cell.BG)
			cw.PutCell(col+1, row+1, cell.Ch)
		}
	}
	copy(c.prev, c.cells)
	c.dirty = false
}

// Print writes s starting at col,row in fg, keeping backgrounds. Wide runes
// take two columns.
func (c *Canvas) Print(col, row int, s string, fg Color) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if c.inBounds(col, row) {
			i := row*c.cols + col
			c.cells[i].Ch = r
			c.cells[i].FG = fg
		}
		col += w
	}
}
