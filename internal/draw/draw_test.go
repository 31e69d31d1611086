package draw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/bugcrossing/internal/game/config"
	"github.com/tomz197/bugcrossing/internal/render"
)

func fixedSize(w, h int) TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func newTestTerminal(buf *bytes.Buffer) *Terminal {
	t := NewTerminal(buf, fixedSize(80, 40))
	t.Load(render.Assets)
	return t
}

func TestCanvasOverlayKeepsBackground(t *testing.T) {
	c := NewCanvas(4, 2, 1, 1)
	c.Fill(0, 0, 4, 2, Cell{Ch: '~', FG: ColorWhite, BG: ColorBlue})
	c.Overlay(1, 0, 'x', ColorRed)
	c.Overlay(2, 0, ' ', ColorRed)

	assert.Equal(t, Cell{Ch: 'x', FG: ColorRed, BG: ColorBlue}, c.At(1, 0))
	assert.Equal(t, '~', c.At(2, 0).Ch, "spaces are transparent")
	assert.Equal(t, Cell{}, c.At(9, 9))
}

func TestCanvasPrint(t *testing.T) {
	c := NewCanvas(6, 1, 1, 1)
	c.Fill(0, 0, 6, 1, Cell{Ch: '~', FG: ColorWhite, BG: ColorBlue})
	c.Print(1, 0, "a b", ColorYellow)
	assert.Equal(t, 'a', c.At(1, 0).Ch)
	assert.Equal(t, ' ', c.At(2, 0).Ch, "text spaces are opaque")
	assert.Equal(t, ColorBlue, c.At(2, 0).BG)
	assert.Equal(t, 'b', c.At(3, 0).Ch)
}

func TestCanvasRenderDiffs(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	c := NewCanvas(3, 1, 1, 1)

	c.Render(cw)
	require.NoError(t, cw.Flush())
	assert.Equal(t, 3, strings.Count(out.String(), " "), "first render writes every cell")

	out.Reset()
	c.Render(cw)
	require.NoError(t, cw.Flush())
	assert.Empty(t, out.String())

	c.Set(2, 0, Cell{Ch: 'z', FG: ColorRed, BG: ColorBlack})
	c.Render(cw)
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[38;5;196;48;5;16m\033[1;3Hz", out.String())
}

func TestChunkWriterSkipsRedundantMoves(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.SetColors(ColorWhite, ColorBlack)
	cw.PutCell(1, 1, 'a')
	cw.PutCell(2, 1, 'b')
	cw.SetColors(ColorWhite, ColorBlack)
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[38;5;231;48;5;16m\033[2;3Hab", out.String())
}

func TestTerminalLoaderReady(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, fixedSize(80, 40))
	calls := 0
	term.OnReady(func() { calls++ })
	assert.Zero(t, calls)
	term.Load(render.Assets)
	assert.Equal(t, 1, calls)
	term.OnReady(func() { calls++ })
	assert.Equal(t, 2, calls)
}

func TestTerminalDrawSprites(t *testing.T) {
	var out bytes.Buffer
	term := newTestTerminal(&out)

	term.DrawSprite(render.SpriteWater, 0, 0)
	assert.Equal(t, Cell{Ch: '~', FG: ColorWhite, BG: ColorBlue}, term.canvas.At(0, 0))
	assert.Equal(t, '~', term.canvas.At(TileCols-1, TileRows-1).Ch)

	term.DrawSprite(render.SpriteCharBoy, 0, 0)
	assert.Equal(t, 'o', term.canvas.At(5, 1).Ch)
	assert.Equal(t, ColorBlue, term.canvas.At(5, 1).BG)

	term.DrawSprite(render.SpriteGrass, config.TileWidth, 5*config.TileHeight)
	assert.Equal(t, '"', term.canvas.At(TileCols, 5*TileRows).Ch)
}

func TestTerminalMissingSprite(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, fixedSize(80, 40))
	term.DrawSprite(render.SpriteEnemyBug, 0, 0) // Never loaded
	assert.Equal(t, '?', term.canvas.At(0, 0).Ch)
}

func TestTerminalMeasureText(t *testing.T) {
	term := newTestTerminal(&bytes.Buffer{})
	assert.InDelta(t, 3*float64(config.TileWidth)/TileCols, term.MeasureText("abc"), 1e-9)
}

func TestTerminalPresentCentersAndClears(t *testing.T) {
	var out bytes.Buffer
	term := newTestTerminal(&out)
	term.DrawText("Hi", 0, 0)
	require.NoError(t, term.Present())

	s := out.String()
	assert.Contains(t, s, "\033[2J")
	assert.Contains(t, s, "\033[6;16H", "first cell is offset to center the field")
	assert.Contains(t, s, "Hi")

	out.Reset()
	term.Clear()
	term.DrawText("Hi", 0, 0)
	require.NoError(t, term.Present())
	assert.Equal(t, "\033[0m", out.String(), "unchanged frame writes nothing")
}

func TestTerminalPresentSizeError(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, func() (int, int, error) { return 0, 0, errors.New("no tty") })
	assert.ErrorContains(t, term.Present(), "no tty")
}

func TestTerminalCellToField(t *testing.T) {
	term := newTestTerminal(&bytes.Buffer{})
	require.NoError(t, term.Present())

	x, y := term.CellToField(16, 6)
	assert.InDelta(t, 0.5*float64(config.TileWidth)/TileCols, x, 1e-9)
	assert.InDelta(t, 0.5*float64(config.TileHeight)/TileRows, y, 1e-9)

	// Bottom-left tile lands on the character slot row.
	_, y = term.CellToField(16, 6+5*TileRows)
	assert.GreaterOrEqual(t, y, float64(config.SlotRow*config.TileHeight))
}
