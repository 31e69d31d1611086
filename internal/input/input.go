// Package input decodes terminal bytes into game commands.
package input

import (
	"bytes"
	"io"
	"strconv"

	"github.com/tomz197/bugcrossing/internal/game"
	"github.com/tomz197/bugcrossing/internal/game/config"
)

// maxPending caps how many bytes of an unfinished escape sequence are kept.
const maxPending = 32

// CellMapper converts a 1-based terminal cell to field pixels.
type CellMapper func(col, row int) (x, y float64)

// Sink receives decoded input.
type Sink interface {
	Push(cmd game.Command) bool
}

// Decoder turns raw terminal bytes into commands. Escape sequences split
// across reads are carried over to the next call.
type Decoder struct {
	pending []byte
	cells   CellMapper
}

// NewDecoder creates a decoder. cells may be nil, in which case mouse
// clicks are discarded.
func NewDecoder(cells CellMapper) *Decoder {
	return &Decoder{cells: cells}
}

// Decode parses p and returns the commands it contains and whether a quit
// key was pressed.
func (d *Decoder) Decode(p []byte) (cmds []game.Command, quit bool) {
	buf := append(d.pending, p...)
	d.pending = nil

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			n, cmd, complete := d.escape(buf[i:])
			if !complete {
				if len(buf)-i <= maxPending {
					d.pending = append([]byte(nil), buf[i:]...)
				}
				return cmds, quit
			}
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			i += n - 1
			continue
		}

		switch b {
		case 'q', 'Q', 0x03: // Ctrl-C arrives as a byte in raw mode
			quit = true
		case 'a', 'A', 'j', 'J':
			cmds = append(cmds, game.KeyPress{Key: game.KeyLeft})
		case 'd', 'D', 'l', 'L':
			cmds = append(cmds, game.KeyPress{Key: game.KeyRight})
		case 'w', 'W', 'i', 'I':
			cmds = append(cmds, game.KeyPress{Key: game.KeyUp})
		case 's', 'S', 'k', 'K':
			cmds = append(cmds, game.KeyPress{Key: game.KeyDown})
		case '\r', '\n', ' ':
			cmds = append(cmds, game.KeyPress{Key: game.KeyConfirm})
		case '1', '2', '3', '4', '5':
			cmds = append(cmds, SlotClick(int(b-'1')))
		}
	}
	return cmds, quit
}

// escape decodes one sequence starting at ESC. It returns the bytes consumed,
// the command (nil if the sequence means nothing to the game) and whether the
// sequence was complete.
func (d *Decoder) escape(buf []byte) (n int, cmd game.Command, complete bool) {
	if len(buf) < 2 {
		return 0, nil, false
	}
	if buf[1] != '[' && buf[1] != 'O' {
		return 1, nil, true // Lone ESC
	}
	if len(buf) < 3 {
		return 0, nil, false
	}

	switch buf[2] {
	case 'A':
		return 3, game.KeyPress{Key: game.KeyUp}, true
	case 'B':
		return 3, game.KeyPress{Key: game.KeyDown}, true
	case 'C':
		return 3, game.KeyPress{Key: game.KeyRight}, true
	case 'D':
		return 3, game.KeyPress{Key: game.KeyLeft}, true
	case '<':
		return d.mouse(buf)
	}

	// Skip any other CSI sequence up to its final byte.
	for j := 2; j < len(buf); j++ {
		if buf[j] >= 0x40 && buf[j] <= 0x7e {
			return j + 1, nil, true
		}
	}
	return 0, nil, false
}

// mouse decodes an SGR mouse report: ESC [ < button ; col ; row (M|m).
// Only left button presses become clicks.
func (d *Decoder) mouse(buf []byte) (int, game.Command, bool) {
	end := bytes.IndexAny(buf, "Mm")
	if end < 0 {
		return 0, nil, false
	}
	fields := bytes.Split(buf[3:end], []byte{';'})
	if len(fields) != 3 || buf[end] != 'M' {
		return end + 1, nil, true
	}
	button, err1 := strconv.Atoi(string(fields[0]))
	col, err2 := strconv.Atoi(string(fields[1]))
	row, err3 := strconv.Atoi(string(fields[2]))
	if err1 != nil || err2 != nil || err3 != nil || button != 0 || d.cells == nil {
		return end + 1, nil, true
	}
	x, y := d.cells(col, row)
	return end + 1, game.PointerClick{X: x, Y: y}, true
}

// SlotClick is a click in the middle of character slot i.
func SlotClick(i int) game.PointerClick {
	return game.PointerClick{
		X: float64(i*config.TileWidth + config.TileWidth/2),
		Y: float64(config.SlotRow*config.TileHeight + config.TileHeight/2),
	}
}

// Pump reads r until it fails or a quit key arrives, pushing decoded commands
// into sink. It returns nil on quit or EOF.
func Pump(r io.Reader, sink Sink, cells CellMapper) error {
	dec := NewDecoder(cells)
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			cmds, quit := dec.Decode(buf[:n])
			for _, cmd := range cmds {
				sink.Push(cmd)
			}
			if quit {
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
