package draw

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// maxChunkSize keeps each write under a typical 1500 byte MTU once SSH
// framing is added.
const maxChunkSize = 1400

// ChunkWriter accumulates terminal output for one frame and writes it in
// chunks for optimal network flow (e.g. over SSH). It remembers the cursor
// position and colors so redundant escape codes are skipped.
type ChunkWriter struct {
	frame  strings.Builder // Pending output of the current frame
	out    *bufio.Writer
	digits [20]byte // Scratch space for strconv.AppendInt
	offCol int
	offRow int

	curCol, curRow int   // Cursor position after the last write; 0 means unknown
	fg, bg         Color // Active colors; noColor means unknown
}

// NewChunkWriter returns a writer targeting w. The offsets shift every cursor
// move so the canvas can be centered.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	cw := &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
	cw.forget()
	return cw
}

// SetOffset moves the canvas origin, typically after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
	cw.forget()
}

// forget drops the tracked cursor and color state.
func (cw *ChunkWriter) forget() {
	cw.curCol, cw.curRow = 0, 0
	cw.fg, cw.bg = noColor, noColor
}

// MoveCursor appends an ANSI cursor position sequence unless the cursor is
// already there. col and row are 1-based canvas coordinates; offset is applied
// automatically.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	if col == cw.curCol && row == cw.curRow {
		return
	}
	cw.frame.WriteString("\033[")
	cw.frame.Write(strconv.AppendInt(cw.digits[:0], int64(row+cw.offRow), 10))
	cw.frame.WriteByte(';')
	cw.frame.Write(strconv.AppendInt(cw.digits[:0], int64(col+cw.offCol), 10))
	cw.frame.WriteByte('H')
	cw.curCol, cw.curRow = col, row
}

// SetColors switches to 256-color foreground fg and background bg.
func (cw *ChunkWriter) SetColors(fg, bg Color) {
	if fg == cw.fg && bg == cw.bg {
		return
	}
	cw.frame.WriteString("\033[38;5;")
	cw.frame.Write(strconv.AppendInt(cw.digits[:0], int64(fg), 10))
	cw.frame.WriteString(";48;5;")
	cw.frame.Write(strconv.AppendInt(cw.digits[:0], int64(bg), 10))
	cw.frame.WriteByte('m')
	cw.fg, cw.bg = fg, bg
}

// PutCell writes one single-width rune at col,row.
func (cw *ChunkWriter) PutCell(col, row int, ch rune) {
	cw.MoveCursor(col, row)
	cw.frame.WriteRune(ch)
	cw.curCol++
}

// Write implements io.Writer. Raw writes invalidate the tracked cursor.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	cw.forget()
	return cw.frame.Write(p)
}

// WriteString appends a raw string and invalidates the tracked cursor.
func (cw *ChunkWriter) WriteString(s string) {
	cw.forget()
	cw.frame.WriteString(s)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the pending frame in maxChunkSize pieces and starts a new one.
func (cw *ChunkWriter) Flush() error {
	pending := cw.frame.String()
	cw.frame.Reset()
	for len(pending) > 0 {
		n := min(len(pending), maxChunkSize)
		if _, err := cw.out.WriteString(pending[:n]); err != nil {
			return err
		}
		pending = pending[n:]
	}
	return cw.out.Flush()
}
