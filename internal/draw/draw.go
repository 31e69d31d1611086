// Package draw renders the game to an ANSI terminal.
package draw

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// ResetStyle clears colors and attributes.
func ResetStyle(w io.Writer) {
	fmt.Fprint(w, "\033[0m")
}

// EnableMouse turns on button press reporting in SGR encoding.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h\033[?1006h")
}

// DisableMouse turns mouse reporting back off.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1000l")
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
