// Package terminal sizes output for the controlling terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height, falling back
// to the defaults when stdout is not a terminal.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the current terminal width.
func GetWidth() int {
	width, _ := GetSize()
	return width
}

// ViewportSize returns the rows and cols left for the map after
// reserving topMargin lines for status panes, never going below the
// given minimums.
func ViewportSize(topMargin, minRows, minCols int) (rows, cols int) {
	termWidth, termHeight := GetSize()

	cols = termWidth - 2
	rows = termHeight - topMargin

	if cols < minCols {
		cols = minCols
	}
	if rows < minRows {
		rows = minRows
	}

	return rows, cols
}
