// Package input reads single keypresses from the controlling terminal
// and maps them to simulator actions.
package input

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is a terminal we can read keys from.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func readByte() (byte, error) {
	buf := make([]byte, 1)
	_, err := os.Stdin.Read(buf)
	return buf[0], err
}

// tryReadArrowKey consumes the rest of an escape sequence after the
// initial ESC byte. Returns the arrow code, or "" for anything else.
func tryReadArrowKey() string {
	b2, err := readByte()
	if err != nil {
		return ""
	}

	// CSI (ESC [) and SS3 (ESC O) sequences
	if b2 != '[' && b2 != 'O' {
		return ""
	}

	b3, err := readByte()
	if err != nil {
		return ""
	}

	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}

	return ""
}

// ReadKey blocks for one keypress in raw mode and returns its code:
// printable keys as themselves, plus "enter", "space", "ctrl_c" and the
// arrow codes.
func ReadKey() (string, error) {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	b, err := readByte()
	if err != nil {
		return "", err
	}

	switch {
	case b == 0x1b:
		return tryReadArrowKey(), nil
	case b == 3:
		return "ctrl_c", nil
	case b == '\n' || b == '\r':
		return "enter", nil
	case b == ' ':
		return "space", nil
	case b >= 32 && b < 127:
		return string(b), nil
	}

	return "", nil
}
