// Package exitcode maps terminating keystrokes to process exit codes.
package exitcode

import (
	"strconv"
	"strings"
)

const (
	Confirm     = 0
	Cancel      = 1
	CannotStart = 2
)

// Base codes for keys that end the dialog with a signal.
const (
	Insert    = 3
	Delete    = 4
	Backspace = 5
	Space     = 6
	Enter     = 7
	F1        = 11
)

// Modifier offsets are added to the base code.
const (
	Shift = 32
	Alt   = 64
	Ctrl  = 128
)

var baseCodes = map[string]int{
	"insert":    Insert,
	"delete":    Delete,
	"backspace": Backspace,
	"space":     Space,
	" ":         Space,
	"enter":     Enter,
}

// Lookup returns the exit code bound to a Bubble Tea key name such as
// "ctrl+f3" or "alt+enter". Keys absent from the table report false. Space
// only exits with a modifier.
func Lookup(name string) (int, bool) {
	switch name {
	case "ctrl+@":
		name = "ctrl+space"
	case "shift+tab":
		return 0, false
	}

	parts := strings.Split(name, "+")
	// A literal "+" key arrives as "+" or "alt++".
	if strings.HasSuffix(name, "++") || name == "+" {
		return 0, false
	}
	base := parts[len(parts)-1]
	offset := 0
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "shift":
			offset |= Shift
		case "alt":
			offset |= Alt
		case "ctrl":
			offset |= Ctrl
		default:
			return 0, false
		}
	}

	code, extra, ok := baseCode(base)
	if !ok {
		return 0, false
	}
	// a bare space is typed text
	if code == Space && offset == 0 {
		return 0, false
	}
	return code + (offset | extra), true
}

func baseCode(base string) (code, extraOffset int, ok bool) {
	if c, found := baseCodes[base]; found {
		return c, 0, true
	}
	if !strings.HasPrefix(base, "f") {
		return 0, 0, false
	}
	n, err := strconv.Atoi(base[1:])
	if err != nil {
		return 0, 0, false
	}
	switch {
	case n >= 1 && n <= 12:
		return F1 + n - 1, 0, true
	case n >= 13 && n <= 24:
		return F1 + n - 13, Shift, true
	}
	return 0, 0, false
}

// Signal describes a code for logs.
func Signal(code int) string {
	switch code {
	case Confirm:
		return "confirm"
	case Cancel:
		return "cancel"
	case CannotStart:
		return "cannot-start"
	}
	return "exit:" + strconv.Itoa(code)
}
