package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/fsel/internal/entry"
	"github.com/atomicstack/fsel/internal/exitcode"
)

// Dialog is a picker that can be driven by Model.
type Dialog interface {
	// Layout fits the dialog into a screen of the given size.
	Layout(width, height int)
	// HandleKey interprets one keystroke.
	HandleKey(msg tea.KeyMsg) Outcome
	// CommittedPath is the path chosen when the dialog finished.
	CommittedPath() []entry.Entry
	View() string
}

// Signal tells Model whether a keystroke finished the dialog.
type Signal int

const (
	Continue Signal = iota
	Confirm
	Cancel
	Exit
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case Confirm:
		return "confirm"
	case Cancel:
		return "cancel"
	case Exit:
		return "exit"
	}
	return "unknown"
}

// Outcome is the result of one keystroke. Code is set for Exit.
type Outcome struct {
	Signal Signal
	Code   int
}

var (
	continueOutcome = Outcome{Signal: Continue}
	confirmOutcome  = Outcome{Signal: Confirm, Code: exitcode.Confirm}
	cancelOutcome   = Outcome{Signal: Cancel, Code: exitcode.Cancel}
)

func exitOutcome(code int) Outcome {
	return Outcome{Signal: Exit, Code: code}
}

// Done reports whether the dialog should stop.
func (o Outcome) Done() bool {
	return o.Signal != Continue
}

// ExitCode is the process exit code for a finished dialog.
func (o Outcome) ExitCode() int {
	switch o.Signal {
	case Confirm:
		return exitcode.Confirm
	case Cancel:
		return exitcode.Cancel
	}
	return o.Code
}

// Printed reports whether the committed path should be written out.
func (o Outcome) Printed() bool {
	return o.Signal == Confirm || o.Signal == Exit
}
