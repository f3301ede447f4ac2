package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/fsel/internal/entry"
	"github.com/atomicstack/fsel/internal/logging/events"
	uistate "github.com/atomicstack/fsel/internal/ui/state"
)

// PathDialog picks a path by walking a row of panes, one per path segment.
type PathDialog struct {
	stack      *uistate.Stack
	width      int
	height     int
	offsetX    int
	showFooter bool
	// committed is the index of the last pane in the result; -1 selects the
	// root itself.
	committed int
}

// NewPathDialog expands the stack from its initial focus and prepares the
// dialog for display.
func NewPathDialog(stack *uistate.Stack, showFooter bool) *PathDialog {
	stack.ExpandLists()
	d := &PathDialog{stack: stack, showFooter: showFooter, committed: stack.Focus}
	d.relayout()
	d.makeFocusedColumnVisible(true)
	return d
}

// Stack exposes the pane stack.
func (d *PathDialog) Stack() *uistate.Stack {
	return d.stack
}

// Layout implements Dialog.
func (d *PathDialog) Layout(width, height int) {
	d.width = width
	d.height = height
	d.relayout()
	d.makeFocusedColumnVisible(true)
}

// CommittedPath implements Dialog.
func (d *PathDialog) CommittedPath() []entry.Entry {
	if d.committed < 0 || d.stack.IsEmpty() {
		return nil
	}
	return d.stack.EntriesPath(d.committed)
}

// HandleKey implements Dialog.
func (d *PathDialog) HandleKey(msg tea.KeyMsg) Outcome {
	s := d.stack
	events.Nav.Key(msg.String(), s.Focus)
	if s.IsEmpty() {
		if key.Matches(msg, pathKeys.Cancel) {
			return cancelOutcome
		}
		return continueOutcome
	}
	d.committed = s.Focus

	switch {
	case key.Matches(msg, pathKeys.Cancel):
		return d.finish(cancelOutcome)
	case key.Matches(msg, pathKeys.ConfirmRoot):
		d.committed = -1
		return d.finish(confirmOutcome)
	case key.Matches(msg, pathKeys.ConfirmFrontier):
		d.setFocus(s.Frontier())
		return d.confirm()
	case key.Matches(msg, pathKeys.Confirm):
		return d.confirm()
	}

	if d.handleSearchKey(msg) {
		d.relayout()
		return continueOutcome
	}

	if code, ok := exitKey(msg); ok {
		return d.finish(exitOutcome(code))
	}

	switch {
	case key.Matches(msg, pathKeys.Right):
		d.moveRight()
	case key.Matches(msg, pathKeys.Left):
		if s.Focus > 0 {
			d.setFocus(s.Focus - 1)
		}
		d.makeFocusedColumnVisible(false)
	case key.Matches(msg, pathKeys.Home):
		d.setFocus(0)
		d.makeFocusedColumnVisible(false)
	case key.Matches(msg, pathKeys.End):
		d.setFocus(s.Frontier())
		d.makeFocusedColumnVisible(true)
	case key.Matches(msg, pathKeys.Up, pathKeys.Down, pathKeys.PageUp, pathKeys.PageDown):
		d.moveCursor(msg)
	default:
		if !d.handleMatchKey(msg) {
			d.handleTyped(msg)
		}
	}
	if pane := s.FocusedPane(); pane != nil {
		pane.EnsureCursorVisible()
	}
	d.relayout()
	return continueOutcome
}

func (d *PathDialog) confirm() Outcome {
	d.committed = d.stack.Focus
	for i := 0; i <= d.stack.Focus; i++ {
		d.stack.MemorizeChoice(i, true)
	}
	return d.finish(confirmOutcome)
}

func (d *PathDialog) finish(o Outcome) Outcome {
	events.Nav.Outcome(o.Signal.String(), d.committed)
	return o
}

func (d *PathDialog) moveRight() {
	s := d.stack
	if s.Focus == s.Frontier() {
		if s.TryToGoIn(s.Focus) {
			d.relayout()
			d.setFocus(s.Focus + 1)
		}
	} else {
		d.setFocus(s.Focus + 1)
	}
	d.makeFocusedColumnVisible(true)
}

func (d *PathDialog) moveCursor(msg tea.KeyMsg) {
	s := d.stack
	s.Search("")
	pane := s.FocusedPane()
	switch {
	case key.Matches(msg, pathKeys.Up):
		pane.MoveCursorUp()
	case key.Matches(msg, pathKeys.Down):
		pane.MoveCursorDown()
	case key.Matches(msg, pathKeys.PageUp):
		pane.MoveCursorPageUp()
	case key.Matches(msg, pathKeys.PageDown):
		pane.MoveCursorPageDown()
	}
	pane.EnsureCursorVisible()
	s.ActivateSibling(s.Focus)
}

func (d *PathDialog) setFocus(index int) {
	before := d.stack.Focus
	d.stack.SetFocus(index)
	if before != d.stack.Focus {
		events.Nav.Focus(before, d.stack.Focus)
	}
	d.committed = d.stack.Focus
}

// relayout sizes every pane to the available height.
func (d *PathDialog) relayout() {
	h := d.paneAreaHeight()
	for _, pane := range d.stack.Panes {
		pane.Resize(h)
		pane.EnsureCursorVisible()
	}
}

func (d *PathDialog) paneAreaHeight() int {
	if d.height <= 0 {
		return 0
	}
	h := d.height
	if d.showFooter {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// columnX returns the unscrolled x offset of pane i. Panes are separated by
// one blank column.
func (d *PathDialog) columnX(i int) int {
	x := 0
	for _, pane := range d.stack.Panes[:i] {
		x += pane.Width + 1
	}
	return x
}

// makeFocusedColumnVisible scrolls horizontally so the focused pane is on
// screen. The head of the pane always wins over its tail.
func (d *PathDialog) makeFocusedColumnVisible(alignToRight bool) {
	pane := d.stack.FocusedPane()
	if pane == nil || d.width <= 0 {
		return
	}
	x := d.columnX(d.stack.Focus) - d.offsetX
	if alignToRight {
		if overflow := x + pane.Width - d.width; overflow > 0 {
			d.offsetX += overflow
			x -= overflow
		}
	}
	if x < 0 {
		d.offsetX += x
	}
	if d.offsetX < 0 {
		d.offsetX = 0
	}
}
