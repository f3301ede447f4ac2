package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/fsel/internal/entry"
	"github.com/atomicstack/fsel/internal/logging/events"
	uistate "github.com/atomicstack/fsel/internal/ui/state"
)

// ListDialog picks one entry from a flat list narrowed by a fuzzy filter.
type ListDialog struct {
	pane         *uistate.Pane
	width        int
	height       int
	filterCursor cursor.Model
	cursorDirty  bool
	blinking     bool
	confirmed    bool
}

// NewListDialog builds a dialog over entries, in the given order.
func NewListDialog(entries []entry.Entry) *ListDialog {
	pane := uistate.NewPane(nil, entries)
	pane.Focused = true
	c := cursor.New()
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	return &ListDialog{pane: pane, filterCursor: c}
}

// Pane exposes the list state.
func (d *ListDialog) Pane() *uistate.Pane {
	return d.pane
}

// Layout implements Dialog.
func (d *ListDialog) Layout(width, height int) {
	d.width = width
	d.height = height
	d.pane.Resize(d.listHeight())
	d.pane.EnsureCursorVisible()
}

func (d *ListDialog) listHeight() int {
	if d.height <= 0 {
		return 0
	}
	// the last row holds the filter prompt
	if d.height == 1 {
		return 1
	}
	return d.height - 1
}

// CommittedPath implements Dialog.
func (d *ListDialog) CommittedPath() []entry.Entry {
	if !d.confirmed {
		return nil
	}
	e, ok := d.pane.Selected()
	if !ok {
		return nil
	}
	return []entry.Entry{e}
}

// HandleKey implements Dialog.
func (d *ListDialog) HandleKey(msg tea.KeyMsg) Outcome {
	p := d.pane
	events.Nav.Key(msg.String(), 0)
	before := p.FilterCursorPos()
	defer func() {
		if p.FilterCursorPos() != before {
			d.cursorDirty = true
		}
	}()

	switch {
	case key.Matches(msg, listKeys.Cancel):
		return d.finish(cancelOutcome)
	case key.Matches(msg, listKeys.Confirm):
		if _, ok := p.Selected(); !ok {
			return continueOutcome
		}
		d.confirmed = true
		return d.finish(confirmOutcome)
	case key.Matches(msg, listKeys.Backspace):
		if p.DeleteFilterRuneBackward() {
			d.refresh()
		}
		return continueOutcome
	case key.Matches(msg, listKeys.DeleteWord):
		if p.DeleteFilterWordBackward() {
			d.refresh()
		}
		return continueOutcome
	case key.Matches(msg, listKeys.ClearFilter):
		if p.Filter != "" {
			p.SetFilter("", 0)
			events.Search.Clear()
			d.refresh()
		}
		return continueOutcome
	}

	if code, ok := exitKey(msg); ok {
		if _, selected := p.Selected(); selected {
			d.confirmed = true
		}
		return d.finish(exitOutcome(code))
	}

	switch {
	case key.Matches(msg, listKeys.Up):
		p.MoveCursorUp()
	case key.Matches(msg, listKeys.Down):
		p.MoveCursorDown()
	case key.Matches(msg, listKeys.PageUp):
		p.MoveCursorPageUp()
	case key.Matches(msg, listKeys.PageDown):
		p.MoveCursorPageDown()
	case key.Matches(msg, listKeys.Home):
		p.MoveCursorHome()
	case key.Matches(msg, listKeys.End):
		p.MoveCursorEnd()
	default:
		if text, ok := typedText(msg); ok && p.InsertFilterText(text) {
			d.refresh()
		}
	}
	p.EnsureCursorVisible()
	return continueOutcome
}

func (d *ListDialog) refresh() {
	d.pane.Resize(d.listHeight())
	d.pane.EnsureCursorVisible()
	events.Search.Query(d.pane.Filter, len(d.pane.Entries) > 0, len(d.pane.Entries))
}

func (d *ListDialog) finish(o Outcome) Outcome {
	events.Nav.Outcome(o.Signal.String(), d.pane.Cursor)
	return o
}

// View implements Dialog.
func (d *ListDialog) View() string {
	p := d.pane
	lines := make([]styledLine, 0, p.Height+1)
	rows := p.Rows()
	if len(p.Entries) == 0 {
		msg := "(no entries)"
		if p.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", p.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	}
	body := renderLines(limitHeight(lines, d.listHeight(), d.width))
	rendered := make([]string, 0, len(rows)+2)
	if body != "" {
		rendered = append(rendered, body)
	}
	width := p.Width
	if d.width > 0 && width > d.width {
		width = d.width
	}
	for _, row := range rows {
		rendered = append(rendered, truncateText(renderRow(row, width, true, "", true), d.width))
	}
	rendered = append(rendered, d.filterPrompt())
	return strings.Join(rendered, "\n")
}

func (d *ListDialog) filterPrompt() string {
	p := d.pane
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if p.Filter == "" {
		placeholder := "type to filter"
		if styles.FilterPlaceholder != nil {
			placeholder = styles.FilterPlaceholder.Render(placeholder)
		}
		return prompt + d.filterCursor.View() + placeholder
	}
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	head, tail := string(runes[:pos]), ""
	cursorChar := " "
	if pos < len(runes) {
		cursorChar = string(runes[pos])
		tail = string(runes[pos+1:])
	}
	render := func(s string) string {
		if styles.Filter == nil || s == "" {
			return s
		}
		return styles.Filter.Render(s)
	}
	d.filterCursor.SetChar(cursorChar)
	return prompt + render(head) + d.filterCursor.View() + render(tail)
}

// Init focuses the filter cursor so it starts blinking.
func (d *ListDialog) Init() tea.Cmd {
	d.blinking = true
	return d.filterCursor.Focus()
}

// Update forwards cursor blink messages and restarts the blink after edits.
func (d *ListDialog) Update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	d.filterCursor, cmd = d.filterCursor.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if d.cursorDirty && d.blinking {
		d.cursorDirty = false
		d.filterCursor.Blink = false
		if cmd := d.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}
