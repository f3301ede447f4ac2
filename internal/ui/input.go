package ui

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/fsel/internal/logging/events"
)

// handleSearchKey shortens or clears the search string.
func (d *PathDialog) handleSearchKey(msg tea.KeyMsg) bool {
	s := d.stack
	switch {
	case key.Matches(msg, pathKeys.Backspace):
		if s.SearchString == "" {
			return true
		}
		_, size := utf8.DecodeLastRuneInString(s.SearchString)
		s.Search(s.SearchString[:len(s.SearchString)-size])
		return true
	case key.Matches(msg, pathKeys.ClearSearch):
		s.ClearSearch()
		return true
	}
	return false
}

// handleMatchKey moves between matches of the committed search string.
func (d *PathDialog) handleMatchKey(msg tea.KeyMsg) bool {
	s := d.stack
	pane := s.FocusedPane()
	if pane == nil {
		return false
	}
	var (
		index int
		found bool
	)
	switch {
	case key.Matches(msg, pathKeys.MatchPrev):
		index, found = pane.FindPrevMatch(s.MatchString)
	case key.Matches(msg, pathKeys.MatchNext):
		index, found = pane.FindNextMatch(s.MatchString)
	case key.Matches(msg, pathKeys.MatchFirst):
		index, found = pane.FindFirstMatch(s.MatchString)
	case key.Matches(msg, pathKeys.MatchLast):
		index, found = pane.FindLastMatch(s.MatchString)
	case key.Matches(msg, pathKeys.MatchRight):
		d.jumpAcross(s.Focus+1, len(s.Panes), 1)
		return true
	case key.Matches(msg, pathKeys.MatchLeft):
		d.jumpAcross(s.Focus-1, -1, -1)
		return true
	default:
		return false
	}
	if found {
		events.Search.Jump(s.Focus, index)
		s.ActivateSibling(s.Focus)
	}
	return true
}

// jumpAcross focuses the first pane in [from, to) stepping by step that has
// a match at or after its cursor.
func (d *PathDialog) jumpAcross(from, to, step int) {
	s := d.stack
	for i := from; i != to; i += step {
		index, found := s.Panes[i].FindMatchFromCursor(s.MatchString)
		if !found {
			continue
		}
		events.Search.Jump(i, index)
		d.setFocus(i)
		s.ActivateSibling(i)
		d.makeFocusedColumnVisible(step > 0)
		return
	}
}

// handleTyped extends the search string. A keystroke that leaves a single
// match in the whole stack jumps straight to it and resets the search.
func (d *PathDialog) handleTyped(msg tea.KeyMsg) bool {
	text, ok := typedText(msg)
	if !ok {
		return false
	}
	s := d.stack
	s.Search(s.SearchString + text)

	if paneIndex, line, sole := s.SoleMatch(); sole {
		pane := s.Panes[paneIndex]
		before := pane.SelectedName()
		d.setFocus(paneIndex)
		pane.Cursor = line
		events.Search.Jump(paneIndex, line)
		s.Search("")
		pane.EnsureCursorVisible()
		if pane.SelectedName() != before {
			s.ActivateSibling(paneIndex)
		}
		d.makeFocusedColumnVisible(true)
		return true
	}
	if pane := s.FocusedPane(); pane != nil && len(s.Matches(s.Focus)) > 0 {
		pane.EnsureCursorVisible()
	}
	return true
}
