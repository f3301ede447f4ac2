package state

import (
	"strings"

	"github.com/atomicstack/fsel/internal/entry"
)

// Search computes the view this pane would show for query: every entry whose
// name contains query plus the current entry, in original order. found
// reports whether any entry really matched. cursor is the position of the
// current entry inside content.
func (p *Pane) Search(query string) (found bool, cursor int, content []entry.Entry) {
	current := p.SelectedName()
	content = make([]entry.Entry, 0, len(p.All))
	for _, e := range p.All {
		isCurrent := e.Name == current
		isMatch := strings.Contains(e.Name, query)
		if isMatch {
			found = true
		}
		if isCurrent {
			cursor = len(content)
		}
		if isMatch || isCurrent {
			content = append(content, e)
		}
	}
	return found, cursor, content
}

// Matches lists the indexes of the current view whose names contain query.
// An empty query matches nothing.
func (p *Pane) Matches(query string) []int {
	if query == "" {
		return nil
	}
	var out []int
	for i, e := range p.Entries {
		if strings.Contains(e.Name, query) {
			out = append(out, i)
		}
	}
	return out
}

// IsMatch reports whether the entry at index contains query.
func (p *Pane) IsMatch(index int, query string) bool {
	if query == "" || index < 0 || index >= len(p.Entries) {
		return false
	}
	return strings.Contains(p.Entries[index].Name, query)
}

// FindPrevMatch moves the cursor to the nearest match above it.
func (p *Pane) FindPrevMatch(query string) (int, bool) {
	return p.findMatch(query, descending(p.Cursor-1, 0))
}

// FindNextMatch moves the cursor to the nearest match below it.
func (p *Pane) FindNextMatch(query string) (int, bool) {
	return p.findMatch(query, ascending(p.Cursor+1, len(p.Entries)-1))
}

// FindFirstMatch moves the cursor to the topmost match.
func (p *Pane) FindFirstMatch(query string) (int, bool) {
	return p.findMatch(query, ascending(0, len(p.Entries)-1))
}

// FindLastMatch moves the cursor to the bottommost match below it.
func (p *Pane) FindLastMatch(query string) (int, bool) {
	return p.findMatch(query, descending(len(p.Entries)-1, p.Cursor+1))
}

// FindMatchFromCursor moves the cursor to the first match at or after it,
// wrapping around the end of the view.
func (p *Pane) FindMatchFromCursor(query string) (int, bool) {
	return p.findMatch(query, ascending(p.Cursor, p.Cursor+len(p.Entries)-1))
}

func (p *Pane) findMatch(query string, indexes []int) (int, bool) {
	n := len(p.Entries)
	if query == "" || n == 0 {
		return -1, false
	}
	for _, j := range indexes {
		i := j % n
		if strings.Contains(p.Entries[i].Name, query) {
			p.Cursor = i
			p.EnsureCursorVisible()
			return i, true
		}
	}
	return -1, false
}

func ascending(from, to int) []int {
	if from > to {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

func descending(from, to int) []int {
	if from < to {
		return nil
	}
	out := make([]int, 0, from-to+1)
	for i := from; i >= to; i-- {
		out = append(out, i)
	}
	return out
}
