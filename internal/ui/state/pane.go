package state

import (
	"github.com/atomicstack/fsel/internal/entry"
)

// Pane holds one scrollable column: the children of a single path prefix.
type Pane struct {
	Path           []string
	All            []entry.Entry
	Entries        []entry.Entry
	Cursor         int
	ViewportOffset int
	Width          int
	Height         int
	Focused        bool

	Filter       string
	FilterCursor int
	LastCursor   int
}

// Row is one visible line of a pane.
type Row struct {
	Index   int
	Entry   entry.Entry
	Current bool
}

// NewPane constructs a Pane listing entries under path. The pane is as wide
// as its widest entry and tall enough to show every entry.
func NewPane(path []string, entries []entry.Entry) *Pane {
	p := &Pane{
		Path:       append([]string(nil), path...),
		All:        entry.Clone(entries),
		LastCursor: -1,
	}
	p.Entries = entry.Clone(p.All)
	p.Width = entry.MaxDisplayLength(p.All)
	p.Height = len(p.All)
	return p
}

// Selected returns the entry under the cursor.
func (p *Pane) Selected() (entry.Entry, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Entries) {
		return entry.Entry{}, false
	}
	return p.Entries[p.Cursor], true
}

// SelectedName returns the name under the cursor, or "" for an empty view.
func (p *Pane) SelectedName() string {
	e, _ := p.Selected()
	return e.Name
}

// SetView replaces the visible entries and positions the cursor.
func (p *Pane) SetView(entries []entry.Entry, cursor int) {
	p.Entries = entries
	p.Cursor = cursor
	p.clampCursor()
	if p.ViewportOffset > len(p.Entries)-1 {
		p.ViewportOffset = 0
	}
}

// RestoreView shows every entry again while keeping the current selection.
func (p *Pane) RestoreView() {
	name := p.SelectedName()
	p.Entries = entry.Clone(p.All)
	if idx, ok := entry.IndexOfName(name, p.Entries); ok {
		p.Cursor = idx
	}
	p.clampCursor()
}

// Resize sets the number of visible rows to fit within maxHeight.
func (p *Pane) Resize(maxHeight int) {
	h := len(p.Entries)
	if maxHeight > 0 && h > maxHeight {
		h = maxHeight
	}
	p.Height = h
}

func (p *Pane) clampCursor() {
	if len(p.Entries) == 0 {
		p.Cursor = 0
		return
	}
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	if p.Cursor >= len(p.Entries) {
		p.Cursor = len(p.Entries) - 1
	}
}
