package state

// MoveCursorUp moves the cursor to the previous entry.
func (p *Pane) MoveCursorUp() bool {
	return p.moveCursorBy(-1)
}

// MoveCursorDown moves the cursor to the next entry.
func (p *Pane) MoveCursorDown() bool {
	return p.moveCursorBy(1)
}

// MoveCursorHome moves the cursor to the first entry.
func (p *Pane) MoveCursorHome() bool {
	if len(p.Entries) == 0 {
		p.Cursor = 0
		return false
	}
	old := p.Cursor
	p.Cursor = 0
	return old != p.Cursor
}

// MoveCursorEnd moves the cursor to the last entry.
func (p *Pane) MoveCursorEnd() bool {
	n := len(p.Entries)
	if n == 0 {
		p.Cursor = 0
		return false
	}
	old := p.Cursor
	p.Cursor = n - 1
	return old != p.Cursor
}

// MoveCursorPageUp moves the cursor up by one visible page.
func (p *Pane) MoveCursorPageUp() bool {
	return p.moveCursorBy(-p.pageSize())
}

// MoveCursorPageDown moves the cursor down by one visible page.
func (p *Pane) MoveCursorPageDown() bool {
	return p.moveCursorBy(p.pageSize())
}

func (p *Pane) moveCursorBy(delta int) bool {
	if len(p.Entries) == 0 {
		p.Cursor = 0
		return false
	}
	old := p.Cursor
	p.Cursor += delta
	p.clampCursor()
	return p.Cursor != old
}

func (p *Pane) pageSize() int {
	total := len(p.Entries)
	if total == 0 {
		return 0
	}
	size := p.Height
	if size <= 0 || size > total {
		size = total
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays inside
// the visible rows.
func (p *Pane) EnsureCursorVisible() {
	if len(p.Entries) == 0 {
		p.Cursor = 0
		p.ViewportOffset = 0
		return
	}
	p.clampCursor()
	visible := p.Height
	if visible <= 0 {
		p.ViewportOffset = 0
		return
	}
	maxOffset := len(p.Entries) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.ViewportOffset > maxOffset {
		p.ViewportOffset = maxOffset
	}
	if p.ViewportOffset < 0 {
		p.ViewportOffset = 0
	}
	if p.Cursor < p.ViewportOffset {
		p.ViewportOffset = p.Cursor
	}
	if upper := p.ViewportOffset + visible - 1; p.Cursor > upper {
		p.ViewportOffset = p.Cursor - visible + 1
	}
}

// Rows returns the entries inside the viewport.
func (p *Pane) Rows() []Row {
	end := p.ViewportOffset + p.Height
	if end > len(p.Entries) {
		end = len(p.Entries)
	}
	if end < p.ViewportOffset {
		return nil
	}
	rows := make([]Row, 0, end-p.ViewportOffset)
	for i := p.ViewportOffset; i < end; i++ {
		rows = append(rows, Row{Index: i, Entry: p.Entries[i], Current: i == p.Cursor})
	}
	return rows
}
