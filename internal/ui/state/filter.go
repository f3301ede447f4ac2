package state

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/fsel/internal/entry"
)

// SetFilter updates the fuzzy filter query and its editing cursor. The list
// cursor jumps to the best match while filtering and returns to where it was
// once the filter is cleared.
func (p *Pane) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(p.Filter)
	restore := -1
	p.Filter = query
	runes := []rune(p.Filter)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	p.FilterCursor = cursor
	if trimmed != "" {
		if prevTrimmed == "" {
			p.LastCursor = p.Cursor
		}
		p.Cursor = 0
	} else if prevTrimmed != "" {
		restore = p.LastCursor
	}
	p.Entries = FilterEntries(p.All, p.Filter)
	p.clampCursor()
	if p.ViewportOffset > len(p.Entries)-1 {
		p.ViewportOffset = 0
	}
	if trimmed != "" && len(p.Entries) > 0 {
		if idx := BestMatchIndex(p.Entries, trimmed); idx >= 0 {
			p.Cursor = idx
		}
	}
	if trimmed == "" && prevTrimmed != "" {
		if restore >= 0 && restore < len(p.Entries) {
			p.Cursor = restore
		}
		p.LastCursor = -1
	}
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (p *Pane) FilterCursorPos() int {
	runes := []rune(p.Filter)
	if p.FilterCursor < 0 {
		return 0
	}
	if p.FilterCursor > len(runes) {
		return len(runes)
	}
	return p.FilterCursor
}

// InsertFilterText inserts text into the filter at the cursor position.
func (p *Pane) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	p.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (p *Pane) DeleteFilterRuneBackward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	p.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the cursor.
func (p *Pane) DeleteFilterWordBackward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	p.SetFilter(string(updated), i)
	return true
}

// FilterEntries returns entries whose names fuzzily match query, falling back
// to a case-insensitive substring match.
func FilterEntries(entries []entry.Entry, query string) []entry.Entry {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return entry.Clone(entries)
	}
	names := entry.Names(entries)
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]entry.Entry, 0, len(matches))
		for idx, e := range entries {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.DisplayText()), lower) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// BestMatchIndex returns the best index for the query among entries: an exact
// name, then a prefix, then a substring, then the closest fuzzy rank.
func BestMatchIndex(entries []entry.Entry, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(entries) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, e := range entries {
		if strings.EqualFold(e.Name, trimmed) {
			return i
		}
	}
	for i, e := range entries {
		if strings.HasPrefix(strings.ToLower(e.Name), lower) {
			return i
		}
	}
	for i, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, entry.Names(entries))
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
			continue
		}
		if rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(entries) {
		return 0
	}
	return best.OriginalIndex
}
