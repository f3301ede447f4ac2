package state

import (
	"github.com/atomicstack/fsel/internal/entry"
	"github.com/atomicstack/fsel/internal/logging/events"
	"github.com/atomicstack/fsel/internal/oracle"
)

// Stack is the ordered row of panes from the root down to the frontier. Pane
// i lists the children of the entry selected in pane i-1.
type Stack struct {
	Panes        []*Pane
	Focus        int
	SearchString string
	MatchString  string

	lister entry.Lister
	oracle oracle.Oracle
}

// NewStack materializes a pane for every prefix of initialPath, preferring
// the matching path segment in each. It stops at the first empty listing or
// at the first segment that no longer exists. The pane for the last segment
// receives focus.
func NewStack(lister entry.Lister, o oracle.Oracle, initialPath []string) *Stack {
	s := &Stack{lister: lister, oracle: o}
	for index := 0; index <= len(initialPath); index++ {
		preferred := ""
		if index < len(initialPath) {
			preferred = initialPath[index]
		}
		pane := s.Materialize(initialPath[:index], preferred)
		if pane == nil {
			break
		}
		s.Panes = append(s.Panes, pane)
		if preferred != "" && pane.SelectedName() != preferred {
			break
		}
		if index < len(initialPath) && pane.Entries[pane.Cursor].IsLeaf() {
			break
		}
	}
	focus := len(initialPath) - 1
	if focus < 0 {
		focus = 0
	}
	s.SetFocus(focus)
	events.Stack.Open(initialPath, len(s.Panes))
	return s
}

// Materialize lists path and builds a pane for it, or returns nil when the
// listing is empty. The cursor lands on preferred, else on the recalled
// choice, else on the first entry.
func (s *Stack) Materialize(path []string, preferred string) *Pane {
	entries := s.lister.List(path)
	if len(entries) == 0 {
		return nil
	}
	pane := NewPane(path, entries)
	name := preferred
	if name == "" {
		name, _ = s.oracle.RecallChosenName(path)
	}
	if idx, ok := entry.IndexOfName(name, pane.Entries); ok {
		pane.Cursor = idx
	}
	return pane
}

// ExpandLists opens panes to the right of the frontier while its selection
// is a branch. Expansion continues through single-entry panes and through
// panes whose parent had a recalled choice.
func (s *Stack) ExpandLists() {
	for !s.IsEmpty() {
		frontier := s.Frontier()
		if s.IsAtLeaf(frontier) {
			return
		}
		path := s.Path(frontier)
		name, recalled := s.oracle.RecallChosenName(path)
		pane := s.Materialize(path, "")
		events.Stack.Expand(path, name, pane != nil)
		if pane == nil {
			return
		}
		s.Panes = append(s.Panes, pane)
		if len(pane.All) == 1 {
			continue
		}
		if !recalled {
			return
		}
	}
}

// ActivateSibling rebuilds everything right of pane index after its
// selection changed, and records the new choice for this session.
func (s *Stack) ActivateSibling(index int) {
	if index < 0 || index >= len(s.Panes) {
		return
	}
	s.truncate(index + 1)
	s.ExpandLists()
	s.MemorizeChoice(index, false)
	s.SetFocus(s.Focus)
	events.Stack.Activate(index, len(s.Panes))
}

// TryToGoIn opens the selected branch of the frontier pane. It reports false
// when index is not the frontier, the selection is a leaf, or the branch has
// no children.
func (s *Stack) TryToGoIn(index int) bool {
	if index != s.Frontier() || s.IsAtLeaf(index) {
		return false
	}
	s.MemorizeChoice(index, true)
	path := s.Path(index)
	pane := s.Materialize(path, "")
	events.Stack.Enter(path, pane != nil)
	if pane == nil {
		return false
	}
	s.Panes = append(s.Panes, pane)
	s.ExpandLists()
	return true
}

// Search filters every pane by query. The filtered views are committed only
// when some pane has a real match, so a keystroke never empties the stack.
// The raw query is always recorded.
func (s *Stack) Search(query string) bool {
	s.SearchString = query
	type result struct {
		cursor  int
		content []entry.Entry
	}
	results := make([]result, len(s.Panes))
	foundSomewhere := false
	for i, pane := range s.Panes {
		found, cursor, content := pane.Search(query)
		foundSomewhere = foundSomewhere || found
		results[i] = result{cursor: cursor, content: content}
	}
	if foundSomewhere {
		s.MatchString = query
		for i, pane := range s.Panes {
			pane.SetView(results[i].content, results[i].cursor)
			pane.EnsureCursorVisible()
		}
	}
	events.Search.Query(query, foundSomewhere, s.MatchCount())
	return foundSomewhere
}

// ClearSearch forgets both strings and restores every pane's full view.
func (s *Stack) ClearSearch() {
	s.SearchString = ""
	s.MatchString = ""
	for _, pane := range s.Panes {
		pane.RestoreView()
		pane.EnsureCursorVisible()
	}
	events.Search.Clear()
}

// IsFullMatch reports whether the last typed query was the one committed.
func (s *Stack) IsFullMatch() bool {
	return s.MatchString == s.SearchString
}

// Matches lists the indexes in pane index containing the match string.
func (s *Stack) Matches(index int) []int {
	if index < 0 || index >= len(s.Panes) {
		return nil
	}
	return s.Panes[index].Matches(s.MatchString)
}

// MatchCount totals the matches across all panes.
func (s *Stack) MatchCount() int {
	total := 0
	for i := range s.Panes {
		total += len(s.Matches(i))
	}
	return total
}

// SoleMatch returns the pane and line of the only match in the stack.
func (s *Stack) SoleMatch() (pane, line int, ok bool) {
	if s.MatchCount() != 1 {
		return 0, 0, false
	}
	for i := range s.Panes {
		if m := s.Matches(i); len(m) == 1 {
			return i, m[0], true
		}
	}
	return 0, 0, false
}

// Path returns the selected names of panes 0..index.
func (s *Stack) Path(index int) []string {
	if index >= len(s.Panes) {
		index = len(s.Panes) - 1
	}
	path := make([]string, 0, index+1)
	for _, pane := range s.Panes[:index+1] {
		path = append(path, pane.SelectedName())
	}
	return path
}

// EntriesPath returns the selected entries of panes 0..index.
func (s *Stack) EntriesPath(index int) []entry.Entry {
	if index >= len(s.Panes) {
		index = len(s.Panes) - 1
	}
	out := make([]entry.Entry, 0, index+1)
	for _, pane := range s.Panes[:index+1] {
		if e, ok := pane.Selected(); ok {
			out = append(out, e)
		}
	}
	return out
}

// MemorizeChoice records pane index's selection under its parent prefix.
func (s *Stack) MemorizeChoice(index int, persistent bool) {
	e, ok := s.Selected(index)
	if !ok {
		return
	}
	parent := s.Path(index - 1)
	s.oracle.Memorize(parent, e.Name, persistent)
	events.Stack.Memorize(parent, e.Name, persistent)
}

// Selected returns the entry under pane index's cursor.
func (s *Stack) Selected(index int) (entry.Entry, bool) {
	if index < 0 || index >= len(s.Panes) {
		return entry.Entry{}, false
	}
	return s.Panes[index].Selected()
}

// IsAtLeaf reports whether pane index has a leaf selected.
func (s *Stack) IsAtLeaf(index int) bool {
	e, ok := s.Selected(index)
	return !ok || e.IsLeaf()
}

// MaxHeight is the length of the longest visible list.
func (s *Stack) MaxHeight() int {
	h := 0
	for _, pane := range s.Panes {
		if n := len(pane.Entries); n > h {
			h = n
		}
	}
	return h
}

func (s *Stack) IsEmpty() bool {
	return len(s.Panes) == 0
}

// Frontier is the index of the rightmost pane.
func (s *Stack) Frontier() int {
	return len(s.Panes) - 1
}

// FocusedPane returns the pane holding focus.
func (s *Stack) FocusedPane() *Pane {
	if s.Focus < 0 || s.Focus >= len(s.Panes) {
		return nil
	}
	return s.Panes[s.Focus]
}

// SetFocus moves focus to index, clamped to the existing panes.
func (s *Stack) SetFocus(index int) {
	if len(s.Panes) == 0 {
		s.Focus = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index > s.Frontier() {
		index = s.Frontier()
	}
	s.Focus = index
	for i, pane := range s.Panes {
		pane.Focused = i == index
	}
}

func (s *Stack) truncate(n int) {
	for i := n; i < len(s.Panes); i++ {
		s.Panes[i] = nil
	}
	s.Panes = s.Panes[:n]
}
