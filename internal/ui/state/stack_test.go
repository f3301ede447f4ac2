package state

import (
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/fsel/internal/entry"
	"github.com/atomicstack/fsel/internal/oracle"
)

// treeLister serves listings from a map keyed by slash-joined path. Names
// ending in "/" are branches.
func treeLister(tree map[string][]string) entry.Lister {
	return entry.ListerFunc(func(path []string) []entry.Entry {
		names := tree[strings.Join(path, "/")]
		out := make([]entry.Entry, 0, len(names))
		for _, n := range names {
			e := entry.Entry{Name: strings.TrimSuffix(n, "/")}
			if strings.HasSuffix(n, "/") {
				e.Attrs = entry.Directory
			}
			out = append(out, e)
		}
		return out
	})
}

func paneNames(s *Stack) [][]string {
	out := make([][]string, len(s.Panes))
	for i, p := range s.Panes {
		out[i] = entry.Names(p.Entries)
	}
	return out
}

func TestSingleChildChainExpandsFully(t *testing.T) {
	lister := treeLister(map[string][]string{
		"":      {"a/"},
		"a":     {"b/"},
		"a/b":   {"c/"},
		"a/b/c": {"file.txt"},
	})
	s := NewStack(lister, oracle.NewFrequency(nil, nil), nil)
	s.ExpandLists()

	if len(s.Panes) != 4 {
		t.Fatalf("expected 4 panes, got %v", paneNames(s))
	}
	if got := s.Path(s.Frontier()); !reflect.DeepEqual(got, []string{"a", "b", "c", "file.txt"}) {
		t.Fatalf("unexpected frontier path %v", got)
	}
	if s.Focus != 0 {
		t.Fatalf("expected focus to stay on the first pane, got %d", s.Focus)
	}
}

func TestExpansionFollowsRecall(t *testing.T) {
	lister := treeLister(map[string][]string{
		"":    {"w/", "x/"},
		"x":   {"y/", "z/"},
		"x/y": {"p/", "q/"},
		"x/z": {"r"},
	})
	o := oracle.NewLastChoice(map[string]string{"": "x", "x": "y"})
	for i := 0; i < 5; i++ {
		s := NewStack(lister, o, nil)
		s.ExpandLists()
		if got := s.Path(s.Frontier()); !reflect.DeepEqual(got, []string{"x", "y", "p"}) {
			t.Fatalf("run %d: unexpected frontier path %v", i, got)
		}
	}
}

func TestExpansionStopsWithoutRecall(t *testing.T) {
	lister := treeLister(map[string][]string{
		"":  {"a/", "b/"},
		"a": {"c/", "d/"},
		"c": {"e"},
	})
	s := NewStack(lister, oracle.NewFrequency(nil, nil), nil)
	s.ExpandLists()
	if len(s.Panes) != 2 {
		t.Fatalf("expected expansion to stop after the unrecalled pane, got %v", paneNames(s))
	}
}

func TestNewStackFollowsInitialPath(t *testing.T) {
	lister := treeLister(map[string][]string{
		"":    {"a/", "b/"},
		"b":   {"c/", "d/"},
		"b/d": {"e", "f"},
	})
	s := NewStack(lister, oracle.NewFrequency(nil, nil), []string{"b", "d"})
	if got := s.Path(s.Frontier()); !reflect.DeepEqual(got, []string{"b", "d", "e"}) {
		t.Fatalf("unexpected path %v", got)
	}
	if s.Focus != 1 || !s.Panes[1].Focused || s.Panes[0].Focused {
		t.Fatalf("expected focus on pane 1, got %d", s.Focus)
	}

	stale := NewStack(lister, oracle.NewFrequency(nil, nil), []string{"b", "gone", "deeper"})
	if len(stale.Panes) != 2 {
		t.Fatalf("expected stack to stop at the missing segment, got %v", paneNames(stale))
	}
	if stale.Focus != 1 {
		t.Fatalf("expected focus clamped to the last pane, got %d", stale.Focus)
	}

	if empty := NewStack(treeLister(nil), oracle.NewFrequency(nil, nil), nil); !empty.IsEmpty() {
		t.Fatalf("expected empty stack for empty root")
	}
}

func TestActivateSiblingRebuildsRightSide(t *testing.T) {
	lister := treeLister(map[string][]string{
		"":    {"a/", "b/"},
		"a":   {"x"},
		"b":   {"y/"},
		"b/y": {"z"},
	})
	o := oracle.NewLastChoice(nil)
	s := NewStack(lister, o, nil)
	s.ExpandLists()
	if got := paneNames(s); !reflect.DeepEqual(got, [][]string{{"a", "b"}, {"x"}}) {
		t.Fatalf("unexpected initial panes %v", got)
	}

	s.Panes[0].MoveCursorDown()
	s.ActivateSibling(0)
	if got := paneNames(s); !reflect.DeepEqual(got, [][]string{{"a", "b"}, {"y"}, {"z"}}) {
		t.Fatalf("unexpected panes after activation %v", got)
	}
	if name, _ := o.RecallChosenName(nil); name != "b" {
		t.Fatalf("expected session memorization of b, got %q", name)
	}
	if len(o.History()) != 0 {
		t.Fatalf("expected no persistent memorization, got %v", o.History())
	}
}

func TestTryToGoIn(t *testing.T) {
	lister := treeLister(map[string][]string{
		"":    {"a/", "b/", "f"},
		"a":   {"c/", "d/"},
		"a/c": {"e"},
	})
	o := oracle.NewLastChoice(nil)
	s := NewStack(lister, o, nil)
	s.ExpandLists()
	if got := paneNames(s); !reflect.DeepEqual(got, [][]string{{"a", "b", "f"}, {"c", "d"}}) {
		t.Fatalf("unexpected initial panes %v", got)
	}
	if s.TryToGoIn(0) {
		t.Fatalf("expected refusal away from the frontier")
	}
	if !s.TryToGoIn(1) {
		t.Fatalf("expected to enter c")
	}
	if o.History()["a"] != "c" {
		t.Fatalf("expected persistent memorization, got %v", o.History())
	}
	if len(s.Panes) != 3 {
		t.Fatalf("expected pane for a/c, got %v", paneNames(s))
	}

	s.Panes[0].Cursor = 1
	s.ActivateSibling(0)
	if len(s.Panes) != 1 {
		t.Fatalf("expected childless b to end the stack, got %v", paneNames(s))
	}
	if s.TryToGoIn(0) {
		t.Fatalf("expected refusal for a branch with no children")
	}
	s.Panes[0].Cursor = 2
	s.ActivateSibling(0)
	if s.TryToGoIn(0) {
		t.Fatalf("expected refusal for a leaf")
	}
}

func TestSearchRejectsZeroMatchKeystroke(t *testing.T) {
	lister := treeLister(map[string][]string{
		"": {"alpha/", "beta.txt"},
	})
	s := NewStack(lister, oracle.NewFrequency(nil, nil), nil)
	s.ExpandLists()

	if !s.Search("b") {
		t.Fatalf("expected b to match")
	}
	if s.MatchCount() != 1 {
		t.Fatalf("expected a single match, got %d", s.MatchCount())
	}
	pane, line, ok := s.SoleMatch()
	if !ok || pane != 0 || s.Panes[0].Entries[line].Name != "beta.txt" {
		t.Fatalf("expected sole match on beta.txt, got %d/%d", pane, line)
	}

	before := paneNames(s)
	if s.Search("bz") {
		t.Fatalf("expected bz to be rejected")
	}
	if got := paneNames(s); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected views unchanged, got %v", got)
	}
	if s.MatchString != "b" || s.SearchString != "bz" {
		t.Fatalf("unexpected strings %q/%q", s.MatchString, s.SearchString)
	}
	if s.IsFullMatch() {
		t.Fatalf("expected partial match state")
	}

	s.ClearSearch()
	if s.MatchString != "" || len(s.Panes[0].Entries) != 2 {
		t.Fatalf("expected full reset, got %v", paneNames(s))
	}
	if s.Panes[0].SelectedName() != "alpha" {
		t.Fatalf("expected selection preserved, got %q", s.Panes[0].SelectedName())
	}
}

func TestSearchFiltersEveryPane(t *testing.T) {
	lister := treeLister(map[string][]string{
		"":    {"src/", "docs/"},
		"src": {"main.go", "util.go", "README"},
	})
	s := NewStack(lister, oracle.NewLastChoice(map[string]string{"": "src", "src": "README"}), nil)
	s.ExpandLists()

	if !s.Search(".go") {
		t.Fatalf("expected .go to match")
	}
	want := [][]string{{"src"}, {"main.go", "util.go", "README"}}
	if got := paneNames(s); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected views %v", got)
	}
	if s.Panes[1].SelectedName() != "README" {
		t.Fatalf("expected cursor kept on README, got %q", s.Panes[1].SelectedName())
	}
	if got := s.Matches(1); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Fatalf("unexpected matches %v", got)
	}
	if _, _, ok := s.SoleMatch(); ok {
		t.Fatalf("expected more than one match")
	}
}

func TestEntriesPathAndMaxHeight(t *testing.T) {
	lister := treeLister(map[string][]string{
		"":  {"a/"},
		"a": {"x", "y", "z"},
	})
	s := NewStack(lister, oracle.NewFrequency(nil, nil), nil)
	s.ExpandLists()
	path := s.EntriesPath(1)
	if len(path) != 2 || path[0].IsLeaf() || !path[1].IsLeaf() {
		t.Fatalf("unexpected entries path %#v", path)
	}
	if s.MaxHeight() != 3 {
		t.Fatalf("expected max height 3, got %d", s.MaxHeight())
	}
	if len(s.Path(-1)) != 0 {
		t.Fatalf("expected empty prefix before the first pane")
	}
}
