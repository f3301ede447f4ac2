package ui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/fsel/internal/entry"
	"github.com/atomicstack/fsel/internal/exitcode"
	"github.com/atomicstack/fsel/internal/oracle"
	uistate "github.com/atomicstack/fsel/internal/ui/state"
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

func newPathHarness(t *testing.T, tree map[string][]string, o oracle.Oracle, width, height int) (*Harness, *PathDialog) {
	t.Helper()
	stack := uistate.NewStack(treeLister(tree), o, nil)
	dialog := NewPathDialog(stack, true)
	return NewHarness(NewModel(dialog, width, height)), dialog
}

func committedNames(h *Harness) []string {
	return entry.Names(h.Model().CommittedPath())
}

func paneNames(d *PathDialog) [][]string {
	out := make([][]string, len(d.Stack().Panes))
	for i, p := range d.Stack().Panes {
		out[i] = entry.Names(p.Entries)
	}
	return out
}

var nestedTree = map[string][]string{
	"":    {"a/", "b/"},
	"a":   {"c/", "d/"},
	"a/c": {"e"},
}

func nestedOracle() *oracle.LastChoice {
	return oracle.NewLastChoice(map[string]string{"": "a", "a": "c"})
}

func TestPathDialogExpandsRecalledChoices(t *testing.T) {
	_, d := newPathHarness(t, nestedTree, nestedOracle(), 80, 10)
	want := [][]string{{"a", "b"}, {"c", "d"}, {"e"}}
	if got := paneNames(d); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected panes %v", got)
	}
	if d.Stack().Focus != 0 {
		t.Fatalf("expected focus on the first pane, got %d", d.Stack().Focus)
	}
}

func TestConfirmKeysPickDifferentPrefixes(t *testing.T) {
	cases := []struct {
		key  string
		want []string
	}{
		{"enter", []string{"a"}},
		{"tab", []string{"a", "c", "e"}},
		{"shift+tab", []string{}},
	}
	for _, tc := range cases {
		h, _ := newPathHarness(t, nestedTree, nestedOracle(), 80, 10)
		h.Keys(tc.key)
		if o := h.Model().Outcome(); o.Signal != Confirm || o.ExitCode() != exitcode.Confirm {
			t.Fatalf("%s: expected confirm, got %+v", tc.key, o)
		}
		if got := committedNames(h); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.key, tc.want, got)
		}
		if h.View() != "" {
			t.Fatalf("%s: expected empty view after finishing", tc.key)
		}
	}
}

func TestCancelCommitsNothing(t *testing.T) {
	h, _ := newPathHarness(t, nestedTree, nestedOracle(), 80, 10)
	h.Keys("right", "esc")
	o := h.Model().Outcome()
	if o.Signal != Cancel || o.ExitCode() != exitcode.Cancel {
		t.Fatalf("expected cancel, got %+v", o)
	}
	if h.Model().CommittedPath() != nil {
		t.Fatalf("expected no committed path")
	}
}

func TestExitKeysFinishWithCode(t *testing.T) {
	cases := []struct {
		key  string
		code int
	}{
		{"f5", exitcode.F1 + 4},
		{"alt+ ", exitcode.Space + exitcode.Alt},
		{"alt+enter", exitcode.Enter + exitcode.Alt},
		{"insert", exitcode.Insert},
	}
	for _, tc := range cases {
		h, _ := newPathHarness(t, nestedTree, nestedOracle(), 80, 10)
		h.Keys("right", tc.key)
		o := h.Model().Outcome()
		if o.Signal != Exit || o.ExitCode() != tc.code {
			t.Fatalf("%q: expected exit %d, got %+v", tc.key, tc.code, o)
		}
		if got := committedNames(h); !reflect.DeepEqual(got, []string{"a", "c"}) {
			t.Fatalf("%q: expected focused path, got %v", tc.key, got)
		}
	}
}

func TestHorizontalNavigation(t *testing.T) {
	h, d := newPathHarness(t, nestedTree, nestedOracle(), 80, 10)
	s := d.Stack()
	h.Keys("right", "right")
	if s.Focus != 2 {
		t.Fatalf("expected focus on the frontier, got %d", s.Focus)
	}
	h.Keys("right")
	if s.Focus != 2 || len(s.Panes) != 3 {
		t.Fatalf("expected leaf frontier to stay put, got focus %d panes %v", s.Focus, paneNames(d))
	}
	h.Keys("left")
	if s.Focus != 1 {
		t.Fatalf("expected focus 1, got %d", s.Focus)
	}
	h.Keys("home")
	if s.Focus != 0 {
		t.Fatalf("expected focus 0, got %d", s.Focus)
	}
	h.Keys("end")
	if s.Focus != 2 {
		t.Fatalf("expected focus 2, got %d", s.Focus)
	}
}

func TestRightEntersUnexpandedBranch(t *testing.T) {
	tree := map[string][]string{
		"":    {"a/", "b/"},
		"a":   {"c/", "d/"},
		"a/c": {"x", "y"},
	}
	o := oracle.NewLastChoice(nil)
	h, d := newPathHarness(t, tree, o, 80, 10)
	if got := paneNames(d); !reflect.DeepEqual(got, [][]string{{"a", "b"}, {"c", "d"}}) {
		t.Fatalf("unexpected panes %v", got)
	}
	h.Keys("right", "right")
	if d.Stack().Focus != 2 {
		t.Fatalf("expected focus on the new pane, got %d", d.Stack().Focus)
	}
	if got := paneNames(d); len(got) != 3 || !reflect.DeepEqual(got[2], []string{"x", "y"}) {
		t.Fatalf("unexpected panes %v", got)
	}
	if o.History()["a"] != "c" {
		t.Fatalf("expected entering to memorize c, got %v", o.History())
	}
}

func TestVerticalMoveActivatesSibling(t *testing.T) {
	o := nestedOracle()
	h, d := newPathHarness(t, nestedTree, o, 80, 10)
	h.Keys("right", "down")
	if got := paneNames(d); !reflect.DeepEqual(got, [][]string{{"a", "b"}, {"c", "d"}}) {
		t.Fatalf("expected right side rebuilt, got %v", got)
	}
	if name, _ := o.RecallChosenName([]string{"a"}); name != "d" {
		t.Fatalf("expected session memorization of d, got %q", name)
	}
	if o.History()["a"] != "c" {
		t.Fatalf("expected history untouched before confirming, got %v", o.History())
	}
	h.Keys("enter")
	if got := committedNames(h); !reflect.DeepEqual(got, []string{"a", "d"}) {
		t.Fatalf("unexpected committed path %v", got)
	}
	if o.History()["a"] != "d" || o.History()[""] != "a" {
		t.Fatalf("expected confirmed path memorized, got %v", o.History())
	}
}

func TestTypingSoleMatchJumpsAndResets(t *testing.T) {
	tree := map[string][]string{
		"":      {"alpha/", "beta.txt"},
		"alpha": {"one", "two"},
	}
	h, d := newPathHarness(t, tree, oracle.NewFrequency(nil, nil), 80, 10)
	h.Keys("b")
	s := d.Stack()
	if s.Panes[0].SelectedName() != "beta.txt" {
		t.Fatalf("expected jump to beta.txt, got %q", s.Panes[0].SelectedName())
	}
	if s.SearchString != "" || s.MatchString != "" {
		t.Fatalf("expected search reset, got %q/%q", s.SearchString, s.MatchString)
	}
	if len(s.Panes) != 1 {
		t.Fatalf("expected leaf selection to drop the right side, got %v", paneNames(d))
	}
	h.Keys("tab")
	if got := committedNames(h); !reflect.DeepEqual(got, []string{"beta.txt"}) {
		t.Fatalf("unexpected committed path %v", got)
	}
}

func TestTypingRejectsZeroMatchKeystroke(t *testing.T) {
	tree := map[string][]string{
		"": {"bar", "baz", "qux"},
	}
	h, d := newPathHarness(t, tree, oracle.NewFrequency(nil, nil), 80, 10)
	s := d.Stack()
	h.Keys("b")
	if got := paneNames(d); !reflect.DeepEqual(got, [][]string{{"bar", "baz"}}) {
		t.Fatalf("expected filtered view, got %v", got)
	}
	h.Keys("z")
	if s.SearchString != "bz" || s.MatchString != "b" {
		t.Fatalf("unexpected strings %q/%q", s.SearchString, s.MatchString)
	}
	if got := paneNames(d); !reflect.DeepEqual(got, [][]string{{"bar", "baz"}}) {
		t.Fatalf("expected view unchanged, got %v", got)
	}
	if !strings.Contains(h.View(), "no match") {
		t.Fatalf("expected footer to flag the partial match:\n%s", h.View())
	}

	h.Keys("backspace")
	if s.SearchString != "b" || !s.IsFullMatch() {
		t.Fatalf("expected backspace to restore b, got %q/%q", s.SearchString, s.MatchString)
	}
	h.Keys("delete")
	if s.SearchString != "" || len(s.Panes[0].Entries) != 3 {
		t.Fatalf("expected cleared search, got %q %v", s.SearchString, paneNames(d))
	}
	h.Keys("backspace")
	if h.Model().Outcome().Done() {
		t.Fatalf("expected backspace on empty search to keep running")
	}
}

func TestSpaceExtendsSearch(t *testing.T) {
	tree := map[string][]string{
		"": {"mydata", "my docs", "my notes", "other"},
	}
	h, d := newPathHarness(t, tree, oracle.NewLastChoice(nil), 80, 10)
	s := d.Stack()
	h.Keys("m", "y", " ")
	if h.Model().Outcome().Done() {
		t.Fatalf("expected space to keep the dialog open, got %+v", h.Model().Outcome())
	}
	if s.SearchString != "my " || !s.IsFullMatch() {
		t.Fatalf("expected search %q, got %q/%q", "my ", s.SearchString, s.MatchString)
	}
	if got := s.Matches(0); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("expected the two names with a space to match, got %v in %v", got, paneNames(d))
	}
}

func TestAltKeysWalkMatches(t *testing.T) {
	tree := map[string][]string{
		"": {"ab", "cd", "ab2", "ef"},
	}
	h, d := newPathHarness(t, tree, oracle.NewFrequency(nil, nil), 80, 10)
	pane := d.Stack().Panes[0]
	h.Keys("a")
	if got := pane.SelectedName(); got != "ab" {
		t.Fatalf("expected cursor on ab, got %q", got)
	}
	h.Keys("alt+down")
	if got := pane.SelectedName(); got != "ab2" {
		t.Fatalf("expected next match ab2, got %q", got)
	}
	h.Keys("alt+up")
	if got := pane.SelectedName(); got != "ab" {
		t.Fatalf("expected previous match ab, got %q", got)
	}
	h.Keys("alt+pgdown")
	if got := pane.SelectedName(); got != "ab2" {
		t.Fatalf("expected last match ab2, got %q", got)
	}
	h.Keys("alt+pgup")
	if got := pane.SelectedName(); got != "ab" {
		t.Fatalf("expected first match ab, got %q", got)
	}

	h.Keys("down")
	if got := pane.SelectedName(); got != "cd" {
		t.Fatalf("expected plain down to walk the full list, got %q", got)
	}
	if d.Stack().SearchString != "" {
		t.Fatalf("expected vertical move to reset the search")
	}
}

func TestAltRightJumpsToMatchInLaterPane(t *testing.T) {
	tree := map[string][]string{
		"":  {"a/", "b/"},
		"a": {"x", "y", "ya"},
	}
	h, d := newPathHarness(t, tree, oracle.NewLastChoice(map[string]string{"": "a"}), 80, 10)
	s := d.Stack()
	h.Keys("y")
	if s.Focus != 0 {
		t.Fatalf("expected focus to stay with two matches, got %d", s.Focus)
	}
	h.Keys("alt+right")
	if s.Focus != 1 || s.Panes[1].SelectedName() != "y" {
		t.Fatalf("expected jump to y in pane 1, got focus %d on %q", s.Focus, s.Panes[1].SelectedName())
	}
	h.Keys("alt+left")
	if s.Focus != 1 {
		t.Fatalf("expected no earlier pane with a match, got focus %d", s.Focus)
	}
}

func TestEmptyStackOnlyCancels(t *testing.T) {
	h, _ := newPathHarness(t, map[string][]string{}, oracle.NewFrequency(nil, nil), 80, 10)
	h.Keys("enter", "f1")
	if h.Model().Outcome().Done() {
		t.Fatalf("expected empty stack to ignore confirm keys")
	}
	h.Keys("esc")
	if h.Model().Outcome().Signal != Cancel {
		t.Fatalf("expected cancel")
	}
}
