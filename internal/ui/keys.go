package ui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/fsel/internal/exitcode"
)

type pathKeyMap struct {
	Cancel          key.Binding
	Confirm         key.Binding
	ConfirmFrontier key.Binding
	ConfirmRoot     key.Binding
	Right           key.Binding
	Left            key.Binding
	Home            key.Binding
	End             key.Binding
	Up              key.Binding
	Down            key.Binding
	PageUp          key.Binding
	PageDown        key.Binding
	MatchPrev       key.Binding
	MatchNext       key.Binding
	MatchFirst      key.Binding
	MatchLast       key.Binding
	MatchRight      key.Binding
	MatchLeft       key.Binding
	Backspace       key.Binding
	ClearSearch     key.Binding
}

var pathKeys = pathKeyMap{
	Cancel:          key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	Confirm:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick focused path")),
	ConfirmFrontier: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pick full path")),
	ConfirmRoot:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "pick root")),
	Right:           key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "go in")),
	Left:            key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "go out")),
	Home:            key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first pane")),
	End:             key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last pane")),
	Up:              key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:            key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	PageUp:          key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:        key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
	MatchPrev:       key.NewBinding(key.WithKeys("alt+up"), key.WithHelp("alt+↑", "previous match")),
	MatchNext:       key.NewBinding(key.WithKeys("alt+down"), key.WithHelp("alt+↓", "next match")),
	MatchFirst:      key.NewBinding(key.WithKeys("alt+pgup"), key.WithHelp("alt+pgup", "first match")),
	MatchLast:       key.NewBinding(key.WithKeys("alt+pgdown"), key.WithHelp("alt+pgdown", "last match")),
	MatchRight:      key.NewBinding(key.WithKeys("alt+right"), key.WithHelp("alt+→", "match in next pane")),
	MatchLeft:       key.NewBinding(key.WithKeys("alt+left"), key.WithHelp("alt+←", "match in previous pane")),
	Backspace:       key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "shorten search")),
	ClearSearch:     key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "clear search")),
}

type listKeyMap struct {
	Cancel      key.Binding
	Confirm     key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Home        key.Binding
	End         key.Binding
	Backspace   key.Binding
	DeleteWord  key.Binding
	ClearFilter key.Binding
}

var listKeys = listKeyMap{
	Cancel:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
	Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick")),
	Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
	Home:        key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
	End:         key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
	Backspace:   key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete rune")),
	DeleteWord:  key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "delete word")),
	ClearFilter: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear filter")),
}

// typedText returns the printable text carried by a key press. Alt chords and
// control characters carry none.
func typedText(msg tea.KeyMsg) (string, bool) {
	if msg.Type == tea.KeySpace && !msg.Alt {
		return " ", true
	}
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) == 0 {
		return "", false
	}
	for _, r := range msg.Runes {
		if unicode.IsControl(r) {
			return "", false
		}
	}
	return string(msg.Runes), true
}

// exitKey looks up the exit code bound to a key. Typed text never exits.
func exitKey(msg tea.KeyMsg) (int, bool) {
	if _, typed := typedText(msg); typed {
		return 0, false
	}
	return exitcode.Lookup(msg.String())
}
