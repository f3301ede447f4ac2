package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/fsel/internal/entry"
)

// Palette holds the four row styles of one entry category, indexed by
// 2*focusedPane + currentRow.
type Palette [4]*lipgloss.Style

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	StickyFolder Palette
	SGIDFolder   Palette
	SUIDFolder   Palette
	Folder       Palette
	Leaf         Palette

	Description       *lipgloss.Style
	Match             *lipgloss.Style
	PartialMatch      *lipgloss.Style
	Footer            *lipgloss.Style
	FilterPrompt      *lipgloss.Style
	Filter            *lipgloss.Style
	FilterPlaceholder *lipgloss.Style
	Info              *lipgloss.Style
}

const (
	black   = lipgloss.Color("0")
	bGreen  = lipgloss.Color("10")
	bWhite  = lipgloss.Color("15")
	blue    = lipgloss.Color("18")
	cyan    = lipgloss.Color("31")
	yellow  = lipgloss.Color("220")
	bYellow = lipgloss.Color("227")
	gray    = lipgloss.Color("248")
	suidFg  = lipgloss.Color("#c03030")
)

func palette(fg, currentFocusedFg lipgloss.TerminalColor) Palette {
	return Palette{
		ptr(lipgloss.NewStyle().Foreground(fg).Background(black)),
		ptr(lipgloss.NewStyle().Foreground(fg).Background(blue)),
		ptr(lipgloss.NewStyle().Foreground(fg).Background(black)),
		ptr(lipgloss.NewStyle().Foreground(currentFocusedFg).Background(cyan)),
	}
}

var defaultStyles = Styles{
	StickyFolder: palette(bGreen, bGreen),
	SGIDFolder:   palette(bYellow, bYellow),
	SUIDFolder:   palette(suidFg, suidFg),
	Folder:       palette(bWhite, bWhite),
	Leaf:         palette(gray, black),

	Description: ptr(
		lipgloss.NewStyle().Foreground(yellow),
	),
	Match: ptr(
		lipgloss.NewStyle().Reverse(true),
	),
	PartialMatch: ptr(
		lipgloss.NewStyle().Reverse(true).Strikethrough(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// PaletteFor picks the category palette for an entry's attributes. Special
// permission bits only matter on folders.
func (s *Styles) PaletteFor(attrs entry.Attr) Palette {
	if attrs&entry.Directory == 0 {
		return s.Leaf
	}
	switch {
	case attrs&entry.Sticky != 0:
		return s.StickyFolder
	case attrs&entry.SetGID != 0:
		return s.SGIDFolder
	case attrs&entry.SetUID != 0:
		return s.SUIDFolder
	}
	return s.Folder
}

// Row returns the base style for an entry row, applying the cosmetic
// italic and strike-through flags.
func (s *Styles) Row(e entry.Entry, focusedPane, current bool) lipgloss.Style {
	idx := 0
	if focusedPane {
		idx += 2
	}
	if current {
		idx++
	}
	style := *s.PaletteFor(e.Attrs)[idx]
	if e.IsItalic() {
		style = style.Italic(true)
	}
	if e.IsStrikeThrough() {
		style = style.Strikethrough(true)
	}
	return style
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
