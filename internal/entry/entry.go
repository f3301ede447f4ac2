package entry

import (
	"github.com/mattn/go-runewidth"
)

// Attr is the attribute bitmask carried by an Entry. The low bits mirror the
// st_mode permission bits reported by the operating system.
type Attr uint32

const (
	Sticky        Attr = 0o1000
	SetGID        Attr = 0o2000
	SetUID        Attr = 0o4000
	Directory     Attr = 0x8000
	Italic        Attr = 0x10000
	StrikeThrough Attr = 0x20000
)

// Entry represents a selectable item in a pane.
type Entry struct {
	Name        string
	Attrs       Attr
	Description string
}

// Has reports whether all bits in mask are set.
func (e Entry) Has(mask Attr) bool {
	return e.Attrs&mask == mask
}

// IsLeaf reports whether the entry terminates a path.
func (e Entry) IsLeaf() bool {
	return e.Attrs&Directory == 0
}

func (e Entry) IsItalic() bool {
	return e.Attrs&Italic != 0
}

func (e Entry) IsStrikeThrough() bool {
	return e.Attrs&StrikeThrough != 0
}

// DisplayText returns the text shown for the entry: its name, followed by the
// description when one is present.
func (e Entry) DisplayText() string {
	if e.Description == "" {
		return e.Name
	}
	return e.Name + " " + e.Description
}

// DisplayLength returns the number of terminal cells DisplayText occupies.
func (e Entry) DisplayLength() int {
	return runewidth.StringWidth(e.DisplayText())
}

// MaxDisplayLength returns the widest DisplayLength among entries.
func MaxDisplayLength(entries []Entry) int {
	widest := 0
	for _, e := range entries {
		if w := e.DisplayLength(); w > widest {
			widest = w
		}
	}
	return widest
}

// IndexOfName returns the index of the entry with the given name.
func IndexOfName(name string, entries []Entry) (int, bool) {
	for i, e := range entries {
		if e.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Names returns the names of the entries in order.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Clone produces a shallow copy of the provided entries.
func Clone(entries []Entry) []Entry {
	dup := make([]Entry, len(entries))
	copy(dup, entries)
	return dup
}
