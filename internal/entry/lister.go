package entry

// Lister enumerates the children of a path prefix. An unreadable or empty
// prefix yields an empty slice, never an error.
type Lister interface {
	List(path []string) []Entry
}

// ListerFunc adapts a plain function to the Lister interface.
type ListerFunc func(path []string) []Entry

// List implements Lister.
func (f ListerFunc) List(path []string) []Entry {
	return f(path)
}
