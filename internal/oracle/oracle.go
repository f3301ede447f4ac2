package oracle

import (
	"fmt"
	"strings"
)

// Oracle recalls and records the child chosen at a path prefix.
type Oracle interface {
	// Memorize records name as the choice made under path. Persistent choices
	// survive the session; the rest are forgotten when it ends.
	Memorize(path []string, name string, persistent bool)
	// RecallChosenName returns the best guess for the child to pre-select
	// under path.
	RecallChosenName(path []string) (string, bool)
}

// Kind names an oracle strategy.
type Kind string

const (
	KindFrequency Kind = "frequency"
	KindLast      Kind = "last"
)

// Kinds lists the known strategies.
func Kinds() []Kind {
	return []Kind{KindFrequency, KindLast}
}

// ParseKind validates a strategy name. Empty selects the default.
func ParseKind(name string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(name)))
	if kind == "" {
		return KindFrequency, nil
	}
	names := make([]string, 0, len(Kinds()))
	for _, k := range Kinds() {
		if k == kind {
			return k, nil
		}
		names = append(names, string(k))
	}
	return "", fmt.Errorf("unknown oracle %q (want one of %s)", name, strings.Join(names, ", "))
}

// New builds the oracle of the requested kind on top of the caller-owned
// persistent state. Both arguments are mutated in place.
func New(kind Kind, history map[string]string, stats *Stats) Oracle {
	if kind == KindLast {
		return NewLastChoice(history)
	}
	return NewFrequency(stats, history)
}

// StringPath serialises a path prefix into a history key.
func StringPath(path []string) string {
	return strings.Join(path, "/")
}

func withName(path []string, name string) []string {
	full := make([]string, 0, len(path)+1)
	full = append(full, path...)
	return append(full, name)
}
