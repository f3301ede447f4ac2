package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store persists one Settings document per root folder.
type Store interface {
	Load(root string) (*Settings, error)
	Save(root string, s *Settings) error
	Known(root string) bool
}

// DirStore keeps each root's settings in its own file inside a directory.
// File names are the root path with '/' replaced by '\'.
type DirStore struct {
	dir   string
	roots map[string]struct{}
}

// DefaultDir resolves $XDG_CONFIG_HOME/fsel/roots, falling back to
// ~/.config/fsel/roots.
func DefaultDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "fsel", "roots")
}

// OpenDir creates dir if needed and indexes the roots already stored there.
func OpenDir(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read settings dir: %w", err)
	}
	store := &DirStore{dir: dir, roots: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		store.roots[rootFromFileName(e.Name())] = struct{}{}
	}
	return store, nil
}

// Known reports whether settings exist for root.
func (s *DirStore) Known(root string) bool {
	_, ok := s.roots[root]
	return ok
}

// Roots lists every stored root in sorted order.
func (s *DirStore) Roots() []string {
	out := make([]string, 0, len(s.roots))
	for r := range s.roots {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Load reads the settings for root. A missing file yields empty settings. An
// unreadable document yields empty settings together with the decode error.
func (s *DirStore) Load(root string) (*Settings, error) {
	data, err := os.ReadFile(s.file(root))
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return New(), fmt.Errorf("read settings for %s: %w", root, err)
	}
	loaded := New()
	if err := json.Unmarshal(data, loaded); err != nil {
		return New(), fmt.Errorf("decode settings for %s: %w", root, err)
	}
	return loaded, nil
}

// Save writes settings for root, replacing the file atomically.
func (s *DirStore) Save(root string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings for %s: %w", root, err)
	}
	tmp, err := os.CreateTemp(s.dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("write settings for %s: %w", root, err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write settings for %s: %w", root, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write settings for %s: %w", root, err)
	}
	if err := os.Rename(tmp.Name(), s.file(root)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write settings for %s: %w", root, err)
	}
	s.roots[root] = struct{}{}
	return nil
}

func (s *DirStore) file(root string) string {
	return filepath.Join(s.dir, fileNameFromRoot(root))
}

func fileNameFromRoot(root string) string {
	return strings.ReplaceAll(root, "/", `\`)
}

func rootFromFileName(name string) string {
	return strings.ReplaceAll(name, `\`, "/")
}
