package settings

import (
	"os"
	"path/filepath"
)

var vcsMarkers = []string{".git", ".svn"}

// FindRoot walks up from folder looking for the folder that anchors a picking
// session. It stops at the first ancestor that is already known, holds a
// version control directory, or equals home. The filesystem root is the last
// resort.
func FindRoot(folder, home string, known func(string) bool) string {
	path := filepath.Clean(folder)
	if home != "" {
		home = filepath.Clean(home)
	}
	for {
		if known != nil && known(path) {
			return path
		}
		if path == home {
			return path
		}
		for _, marker := range vcsMarkers {
			if _, err := os.Stat(filepath.Join(path, marker)); err == nil {
				return path
			}
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// Relative expresses target relative to root, returning "." for the root
// itself.
func Relative(root, target string) string {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return target
	}
	return rel
}
