package lister

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/atomicstack/fsel/internal/entry"
	"github.com/atomicstack/fsel/internal/logging/events"
)

const (
	xattrDescription = "user.description"
	xattrDeleted     = "user.deleted"
)

// FS lists a directory tree below Root. Directories come first, then files
// when SelectFiles is set.
type FS struct {
	Root        string
	SelectFiles bool
	Executables bool
	DotFiles    bool
}

// List implements entry.Lister. Unreadable directories list as empty.
func (l FS) List(path []string) []entry.Entry {
	dir := filepath.Join(append([]string{l.Root}, path...)...)
	dirents, err := os.ReadDir(dir)
	if err != nil {
		events.Lister.ReadFailed(dir, err)
		return nil
	}

	var dirs, files []entry.Entry
	for _, de := range dirents {
		name := de.Name()
		full := filepath.Join(dir, name)
		info, err := os.Stat(full)
		if err != nil {
			continue
		}
		if info.IsDir() {
			if strings.HasPrefix(name, ".") {
				continue
			}
			dirs = append(dirs, l.folder(name, full, info, de.Type()&fs.ModeSymlink != 0))
			continue
		}
		if l.suitableFile(name, full, info) {
			files = append(files, entry.Entry{Name: name})
		}
	}
	return append(dirs, files...)
}

func (l FS) folder(name, full string, info fs.FileInfo, symlink bool) entry.Entry {
	attrs := modeAttrs(info.Mode()) | entry.Directory
	if symlink {
		attrs |= entry.Italic
	}
	if hasXattr(full, xattrDeleted) {
		attrs |= entry.StrikeThrough
	}
	return entry.Entry{Name: name, Attrs: attrs, Description: readXattr(full, xattrDescription)}
}

func (l FS) suitableFile(name, full string, info fs.FileInfo) bool {
	if !l.SelectFiles {
		return false
	}
	if !l.DotFiles && strings.HasPrefix(name, ".") {
		return false
	}
	if !info.Mode().IsRegular() {
		return false
	}
	if l.Executables {
		return unix.Access(full, unix.X_OK) == nil
	}
	return true
}

func modeAttrs(mode fs.FileMode) entry.Attr {
	attrs := entry.Attr(mode.Perm())
	if mode&fs.ModeSetuid != 0 {
		attrs |= entry.SetUID
	}
	if mode&fs.ModeSetgid != 0 {
		attrs |= entry.SetGID
	}
	if mode&fs.ModeSticky != 0 {
		attrs |= entry.Sticky
	}
	return attrs
}

func readXattr(path, name string) string {
	size, err := unix.Getxattr(path, name, nil)
	if err != nil || size <= 0 {
		return ""
	}
	buf := make([]byte, size)
	n, err := unix.Getxattr(path, name, buf)
	if err != nil {
		return ""
	}
	return string(buf[:n])
}

func hasXattr(path, name string) bool {
	_, err := unix.Getxattr(path, name, nil)
	return err == nil
}
