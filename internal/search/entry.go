package search

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	// KindOther covers symlinks, sockets, devices and named pipes.
	KindOther
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "other"
	}
}

// Entry is a snapshot of a single directory entry taken during traversal.
type Entry struct {
	// Path is the root as given joined with every component down to the
	// entry. It is what patterns see and what a search reports.
	Path string
	// FullPath is the absolute path used for filesystem access
	FullPath string
	// Rel is Path relative to the search root
	Rel string
	// Name is the final path component
	Name string
	Kind Kind
	// Size is only meaningful for files
	Size int64
	Mode fs.FileMode
	// Depth is 0 for the direct children of a root
	Depth int
}

// IsHidden reports whether name carries the hidden-file marker.
func IsHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDirectory
	default:
		return KindOther
	}
}

// newEntry describes info found in dir, whose reported form is shown.
func newEntry(root Root, dir, shown string, info fs.FileInfo, depth int) Entry {
	full := filepath.Join(dir, info.Name())
	rel, err := filepath.Rel(root.Path, full)
	if err != nil {
		rel = info.Name()
	}

	entry := Entry{
		Path:     joinShown(shown, info.Name()),
		FullPath: full,
		Rel:      rel,
		Name:     info.Name(),
		Kind:     kindOf(info.Mode()),
		Mode:     info.Mode(),
		Depth:    depth,
	}
	if entry.Kind == KindFile {
		entry.Size = info.Size()
	}
	return entry
}

// joinShown appends name to a reported directory path without cleaning it,
// so a root typed as "./src" or "src/" keeps that spelling.
func joinShown(dir, name string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) || strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}
