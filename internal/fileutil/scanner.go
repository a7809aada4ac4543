package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrNotFound is returned when a cd target does not exist or is hidden.
	ErrNotFound = errors.New("no such directory")
	// ErrNotDirectory is returned when a cd target is a file.
	ErrNotDirectory = errors.New("cannot cd into a file")
	// ErrNotChild is returned for relative targets with more than one component.
	ErrNotChild = errors.New("not a direct child of the current directory")
)

// ListOptions configures ListDirectory
type ListOptions struct {
	// ShowHidden includes entries whose name starts with "."
	ShowHidden bool
}

// Listing contains the immediate entries of one directory
type Listing struct {
	// Dir is the directory that was listed
	Dir string
	// Entries are sorted by name
	Entries []fs.FileInfo
}

// ListDirectory reads the immediate entries of dir.
func ListDirectory(fsys afero.Fs, dir string, opts ListOptions) (*Listing, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	listing := &Listing{
		Dir:     dir,
		Entries: make([]fs.FileInfo, 0, len(infos)),
	}
	for _, info := range infos {
		if !opts.ShowHidden && isHidden(info.Name()) {
			continue
		}
		listing.Entries = append(listing.Entries, info)
	}

	return listing, nil
}

// ResolveDirectory returns the directory a cd to target from cwd would land
// in. ".." moves to the parent, an absolute path moves directly, anything
// else must name a direct child directory of cwd.
func ResolveDirectory(fsys afero.Fs, cwd, target string, showHidden bool) (string, error) {
	switch {
	case target == "" || target == ".":
		return cwd, nil
	case target == "..":
		return filepath.Dir(cwd), nil
	case filepath.IsAbs(target):
		return checkDirectory(fsys, filepath.Clean(target))
	}

	name := strings.TrimSuffix(target, string(filepath.Separator))
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return "", fmt.Errorf("%s: %w", target, ErrNotChild)
	}
	if !showHidden && isHidden(name) {
		return "", fmt.Errorf("%s: %w", target, ErrNotFound)
	}

	return checkDirectory(fsys, filepath.Join(cwd, name))
}

func checkDirectory(fsys afero.Fs, path string) (string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return "", fmt.Errorf("failed to access %s: %w", path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}
	return path, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
