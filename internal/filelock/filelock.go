// Package filelock writes find results to an output file. Content is staged in
// memory and replaced on disk in one rename while an advisory lock is held, so
// two shells writing the same file never interleave lines.
package filelock

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrCommitted is returned when a Writer is used after Commit or Discard.
var ErrCommitted = errors.New("output already committed")

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Lock acquires an exclusive lock, blocking until it is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// LockPath returns the lock file used for target: a hidden sibling named
// ".<base>.lock" so it never shows up in ls or find while hidden entries are off.
func LockPath(target string) string {
	return filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+".lock")
}

// AtomicWrite replaces path with data using a temp file in the same directory
// and a rename. An existing file keeps its permission bits; new files get perm.
// If any step fails the original file is left untouched.
func AtomicWrite(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)

	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		perm = info.Mode().Perm()
	}

	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tempFile = nil
	return nil
}

// LockAndWrite acquires the lock for path, performs an atomic write, then
// releases and removes the lock file.
func LockAndWrite(path string, data []byte, perm fs.FileMode) error {
	lockPath := LockPath(path)
	lock := NewFileLock(lockPath)

	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		lock.Unlock()
		os.Remove(lockPath)
	}()

	return AtomicWrite(path, data, perm)
}

// Writer collects output lines for a single target file.
type Writer struct {
	path  string
	buf   bytes.Buffer
	lines int
	done  bool
}

// NewWriter prepares a writer for path. The parent directory must already
// exist; it is checked here so a bad -o fails before any searching starts.
func NewWriter(path string) (*Writer, error) {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot write %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot write %s: %s is not a directory", path, dir)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("cannot write %s: is a directory", path)
	}
	return &Writer{path: path}, nil
}

// Path returns the target file path.
func (w *Writer) Path() string {
	return w.path
}

// Lines returns the number of lines written so far.
func (w *Writer) Lines() int {
	return w.lines
}

// WriteLine appends line and a trailing newline.
func (w *Writer) WriteLine(line string) error {
	if w.done {
		return ErrCommitted
	}
	w.buf.WriteString(line)
	w.buf.WriteByte('\n')
	w.lines++
	return nil
}

// Commit replaces the target file with the collected lines.
func (w *Writer) Commit() error {
	if w.done {
		return ErrCommitted
	}
	w.done = true
	return LockAndWrite(w.path, w.buf.Bytes(), 0644)
}

// Discard drops the collected lines without touching the target.
func (w *Writer) Discard() {
	w.done = true
	w.buf.Reset()
}
