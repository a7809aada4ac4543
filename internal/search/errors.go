package search

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern is returned when a match pattern does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidPermissions is returned for a malformed permission descriptor.
	ErrInvalidPermissions = errors.New("invalid permissions")
	// ErrInvalidType is returned for an empty or malformed type filter.
	ErrInvalidType = errors.New("invalid type")
	// ErrInvalidGlob is returned when a glob filter is not a valid doublestar pattern.
	ErrInvalidGlob = errors.New("invalid glob")
	// ErrInvalidChar is returned when the character filter is not exactly one character.
	ErrInvalidChar = errors.New("invalid character filter")
	// ErrNegativeValue is returned for a negative size or depth limit.
	ErrNegativeValue = errors.New("value must be non-negative")
	// ErrNotDirectory is reported for a root that exists but is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// SubtreeError reports a directory that could not be read. Matches outside
// the failed subtree are unaffected.
type SubtreeError struct {
	Path string
	Err  error
}

func (e *SubtreeError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Err)
}

func (e *SubtreeError) Unwrap() error {
	return e.Err
}
