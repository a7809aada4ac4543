package search

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// Options holds raw search parameters as they arrive from the command line.
type Options struct {
	// Roots are the directories to search; empty means the current directory
	Roots []string
	// Patterns are regular expressions; an entry matches if any of them matches
	Patterns []string
	// MinSize is the minimum file size in bytes (nil = no limit)
	MinSize *int64
	// IncludeDirectories allows directories to be reported
	IncludeDirectories bool
	// MaxDepth limits recursion below each root (nil = unlimited, 0 = direct children only)
	MaxDepth *int
	// Permissions is an octal or symbolic permission descriptor
	Permissions string
	// PermissionMatch is the default comparison for Permissions
	PermissionMatch PermissionMatch
	// Type is a kind letter, a file extension or a MIME type
	Type string
	// Glob is a doublestar pattern matched against the path relative to its root
	Glob string
	// Char is a single character the entry name must contain
	Char string
	// ShowHidden includes entries whose name starts with "."
	ShowHidden bool
}

// Root is one directory to search.
type Root struct {
	// Path is the absolute directory read from the filesystem
	Path string
	// Display is the root as the user typed it; reported paths start with it
	// and patterns are matched against them
	Display string
}

// Request is a validated search. Build it with NewRequest.
type Request struct {
	Roots              []Root
	Pattern            *regexp.Regexp
	MinSize            int64 // negative when unset
	IncludeDirectories bool
	MaxDepth           int // negative when unlimited
	Permissions        *PermissionFilter
	Type               *TypeFilter
	Glob               string
	Char               rune // zero when unset
	ShowHidden         bool
}

// NewRequest validates opts and compiles it into a Request. Relative roots
// are resolved against cwd. All validation happens here so a malformed
// request never starts a traversal.
func NewRequest(opts Options, cwd string) (*Request, error) {
	pattern, err := compilePatterns(opts.Patterns)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Roots:              resolveRoots(opts.Roots, cwd),
		Pattern:            pattern,
		MinSize:            -1,
		IncludeDirectories: opts.IncludeDirectories,
		MaxDepth:           -1,
		Glob:               opts.Glob,
		ShowHidden:         opts.ShowHidden,
	}

	if opts.MinSize != nil {
		if *opts.MinSize < 0 {
			return nil, fmt.Errorf("size %d: %w", *opts.MinSize, ErrNegativeValue)
		}
		req.MinSize = *opts.MinSize
	}

	if opts.MaxDepth != nil {
		if *opts.MaxDepth < 0 {
			return nil, fmt.Errorf("level %d: %w", *opts.MaxDepth, ErrNegativeValue)
		}
		req.MaxDepth = *opts.MaxDepth
	}

	if opts.Permissions != "" {
		req.Permissions, err = ParsePermissions(opts.Permissions, opts.PermissionMatch)
		if err != nil {
			return nil, err
		}
	}

	if opts.Type != "" {
		req.Type, err = ParseType(opts.Type)
		if err != nil {
			return nil, err
		}
	}

	if opts.Glob != "" && !doublestar.ValidatePathPattern(opts.Glob) {
		return nil, fmt.Errorf("%w %q", ErrInvalidGlob, opts.Glob)
	}

	if opts.Char != "" {
		if utf8.RuneCountInString(opts.Char) != 1 {
			return nil, fmt.Errorf("%w %q: expected a single character", ErrInvalidChar, opts.Char)
		}
		req.Char, _ = utf8.DecodeRuneInString(opts.Char)
	}

	return req, nil
}

// compilePatterns compiles every pattern on its own so the offending one can
// be named, then joins them into a single alternation.
func compilePatterns(patterns []string) (*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return regexp.MustCompile(""), nil
	}

	groups := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, p, err)
		}
		groups = append(groups, "(?:"+p+")")
	}

	if len(groups) == 1 {
		return regexp.Compile(patterns[0])
	}
	return regexp.Compile(strings.Join(groups, "|"))
}

// resolveRoots pairs every root with its absolute form. Without roots the
// search starts at cwd, reported as an absolute path.
func resolveRoots(roots []string, cwd string) []Root {
	if len(roots) == 0 {
		if cwd == "" {
			return []Root{{Path: ".", Display: "."}}
		}
		cwd = filepath.Clean(cwd)
		return []Root{{Path: cwd, Display: cwd}}
	}

	resolved := make([]Root, 0, len(roots))
	for _, root := range roots {
		path := root
		if !filepath.IsAbs(path) && cwd != "" {
			path = filepath.Join(cwd, path)
		}
		resolved = append(resolved, Root{Path: filepath.Clean(path), Display: root})
	}
	return resolved
}

// RootNames returns the roots as they are reported.
func (r *Request) RootNames() []string {
	names := make([]string, len(r.Roots))
	for i, root := range r.Roots {
		names[i] = root.Display
	}
	return names
}

// descend reports whether a directory found at depth may be entered.
func (r *Request) descend(depth int) bool {
	return r.MaxDepth < 0 || depth < r.MaxDepth
}

// TypeFilter restricts results by kind, extension or MIME type. Exactly one
// of the three is set.
type TypeFilter struct {
	Kind      Kind
	HasKind   bool
	Extension string // lowercase with leading dot, may span several (".tar.gz")
	MIME      string // full type ("image/png") or prefix ending in "/" ("text/")
}

var typeKinds = map[string]Kind{
	"f":         KindFile,
	"file":      KindFile,
	"d":         KindDirectory,
	"dir":       KindDirectory,
	"directory": KindDirectory,
	"l":         KindOther,
	"other":     KindOther,
}

// ParseType parses the value of the -t flag.
func ParseType(s string) (*TypeFilter, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if kind, ok := typeKinds[v]; ok {
		return &TypeFilter{Kind: kind, HasKind: true}, nil
	}

	if strings.Contains(v, "/") {
		major, _, _ := strings.Cut(v, "/")
		if major == "" {
			return nil, fmt.Errorf("%w %q: MIME type needs a major type", ErrInvalidType, s)
		}
		return &TypeFilter{MIME: v}, nil
	}

	ext := strings.TrimPrefix(v, ".")
	if ext == "" || strings.HasSuffix(ext, ".") {
		return nil, fmt.Errorf("%w %q", ErrInvalidType, s)
	}
	return &TypeFilter{Extension: "." + ext}, nil
}
