package search

import (
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter reports whether an entry may be emitted.
type Filter func(Entry) bool

// passes evaluates filters in order and stops at the first rejection.
func passes(e Entry, filters []Filter) bool {
	for _, f := range filters {
		if !f(e) {
			return false
		}
	}
	return true
}

// kindFilter lets non-directories through and directories only when asked
// for, either by -a or by an explicit directory type.
func kindFilter(includeDirs bool, t *TypeFilter) Filter {
	if t != nil && t.HasKind {
		want := t.Kind
		return func(e Entry) bool { return e.Kind == want }
	}
	return func(e Entry) bool {
		return e.Kind != KindDirectory || includeDirs
	}
}

// sizeFilter applies to non-directories; directories always pass.
func sizeFilter(min int64) Filter {
	return func(e Entry) bool {
		return e.Kind == KindDirectory || e.Size >= min
	}
}

func permissionFilter(p *PermissionFilter) Filter {
	return func(e Entry) bool { return p.Matches(e.Mode) }
}

func extensionFilter(ext string) Filter {
	return func(e Entry) bool {
		return e.Kind != KindDirectory && strings.HasSuffix(strings.ToLower(e.Name), ext)
	}
}

// mimeFilter detects content types lazily, so it belongs at the end of the chain.
func mimeFilter(want string, detect func(path string) (string, bool)) Filter {
	prefix := strings.HasSuffix(want, "/")
	return func(e Entry) bool {
		if e.Kind != KindFile {
			return false
		}
		got, ok := detect(e.FullPath)
		if !ok {
			return false
		}
		if prefix {
			return strings.HasPrefix(got, want)
		}
		return got == want
	}
}

func globFilter(pattern string) Filter {
	return func(e Entry) bool {
		ok, err := doublestar.PathMatch(pattern, e.Rel)
		return err == nil && ok
	}
}

func charFilter(r rune) Filter {
	return func(e Entry) bool { return strings.ContainsRune(e.Name, r) }
}

func patternFilter(re *regexp.Regexp) Filter {
	return func(e Entry) bool { return re.MatchString(e.Path) }
}
