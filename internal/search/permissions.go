package search

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"
)

// PermissionMatch selects how a permission mask is compared with an entry's bits.
type PermissionMatch int

const (
	// MatchExact requires the permission bits to equal the mask.
	MatchExact PermissionMatch = iota
	// MatchAll requires every bit in the mask to be set; extra bits are allowed.
	MatchAll
)

// String returns the configuration name of the match mode.
func (m PermissionMatch) String() string {
	if m == MatchAll {
		return "all"
	}
	return "exact"
}

// ParsePermissionMatch converts a configuration value ("exact" or "all") to a PermissionMatch.
// An empty value selects MatchExact.
func ParsePermissionMatch(s string) (PermissionMatch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact":
		return MatchExact, nil
	case "all":
		return MatchAll, nil
	default:
		return MatchExact, fmt.Errorf("unknown permission match %q, must be one of: exact, all", s)
	}
}

// PermissionFilter restricts results to entries with particular permission bits.
type PermissionFilter struct {
	Mask  fs.FileMode
	Match PermissionMatch
}

// ParsePermissions parses an octal ("644", "0755") or symbolic ("rwxr-xr-x",
// "drwxr-xr-x") descriptor. A leading "+" selects MatchAll regardless of def.
func ParsePermissions(desc string, def PermissionMatch) (*PermissionFilter, error) {
	match := def
	s := strings.TrimSpace(desc)
	if strings.HasPrefix(s, "+") {
		match = MatchAll
		s = s[1:]
	}
	if s == "" {
		return nil, fmt.Errorf("%w: empty descriptor", ErrInvalidPermissions)
	}

	var mask fs.FileMode
	var err error
	if s[0] >= '0' && s[0] <= '9' {
		mask, err = parseOctal(s)
	} else {
		mask, err = parseSymbolic(s)
	}
	if err != nil {
		return nil, err
	}

	return &PermissionFilter{Mask: mask, Match: match}, nil
}

func parseOctal(s string) (fs.FileMode, error) {
	if len(s) < 3 || len(s) > 4 {
		return 0, fmt.Errorf("%w %q: octal form needs 3 or 4 digits", ErrInvalidPermissions, s)
	}
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("%w %q: not an octal number", ErrInvalidPermissions, s)
	}
	if v > 0o777 {
		return 0, fmt.Errorf("%w %q: setuid, setgid and sticky bits are not supported", ErrInvalidPermissions, s)
	}
	return fs.FileMode(v), nil
}

const symbolicLetters = "rwxrwxrwx"

func parseSymbolic(s string) (fs.FileMode, error) {
	// tolerate the leading type column of an ls -l listing
	if len(s) == 10 && strings.ContainsRune("-dl", rune(s[0])) {
		s = s[1:]
	}
	if len(s) != len(symbolicLetters) {
		return 0, fmt.Errorf("%w %q: symbolic form needs 9 characters like rwxr-xr-x", ErrInvalidPermissions, s)
	}

	var mask fs.FileMode
	for i := 0; i < len(symbolicLetters); i++ {
		bit := fs.FileMode(1) << uint(len(symbolicLetters)-1-i)
		switch s[i] {
		case symbolicLetters[i]:
			mask |= bit
		case '-':
		default:
			return 0, fmt.Errorf("%w %q: unexpected %q at position %d", ErrInvalidPermissions, s, s[i], i+1)
		}
	}
	return mask, nil
}

// Matches reports whether mode satisfies the filter. Only the permission bits are compared.
func (p *PermissionFilter) Matches(mode fs.FileMode) bool {
	perm := mode.Perm()
	if p.Match == MatchAll {
		return perm&p.Mask == p.Mask
	}
	return perm == p.Mask
}

func (p *PermissionFilter) String() string {
	return fmt.Sprintf("%s (%s)", p.Mask.Perm().String()[1:], p.Match)
}
