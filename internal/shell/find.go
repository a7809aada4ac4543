package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harrison/dirsh/internal/display"
	"github.com/harrison/dirsh/internal/filelock"
	"github.com/harrison/dirsh/internal/search"
)

// findFlags holds the raw flag values of one find invocation.
type findFlags struct {
	dirs     []string
	patterns []string
	output   string
	size     int64
	all      bool
	level    int
	kind     string
	perms    string
	glob     string
	char     string
}

func newFindCommand(s *Shell) *cobra.Command {
	f := &findFlags{}

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Search for entries whose path matches a pattern",
		Long: `Search directory trees for entries whose full path matches a regular expression.

Files are always candidates; directories only with -a or -t d. Every -m pattern
is tried and an entry matches if any of them does. Results are printed one path
per line in directory order, or written to the file given with -o.

Types (-t):
  f, file          regular files
  d, dir           directories
  l, other         symlinks and other special entries
  text/, image/png MIME type or MIME prefix detected from content
  go, .tar.gz      file extension (case-insensitive)

Permissions (-p) are octal (755) or symbolic (rwxr-xr-x). A leading "+"
matches entries that have at least those bits set.`,
		Example: `  find -m \.txt$
  find -d /var/log -s 1048576 -l 2
  find -a -m src -t d
  find -g "**/*_test.go" -o tests.txt`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.find(f.options(cmd.Flags(), s), f.output)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&f.dirs, "dir", "d", nil, "directory to search, repeatable (default: current directory)")
	flags.StringArrayVarP(&f.patterns, "match", "m", nil, "regular expression matched against the full path, repeatable")
	flags.StringVarP(&f.output, "output", "o", "", "write results to this file instead of the terminal")
	flags.Int64VarP(&f.size, "size", "s", 0, "minimum file size in bytes")
	flags.BoolVarP(&f.all, "all", "a", false, "include directories in the results")
	flags.IntVarP(&f.level, "level", "l", 0, "maximum depth below each directory (0 = direct children only)")
	flags.StringVarP(&f.kind, "type", "t", "", "kind, extension or MIME type")
	flags.StringVarP(&f.perms, "perms", "p", "", "permission bits, octal or symbolic")
	flags.StringVarP(&f.glob, "glob", "g", "", "glob matched against the path relative to its search directory")
	flags.StringVarP(&f.char, "char", "c", "", "character the entry name must contain")

	return cmd
}

// options converts the parsed flags into search options. Size and level are
// only set when given on the command line, so 0 stays meaningful.
func (f *findFlags) options(flags *pflag.FlagSet, s *Shell) search.Options {
	opts := search.Options{
		Roots:              f.dirs,
		Patterns:           f.patterns,
		IncludeDirectories: f.all,
		Permissions:        f.perms,
		PermissionMatch:    s.permissionMatch,
		Type:               f.kind,
		Glob:               f.glob,
		Char:               f.char,
		ShowHidden:         s.session.ShowHidden,
	}
	if flags.Changed("size") {
		size := f.size
		opts.MinSize = &size
	}
	if flags.Changed("level") {
		level := f.level
		opts.MaxDepth = &level
	}
	return opts
}

func (s *Shell) find(opts search.Options, output string) error {
	req, err := search.NewRequest(opts, s.session.Cwd)
	if err != nil {
		return err
	}

	var w *filelock.Writer
	if output != "" {
		if !filepath.IsAbs(output) {
			output = filepath.Join(s.session.Cwd, output)
		}
		if w, err = filelock.NewWriter(output); err != nil {
			return err
		}
	}

	id := uuid.NewString()
	start := time.Now()
	s.logger.LogSearchStart(id, req.RootNames())

	var failed []string
	matches := 0
	for path, err := range s.engine.Search(req) {
		if err != nil {
			failed = append(failed, describeFailure(err))
			continue
		}
		matches++
		if w != nil {
			if err := w.WriteLine(path); err != nil {
				w.Discard()
				return err
			}
			continue
		}
		fmt.Fprintln(s.out, path)
	}

	s.logger.LogSearchComplete(id, matches, len(failed), time.Since(start))

	if w != nil {
		if err := w.Commit(); err != nil {
			return err
		}
		written := w.Lines()
		display.Success(s.out, "Wrote %d %s to %s", written, display.Plural(written, "match"), w.Path())
	}

	if len(failed) > 0 {
		display.WarnUnreadable(failed).Display(s.errw)
	}
	return nil
}

// describeFailure renders a subtree error as "<path>: <cause>" without
// repeating the path the underlying *fs.PathError already carries.
func describeFailure(err error) string {
	var serr *search.SubtreeError
	if !errors.As(err, &serr) {
		return err.Error()
	}

	cause := serr.Err
	var perr *fs.PathError
	if errors.As(cause, &perr) {
		cause = perr.Err
	}
	return fmt.Sprintf("%s: %v", serr.Path, cause)
}
