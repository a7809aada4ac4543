package shell

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/dirsh/internal/search"
)

// denyFs fails every Open of one directory.
type denyFs struct {
	afero.Fs
	denied string
}

func (d *denyFs) Open(name string) (afero.File, error) {
	if filepath.Clean(name) == d.denied {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return d.Fs.Open(name)
}

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		line string
		show bool
		want []string
	}{
		{
			name: "files matching a suffix",
			line: `find -m \.txt$`,
			want: []string{"/work/a.txt", "/work/sub/b.txt"},
		},
		{
			name: "no pattern lists every file",
			line: "find",
			want: []string{"/work/a.txt", "/work/big.bin", "/work/sub/b.txt", "/work/sub/c.log"},
		},
		{
			name: "directories with -a",
			line: "find -a -m sub$",
			want: []string{"/work/sub"},
		},
		{
			name: "hidden entries skipped",
			line: "find -m config",
			want: nil,
		},
		{
			name: "hidden entries after show",
			line: "find -m config",
			show: true,
			want: []string{"/work/.git/config"},
		},
		{
			name: "minimum size",
			line: "find -s 100",
			want: []string{"/work/big.bin"},
		},
		{
			name: "depth zero",
			line: "find -l 0",
			want: []string{"/work/a.txt", "/work/big.bin"},
		},
		{
			name: "relative directory",
			line: "find -d sub",
			want: []string{"sub/b.txt", "sub/c.log"},
		},
		{
			name: "pattern anchored to a relative directory",
			line: "find -d sub -m ^sub/",
			want: []string{"sub/b.txt", "sub/c.log"},
		},
		{
			name: "several patterns",
			line: `find -m \.log$ -m ^/work/a`,
			want: []string{"/work/a.txt", "/work/sub/c.log"},
		},
		{
			name: "extension type",
			line: "find -t log",
			want: []string{"/work/sub/c.log"},
		},
		{
			name: "directory type",
			line: "find --type d",
			want: []string{"/work/sub"},
		},
		{
			name: "glob",
			line: "find -g sub/*.txt",
			want: []string{"/work/sub/b.txt"},
		},
		{
			name: "character",
			line: "find -c l",
			want: []string{"/work/sub/c.log"},
		},
		{
			name: "exact permissions",
			line: "find -p 644 -m a.txt",
			want: []string{"/work/a.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestShell(t, newTestTree(t), "/work", "")
			ts.session.ShowHidden = tt.show

			require.NoError(t, ts.Execute(tt.line))

			assert.Equal(t, tt.want, lines(ts.out.String()))
			assert.Empty(t, ts.errw.String())
		})
	}
}

func TestFindArgumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr string
	}{
		{"bad regex", "find -m (", "find: invalid pattern"},
		{"negative size", "find -s -5", "find: size -5: value must be non-negative"},
		{"negative level", "find -l -1", "value must be non-negative"},
		{"size not a number", "find -s big", "find: invalid argument"},
		{"bad permissions", "find -p 999", "find: invalid permissions"},
		{"bad char", "find -c ab", "find: invalid character filter"},
		{"bad glob", "find -g [", "find: invalid glob"},
		{"unknown flag", "find -x", "find: unknown shorthand flag"},
		{"positional argument", "find foo", `find: unexpected argument "foo"`},
		{"missing output dir", "find -o missing/out.txt", "find: cannot write"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestShell(t, newTestTree(t), "/work", "")

			require.NoError(t, ts.Execute(tt.line))

			assert.Empty(t, ts.out.String(), "no results on argument error")
			assert.Contains(t, ts.errw.String(), tt.wantErr)
			assert.NotContains(t, ts.log.String(), "searching", "no traversal on argument error")
		})
	}
}

func TestFindHelpFlag(t *testing.T) {
	for _, line := range []string{"find -help", "find --help", "find -h"} {
		t.Run(line, func(t *testing.T) {
			ts := newTestShell(t, newTestTree(t), "/work", "")

			require.NoError(t, ts.Execute(line))

			out := ts.out.String()
			assert.Contains(t, out, "--match")
			assert.Contains(t, out, "--level")
			assert.NotContains(t, out, "/work/a.txt")
			assert.NotContains(t, ts.log.String(), "searching")
		})
	}
}

func TestFindHelpAsPatternValue(t *testing.T) {
	fsys := newTestTree(t)
	require.NoError(t, afero.WriteFile(fsys, "/work/run-help.md", []byte("x"), 0644))
	ts := newTestShell(t, fsys, "/work", "")

	require.NoError(t, ts.Execute("find -m -help"))

	assert.Equal(t, []string{"/work/run-help.md"}, lines(ts.out.String()))
	assert.Empty(t, ts.errw.String())
}

func TestFindFlagsDoNotLeakBetweenLines(t *testing.T) {
	ts := newTestShell(t, newTestTree(t), "/work", "")

	require.NoError(t, ts.Execute("find -s 100"))
	ts.out.Reset()
	require.NoError(t, ts.Execute("find -m c.log"))

	assert.Equal(t, []string{"/work/sub/c.log"}, lines(ts.out.String()))
}

func TestFindAfterCd(t *testing.T) {
	ts := newTestShell(t, newTestTree(t), "/work", "")

	require.NoError(t, ts.Execute("cd sub"))
	require.NoError(t, ts.Execute("find"))

	assert.Equal(t, []string{"/work/sub/b.txt", "/work/sub/c.log"}, lines(ts.out.String()))
}

func TestFindReportsUnreadableSubtrees(t *testing.T) {
	fsys := &denyFs{Fs: newTestTree(t), denied: "/work/sub"}
	ts := newTestShell(t, fsys, "/work", "")

	require.NoError(t, ts.Execute("find -d /work -d /missing"))

	assert.Equal(t, []string{"/work/a.txt", "/work/big.bin"}, lines(ts.out.String()))
	warning := ts.errw.String()
	assert.Contains(t, warning, "2 directories could not be read")
	assert.Contains(t, warning, "1. /work/sub: permission denied")
	assert.Contains(t, warning, "2. /missing:")
	assert.Contains(t, warning, "Suggestion:")
	assert.Contains(t, ts.log.String(), "[WARN]")
}

func TestFindLogsSearch(t *testing.T) {
	ts := newTestShell(t, newTestTree(t), "/work", "")

	require.NoError(t, ts.Execute(`find -m \.txt$`))

	log := ts.log.String()
	assert.Contains(t, log, "searching 1 root(s): /work")
	assert.Contains(t, log, "matches: 2, failed: 0")
}

func TestFindUsesConfiguredPermissionMatch(t *testing.T) {
	fsys := newTestTree(t)
	require.NoError(t, fsys.Chmod("/work/a.txt", 0755))

	ts := newTestShell(t, fsys, "/work", "")
	ts.permissionMatch = search.MatchAll

	require.NoError(t, ts.Execute("find -p 700"))
	assert.Equal(t, []string{"/work/a.txt"}, lines(ts.out.String()))

	ts.permissionMatch = search.MatchExact
	ts.out.Reset()
	require.NoError(t, ts.Execute("find -p 700"))
	assert.Empty(t, ts.out.String())

	ts.out.Reset()
	require.NoError(t, ts.Execute("find -p +700"))
	assert.Equal(t, []string{"/work/a.txt"}, lines(ts.out.String()))
}

func TestFindOutputFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.txt"), []byte("1"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "two.txt"), []byte("2"), 0644))

	ts := newTestShell(t, afero.NewOsFs(), dir, "")

	require.NoError(t, ts.Execute(`find -m \.txt$ -o results`))

	assert.Empty(t, ts.errw.String())
	assert.Contains(t, ts.out.String(), "Wrote 2 matches to "+filepath.Join(dir, "results"))

	data, err := os.ReadFile(filepath.Join(dir, "results"))
	require.NoError(t, err)
	want := filepath.Join(dir, "nested", "two.txt") + "\n" + filepath.Join(dir, "one.txt") + "\n"
	assert.Equal(t, want, string(data))

	// A second run overwrites rather than appends.
	ts.out.Reset()
	require.NoError(t, ts.Execute(`find -m one -o results`))
	data, err = os.ReadFile(filepath.Join(dir, "results"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "one.txt")+"\n", string(data))
	assert.Contains(t, ts.out.String(), "Wrote 1 match to")

	_, err = os.Stat(filepath.Join(dir, ".results.lock"))
	assert.True(t, os.IsNotExist(err), "lock file should be removed")
}

func TestDescribeFailure(t *testing.T) {
	err := &search.SubtreeError{
		Path: "/x",
		Err:  &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission},
	}
	assert.Equal(t, "/x: permission denied", describeFailure(err))

	plain := &search.SubtreeError{Path: "/y", Err: search.ErrNotDirectory}
	assert.Equal(t, "/y: not a directory", describeFailure(plain))

	assert.Equal(t, "boom", describeFailure(errors.New("boom")))
}
