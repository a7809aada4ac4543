package search

import (
	"fmt"
	"iter"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// Logger is the subset of the application logger the engine writes to.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

type noopLogger struct{}

func (noopLogger) LogDebug(string) {}
func (noopLogger) LogWarn(string) {}

// Engine walks directory trees. It holds no per-search state and may be
// reused for any number of requests.
type Engine struct {
	fs     afero.Fs
	logger Logger
}

// NewEngine creates an Engine reading through fsys. A nil fsys selects the
// operating system filesystem; a nil logger discards log output.
func NewEngine(fsys afero.Fs, logger Logger) *Engine {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &Engine{fs: fsys, logger: logger}
}

// Search returns the lazy sequence of paths matching req. Every range over
// the sequence walks the filesystem again. Unreadable directories are yielded
// as ("", *SubtreeError) and the walk moves on to the next sibling.
func (e *Engine) Search(req *Request) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		w := &walker{
			fs:      e.fs,
			logger:  e.logger,
			req:     req,
			filters: e.filters(req),
			seen:    make(map[string]struct{}),
			failed:  make(map[string]struct{}),
			yield:   yield,
		}
		for _, root := range req.Roots {
			if !w.walkRoot(root) {
				return
			}
		}
	}
}

// filters builds the active chain for req, cheapest checks first.
func (e *Engine) filters(req *Request) []Filter {
	chain := []Filter{kindFilter(req.IncludeDirectories, req.Type)}
	if req.MinSize >= 0 {
		chain = append(chain, sizeFilter(req.MinSize))
	}
	if req.Permissions != nil {
		chain = append(chain, permissionFilter(req.Permissions))
	}
	if req.Type != nil && req.Type.Extension != "" {
		chain = append(chain, extensionFilter(req.Type.Extension))
	}
	if req.Char != 0 {
		chain = append(chain, charFilter(req.Char))
	}
	if req.Glob != "" {
		chain = append(chain, globFilter(req.Glob))
	}
	chain = append(chain, patternFilter(req.Pattern))
	if req.Type != nil && req.Type.MIME != "" {
		chain = append(chain, mimeFilter(req.Type.MIME, e.detectMIME))
	}
	return chain
}

// detectMIME sniffs the content type of path, without parameters.
func (e *Engine) detectMIME(path string) (string, bool) {
	f, err := e.fs.Open(path)
	if err != nil {
		e.logger.LogDebug(fmt.Sprintf("mime detection skipped for %s: %v", path, err))
		return "", false
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		e.logger.LogDebug(fmt.Sprintf("mime detection failed for %s: %v", path, err))
		return "", false
	}
	base, _, _ := strings.Cut(mtype.String(), ";")
	return strings.TrimSpace(base), true
}

type walker struct {
	fs      afero.Fs
	logger  Logger
	req     *Request
	filters []Filter
	seen    map[string]struct{}
	failed  map[string]struct{}
	yield   func(string, error) bool
}

// walkRoot checks that root is a directory before walking it. The return
// value is false once the consumer has stopped ranging.
func (w *walker) walkRoot(root Root) bool {
	info, err := w.fs.Stat(root.Path)
	if err != nil {
		return w.fail(root.Path, root.Display, err)
	}
	if !info.IsDir() {
		return w.fail(root.Path, root.Display, ErrNotDirectory)
	}

	w.logger.LogDebug(fmt.Sprintf("walking %s", root.Path))
	return w.walk(root, root.Path, root.Display, 0)
}

// walk reads dir, whose reported form is shown.
func (w *walker) walk(root Root, dir, shown string, depth int) bool {
	infos, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		return w.fail(dir, shown, err)
	}

	for _, info := range infos {
		if !w.req.ShowHidden && IsHidden(info.Name()) {
			continue
		}

		entry := newEntry(root, dir, shown, info, depth)
		if passes(entry, w.filters) && !w.emit(entry) {
			return false
		}

		if entry.Kind == KindDirectory && w.req.descend(depth) {
			if !w.walk(root, entry.FullPath, entry.Path, depth+1) {
				return false
			}
		}
	}
	return true
}

// emit yields the entry unless an overlapping root already produced it.
func (w *walker) emit(entry Entry) bool {
	if _, dup := w.seen[entry.FullPath]; dup {
		return true
	}
	w.seen[entry.FullPath] = struct{}{}
	return w.yield(entry.Path, nil)
}

// fail reports an unreadable directory once, however many roots reach it.
func (w *walker) fail(full, shown string, err error) bool {
	if _, dup := w.failed[full]; dup {
		return true
	}
	w.failed[full] = struct{}{}

	serr := &SubtreeError{Path: shown, Err: err}
	w.logger.LogWarn(serr.Error())
	return w.yield("", serr)
}

// Result is a fully collected search.
type Result struct {
	Matches []string
	Errors  []error
}

// Collect drains seq into a Result.
func Collect(seq iter.Seq2[string, error]) *Result {
	result := &Result{
		Matches: make([]string, 0),
		Errors:  make([]error, 0),
	}
	for path, err := range seq {
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Matches = append(result.Matches, path)
	}
	return result
}
