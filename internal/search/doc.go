// Package search implements the recursive find engine behind the dirsh shell.
//
// A search walks one or more root directories depth-first in pre-order and
// yields every entry whose full path matches a compiled regular expression
// and passes the active filters.
//
// # Main Components
//
// Options - raw, user-supplied search parameters (usually built from flags).
//
// Request - a validated, compiled search. NewRequest compiles the patterns,
// parses permission and type descriptors and resolves roots against the
// current directory, so malformed input is rejected before any I/O happens.
//
// Engine - walks the filesystem through an afero.Fs and yields matches as an
// iter.Seq2[string, error]. A directory that cannot be read is reported as a
// *SubtreeError in the sequence and the walk continues with its siblings.
//
// # Usage
//
//	req, err := search.NewRequest(search.Options{
//	    Roots:    []string{"src"},
//	    Patterns: []string{`\.go$`},
//	}, cwd)
//	if err != nil {
//	    return err
//	}
//	engine := search.NewEngine(afero.NewOsFs(), logger)
//	for path, err := range engine.Search(req) {
//	    if err != nil {
//	        // subtree failure, keep going
//	        continue
//	    }
//	    fmt.Println(path)
//	}
//
// # Ordering
//
// Children of a directory are visited in lexical order and a directory is
// reported before anything beneath it, so repeated searches over an
// unchanged tree produce identical sequences.
package search
