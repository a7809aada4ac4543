// Package fileutil provides the non-recursive filesystem operations of the
// dirsh shell: listing a single directory and resolving a cd target.
//
// Both operations go through an afero.Fs so they can run against the real
// filesystem or an in-memory tree.
//
// # Main Components
//
// ListOptions - configuration for ListDirectory:
//   - ShowHidden: include entries whose name starts with "."
//
// Listing - the entries of one directory, sorted by name.
//
// ResolveDirectory - maps a cd argument ("..", an absolute path, or the name
// of a direct child) to the new working directory, or returns one of the
// sentinel errors ErrNotFound, ErrNotDirectory, ErrNotChild.
//
// # Usage Examples
//
// Listing the working directory:
//
//	listing, err := fileutil.ListDirectory(fsys, cwd, fileutil.ListOptions{})
//	if err != nil {
//	    return err
//	}
//	for _, entry := range listing.Entries {
//	    fmt.Println(entry.Name())
//	}
//
// Changing directory:
//
//	next, err := fileutil.ResolveDirectory(fsys, cwd, "src", showHidden)
//	if errors.Is(err, fileutil.ErrNotDirectory) {
//	    fmt.Println("cannot cd into a file")
//	}
package fileutil
