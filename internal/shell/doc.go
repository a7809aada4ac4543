// Package shell implements the interactive dirsh command loop.
//
// Each input line is split on whitespace and executed against a fresh cobra
// command tree, so flag values never leak from one line to the next. The
// only state that survives between lines is the Session: the working
// directory and whether hidden entries are visible.
package shell
