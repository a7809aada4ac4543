// Package display provides terminal output helpers for the shell: warnings,
// error lines, success summaries, the prompt and coloured directory names.
//
// # Warning Messages
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "Some directories could not be read",
//	    Message:    "Results below these paths are incomplete",
//	    Paths:      []string{"/srv/data/private"},
//	    Suggestion: "Check permissions or run with a different user",
//	}
//	warning.Display(os.Stdout)
//
// Or use the factory for traversal failures:
//
//	display.WarnUnreadable(failedPaths).Display(os.Stdout)
//
// # Status Lines
//
//	display.Error(out, "cd", err)            // "cd: <message>" in red
//	display.Success(out, "Wrote %d matches", n) // "✓ Wrote 3 matches" in green
//
// # Colours
//
// Colours come from github.com/fatih/color and honour color.NoColor, so
// disabling colour once at startup (--no-color, color: never, or a
// non-terminal stdout) turns every helper into plain text.
//
// All functions accept io.Writer interfaces for testability.
package display
