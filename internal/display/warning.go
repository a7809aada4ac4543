package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var warningColor = color.New(color.FgYellow)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Paths      []string // Related paths (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Paths) > 0 {
		b.WriteString("    ")
		if len(w.Paths) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, path := range w.Paths {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, path))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	warningColor.Fprint(out, b.String())
}

// WarnUnreadable creates a warning listing directories a search could not read.
func WarnUnreadable(paths []string) Warning {
	title := "1 directory could not be read"
	if len(paths) != 1 {
		title = fmt.Sprintf("%d directories could not be read", len(paths))
	}
	return Warning{
		Title:      title,
		Message:    "Results below these paths are incomplete",
		Paths:      paths,
		Suggestion: "Check that these directories exist and are readable by the current user",
	}
}
