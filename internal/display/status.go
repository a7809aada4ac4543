package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
	promptColor  = color.New(color.FgCyan)
	dirColor     = color.New(color.FgBlue, color.Bold)
)

// Error writes "<command>: <err>" in red.
func Error(out io.Writer, command string, err error) {
	errorColor.Fprintf(out, "%s: %v\n", command, err)
}

// Success writes a green check mark followed by the formatted message.
func Success(out io.Writer, format string, args ...interface{}) {
	successColor.Fprint(out, "✓")
	fmt.Fprintf(out, " "+format+"\n", args...)
}

// Prompt renders the interactive prompt: the working directory followed by suffix.
func Prompt(cwd, suffix string) string {
	return promptColor.Sprint(cwd) + suffix
}

// Directory renders a directory name for listings.
func Directory(name string) string {
	return dirColor.Sprint(name)
}

// Plural returns the plural form of word unless n is 1.
func Plural(n int, word string) string {
	if n == 1 {
		return word
	}
	for _, suffix := range []string{"ch", "sh", "s", "x"} {
		if strings.HasSuffix(word, suffix) {
			return word + "es"
		}
	}
	return word + "s"
}
