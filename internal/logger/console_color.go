package logger

import (
	"fmt"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for search metrics.
// Green: matches, Red: failed subtrees, Cyan: labels.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	label   *color.Color
	value   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedSearchMetrics formats "matches: N, failed: N" with color coding.
// The failure count is only red when nonzero.
func formatColorizedSearchMetrics(matches, failures int) string {
	scheme := newColorScheme()

	matchValue := scheme.value.Sprintf("%d", matches)
	if matches > 0 {
		matchValue = scheme.success.Sprintf("%d", matches)
	}

	failLabel := scheme.label.Sprint("failed")
	failValue := scheme.value.Sprintf("%d", failures)
	if failures > 0 {
		failLabel = scheme.fail.Sprint("failed")
		failValue = scheme.fail.Sprintf("%d", failures)
	}

	return fmt.Sprintf("%s: %s, %s: %s", scheme.label.Sprint("matches"), matchValue, failLabel, failValue)
}
