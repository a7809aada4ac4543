package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		logLevel     string
		messageLevel string
		message      string
		shouldAppear bool
	}{
		// trace level - should see everything
		{name: "trace sees trace", logLevel: "trace", messageLevel: "trace", message: "trace msg", shouldAppear: true},
		{name: "trace sees debug", logLevel: "trace", messageLevel: "debug", message: "debug msg", shouldAppear: true},
		{name: "trace sees info", logLevel: "trace", messageLevel: "info", message: "info msg", shouldAppear: true},
		{name: "trace sees warn", logLevel: "trace", messageLevel: "warn", message: "warn msg", shouldAppear: true},
		{name: "trace sees error", logLevel: "trace", messageLevel: "error", message: "error msg", shouldAppear: true},

		// debug level - should not see trace
		{name: "debug blocks trace", logLevel: "debug", messageLevel: "trace", message: "trace msg", shouldAppear: false},
		{name: "debug sees debug", logLevel: "debug", messageLevel: "debug", message: "debug msg", shouldAppear: true},
		{name: "debug sees info", logLevel: "debug", messageLevel: "info", message: "info msg", shouldAppear: true},
		{name: "debug sees warn", logLevel: "debug", messageLevel: "warn", message: "warn msg", shouldAppear: true},
		{name: "debug sees error", logLevel: "debug", messageLevel: "error", message: "error msg", shouldAppear: true},

		// info level - should not see trace/debug
		{name: "info blocks trace", logLevel: "info", messageLevel: "trace", message: "trace msg", shouldAppear: false},
		{name: "info blocks debug", logLevel: "info", messageLevel: "debug", message: "debug msg", shouldAppear: false},
		{name: "info sees info", logLevel: "info", messageLevel: "info", message: "info msg", shouldAppear: true},
		{name: "info sees warn", logLevel: "info", messageLevel: "warn", message: "warn msg", shouldAppear: true},
		{name: "info sees error", logLevel: "info", messageLevel: "error", message: "error msg", shouldAppear: true},

		// warn level - should only see warn/error
		{name: "warn blocks trace", logLevel: "warn", messageLevel: "trace", message: "trace msg", shouldAppear: false},
		{name: "warn blocks debug", logLevel: "warn", messageLevel: "debug", message: "debug msg", shouldAppear: false},
		{name: "warn blocks info", logLevel: "warn", messageLevel: "info", message: "info msg", shouldAppear: false},
		{name: "warn sees warn", logLevel: "warn", messageLevel: "warn", message: "warn msg", shouldAppear: true},
		{name: "warn sees error", logLevel: "warn", messageLevel: "error", message: "error msg", shouldAppear: true},

		// error level - should only see error
		{name: "error blocks trace", logLevel: "error", messageLevel: "trace", message: "trace msg", shouldAppear: false},
		{name: "error blocks debug", logLevel: "error", messageLevel: "debug", message: "debug msg", shouldAppear: false},
		{name: "error blocks info", logLevel: "error", messageLevel: "info", message: "info msg", shouldAppear: false},
		{name: "error blocks warn", logLevel: "error", messageLevel: "warn", message: "warn msg", shouldAppear: false},
		{name: "error sees error", logLevel: "error", messageLevel: "error", message: "error msg", shouldAppear: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.logLevel)

			// Log message at specified level
			switch tt.messageLevel {
			case "trace":
				logger.LogTrace(tt.message)
			case "debug":
				logger.LogDebug(tt.message)
			case "info":
				logger.LogInfo(tt.message)
			case "warn":
				logger.LogWarn(tt.message)
			case "error":
				logger.LogError(tt.message)
			}

			output := buf.String()
			contains := strings.Contains(output, tt.message)

			if tt.shouldAppear && !contains {
				t.Errorf("Expected message %q to appear in output, but it didn't. Output: %q", tt.message, output)
			}
			if !tt.shouldAppear && contains {
				t.Errorf("Expected message %q NOT to appear in output, but it did. Output: %q", tt.message, output)
			}
		})
	}
}

// TestConsoleLoggerWithLogLevel verifies ConsoleLogger respects log level
func TestConsoleLoggerWithLogLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "warn")

	// These should be filtered out
	logger.LogTrace("trace message")
	logger.LogDebug("debug message")
	logger.LogInfo("info message")

	// These should appear
	logger.LogWarn("warn message")
	logger.LogError("error message")

	output := buf.String()

	// Verify filtered messages don't appear
	if strings.Contains(output, "trace message") {
		t.Error("trace message should be filtered at warn level")
	}
	if strings.Contains(output, "debug message") {
		t.Error("debug message should be filtered at warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered at warn level")
	}

	// Verify unfiltered messages appear
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should appear at warn level")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message should appear at warn level")
	}
}

// TestSearchMethodsRespectLogLevel verifies search start is DEBUG and search complete is INFO
func TestSearchMethodsRespectLogLevel(t *testing.T) {
	tests := []struct {
		name         string
		logLevel     string
		wantStart    bool
		wantComplete bool
	}{
		{name: "debug shows both", logLevel: "debug", wantStart: true, wantComplete: true},
		{name: "info hides start", logLevel: "info", wantStart: false, wantComplete: true},
		{name: "warn hides both", logLevel: "warn", wantStart: false, wantComplete: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.logLevel)

			logger.LogSearchStart("abc123", []string{"/srv"})
			logger.LogSearchComplete("abc123", 4, 0, 20*time.Millisecond)

			output := buf.String()
			if got := strings.Contains(output, "searching 1 root(s): /srv"); got != tt.wantStart {
				t.Errorf("search start present = %v, want %v. Output: %q", got, tt.wantStart, output)
			}
			if got := strings.Contains(output, "matches: 4, failed: 0"); got != tt.wantComplete {
				t.Errorf("search complete present = %v, want %v. Output: %q", got, tt.wantComplete, output)
			}
		})
	}
}

// TestNormalizeLogLevel verifies case folding and the info default
func TestNormalizeLogLevel(t *testing.T) {
	tests := map[string]string{
		"":        "info",
		"DEBUG":   "debug",
		" warn ":  "warn",
		"verbose": "info",
		"Error":   "error",
	}

	for in, want := range tests {
		if got := normalizeLogLevel(in); got != want {
			t.Errorf("normalizeLogLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
