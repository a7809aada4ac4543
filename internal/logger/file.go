package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileLogger appends log lines to a file. Every shell session writes a
// header so separate runs are easy to tell apart. It is thread-safe and
// supports the same level filtering as ConsoleLogger.
type FileLogger struct {
	path     string
	file     *os.File
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger opens (or creates) the log file at path in append mode,
// creating its parent directory if needed.
func NewFileLogger(path string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := &FileLogger{
		path:     path,
		file:     file,
		logLevel: normalizeLogLevel(logLevel),
	}

	logger.write(fmt.Sprintf("=== dirsh session started at %s ===\n", time.Now().Format(time.RFC3339)))

	return logger, nil
}

// Path returns the log file location.
func (fl *FileLogger) Path() string {
	return fl.path
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

// LogSearchStart logs the start of a find request at DEBUG level.
func (fl *FileLogger) LogSearchStart(id string, roots []string) {
	fl.LogDebug(searchStartMessage(id, roots))
}

// LogSearchComplete logs the outcome of a find request at INFO level.
func (fl *FileLogger) LogSearchComplete(id string, matches, failures int, duration time.Duration) {
	fl.LogInfo(searchCompleteMessage(id, matches, failures, duration))
}

func (fl *FileLogger) logWithLevel(level, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.write(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

func (fl *FileLogger) write(line string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return
	}
	fl.file.WriteString(line)
}

// Close writes a footer and closes the log file. Further calls are no-ops.
func (fl *FileLogger) Close() error {
	fl.write(fmt.Sprintf("=== dirsh session ended at %s ===\n", time.Now().Format(time.RFC3339)))

	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return nil
	}
	err := fl.file.Close()
	fl.file = nil
	return err
}
