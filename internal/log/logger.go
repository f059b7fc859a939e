package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LevelError LogLevel = "error"
	LevelWarn  LogLevel = "warn"
	LevelInfo  LogLevel = "info"
	LevelDebug LogLevel = "debug"
	LevelTrace LogLevel = "trace"
)

// slogLevelTrace sits below slog.LevelDebug so the handler can tell them apart
const slogLevelTrace = slog.LevelDebug - 4

var (
	mu sync.RWMutex

	// Current logger instance
	logger *slog.Logger

	// Current log level
	currentLevel slog.Level

	// Destination of log output
	output io.Writer = os.Stderr
)

func init() {
	SetLevel(LevelInfo)
}

// SetLevel configures the logging level
func SetLevel(level LogLevel) error {
	var l slog.Level
	switch level {
	case LevelError:
		l = slog.LevelError
	case LevelWarn:
		l = slog.LevelWarn
	case LevelInfo:
		l = slog.LevelInfo
	case LevelDebug:
		l = slog.LevelDebug
	case LevelTrace:
		l = slogLevelTrace
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	mu.Lock()
	defer mu.Unlock()
	currentLevel = l
	setupLogger()
	return nil
}

// SetOutput redirects log output, mainly for tests
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	setupLogger()
}

// ParseLevel converts a string to LogLevel
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	switch level {
	case LevelError, LevelWarn, LevelInfo, LevelDebug, LevelTrace:
		return level, nil
	default:
		return "", fmt.Errorf("invalid log level: %s", s)
	}
}

func setupLogger() {
	logger = slog.New(NewHandler(output, currentLevel))
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Slog returns the underlying slog logger
func Slog() *slog.Logger {
	return current()
}

// Error logs an error message
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Trace logs a message below debug level, used for request/response bodies
func Trace(msg string, args ...any) {
	current().Log(context.Background(), slogLevelTrace, msg, args...)
}

// IsDebugEnabled returns true if debug logging is enabled
func IsDebugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel <= slog.LevelDebug
}

// GetCurrentLevel returns the current log level
func GetCurrentLevel() slog.Level {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}
