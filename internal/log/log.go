// Package log provides structured logging for platekeeper.
// Entries carry a level, a category and key=value fields. Logging is off until
// Init is called, which the CLI does for --debug or PLATEKEEPER_DEBUG.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config value such as "warn" onto a Level.
// Unknown values fall back to LevelDebug.
func ParseLevel(s string) Level {
	switch s {
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelDebug
	}
}

// Category groups related log messages.
type Category string

const (
	CatDB       Category = "db"       // Store queries and migrations
	CatConfig   Category = "config"   // Configuration loading/saving
	CatWatcher  Category = "watcher"  // File watcher events
	CatRegistry Category = "registry" // Registration, edit and transfer workflows
	CatFeed     Category = "feed"     // Entry event feed
	CatCache    Category = "cache"    // Snapshot cache
	CatUI       Category = "ui"       // CLI prompts and dashboard
	CatTrace    Category = "trace"    // Tracing provider lifecycle
)

// Logger provides structured logging.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	writer   io.Writer
	enabled  bool
	minLevel Level
}

var (
	defaultLogger *Logger
	initMu        sync.Mutex
)

// Init opens path for appending and installs it as the global log sink.
// Returns a cleanup function to close the log file.
func Init(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // G304: path is the user-selected debug log
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	install(&Logger{file: f, writer: f, enabled: true, minLevel: LevelDebug})
	return func() { _ = f.Close() }, nil
}

// InitWithTeaLog uses tea.LogToFile so the dashboard can log without writing
// to the terminal it is drawing on.
func InitWithTeaLog(path string, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, err
	}
	install(&Logger{file: f, writer: f, enabled: true, minLevel: LevelDebug})
	return func() { _ = f.Close() }, nil
}

// InitWriter installs w as the log sink. Used by tests to capture output.
func InitWriter(w io.Writer) {
	install(&Logger{writer: w, enabled: true, minLevel: LevelDebug})
}

// Reset disables logging and drops the current sink.
func Reset() {
	install(nil)
}

func install(l *Logger) {
	initMu.Lock()
	defer initMu.Unlock()
	defaultLogger = l
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func current() *Logger {
	initMu.Lock()
	defer initMu.Unlock()
	return defaultLogger
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel || l.writer == nil {
		return
	}

	_, _ = io.WriteString(l.writer, format(time.Now(), level, cat, msg, fields))
}

// format renders one line:
// 2025-12-06T10:45:00 [ERROR] [registry] message key=value key2=value2
func format(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	entry := fmt.Sprintf("%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	// Odd field count: orphan key with no value
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	return entry + "\n"
}
