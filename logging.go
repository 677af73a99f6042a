package ioloop

import (
	"fmt"
	"os"
	"sync"

	"github.com/joeycumines/logiface"
)

// LogLevel is the severity of one LogEntry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// LogEntry is one structured diagnostic emitted by an Engine. Category
// names the subsystem that emitted it ("backend", "alarm", "operation",
// "registry").
type LogEntry struct {
	Level    LogLevel
	Category string
	Message  string
	Err      error
}

// Logger is the sink Engine diagnostics are delivered to. Implementations
// must be safe to call from the single goroutine that drives an Engine —
// which is to say, they need not be safe for concurrent use at all, since
// nothing else calls them.
type Logger interface {
	Log(entry LogEntry)
	IsEnabled(level LogLevel) bool
}

// noopLogger discards everything; it is the Engine default so diagnostics
// cost nothing until a caller opts in.
type noopLogger struct{}

func (noopLogger) Log(LogEntry) {}

func (noopLogger) IsEnabled(LogLevel) bool { return false }

// NewNoOpLogger returns a Logger that discards every entry.
func NewNoOpLogger() Logger { return noopLogger{} }

// stdLogger is a minimal Logger writing to os.Stderr, returned by
// NewStderrLogger.
type stdLogger struct {
	min LogLevel
	mu  sync.Mutex
}

func (l *stdLogger) IsEnabled(level LogLevel) bool { return level >= l.min }

func (l *stdLogger) Log(entry LogEntry) {
	if !l.IsEnabled(entry.Level) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if entry.Err != nil {
		fmt.Fprintf(os.Stderr, "ioloop: %s [%s] %s: %v\n", entry.Level, entry.Category, entry.Message, entry.Err)
	} else {
		fmt.Fprintf(os.Stderr, "ioloop: %s [%s] %s\n", entry.Level, entry.Category, entry.Message)
	}
}

// NewStderrLogger returns a Logger that writes entries at or above min to
// os.Stderr.
func NewStderrLogger(min LogLevel) Logger {
	return &stdLogger{min: min}
}

// logifaceLogger adapts a github.com/joeycumines/logiface logger into the
// Logger interface, for deployments that already centralize diagnostics
// through logiface (as several sibling modules in this codebase's wider
// ecosystem do).
type logifaceLogger struct {
	l *logiface.Logger[logiface.Event]
}

// NewLogifaceLogger adapts l into a Logger.
func NewLogifaceLogger(l *logiface.Logger[logiface.Event]) Logger {
	return &logifaceLogger{l: l}
}

func (a *logifaceLogger) IsEnabled(level LogLevel) bool {
	return toLogifaceLevel(level) <= a.l.Level()
}

func (a *logifaceLogger) Log(entry LogEntry) {
	b := a.l.Build(toLogifaceLevel(entry.Level))
	if b == nil {
		return
	}
	b = b.Str("category", entry.Category)
	if entry.Err != nil {
		b = b.Err(entry.Err)
	}
	b.Log(entry.Message)
}

func toLogifaceLevel(level LogLevel) logiface.Level {
	switch level {
	case LevelDebug:
		return logiface.LevelDebug
	case LevelInfo:
		return logiface.LevelInformational
	case LevelWarn:
		return logiface.LevelWarning
	case LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}
