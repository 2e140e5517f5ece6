package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// slogLevelFatal sits above slog.LevelError so fatal entries survive an
// "error" threshold.
const slogLevelFatal = slog.Level(12)

// LevelNames lists the names accepted by ParseLevel, in severity order.
var LevelNames = []string{"debug", "info", "warning", "error", "fatal"}

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelFatal:
		return slogLevelFatal
	default:
		return slog.LevelInfo // Default to INFO for unknown
	}
}

// ParseLevel converts a command-line level name into a LogLevel.
// "warn" is accepted as an alias of "warning".
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level %q (expected one of: %s)", name, strings.Join(LevelNames, ", "))
	}
}

// Logger is the process logger. It is created once at startup and passed
// to whatever needs it; there is no package-level default.
type Logger struct {
	level LogLevel
	slog  *slog.Logger
}

// New returns a Logger writing text records at or above level to output.
func New(level LogLevel, output io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level: level.SlogLevel(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == slogLevelFatal {
					a.Value = slog.StringValue("FATAL")
				}
			}
			return a
		},
	}
	return &Logger{
		level: level,
		slog:  slog.New(slog.NewTextHandler(output, opts)),
	}
}

// Discard returns a Logger that drops everything. Useful in tests.
func Discard() *Logger {
	return New(LevelFatal, io.Discard)
}

// Level reports the threshold the logger was created with.
func (l *Logger) Level() LogLevel {
	return l.level
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	return l.slog.Enabled(context.Background(), level.SlogLevel())
}

func (l *Logger) log(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	if l == nil || !l.Enabled(level) {
		return
	}

	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	l.slog.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug message.
func (l *Logger) Debug(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func (l *Logger) Info(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func (l *Logger) Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	l.log(LevelError, subsystem, err, messageFmt, args...)
}

// Fatal logs a message at fatal severity. It does not exit; callers return
// the error and let the entry point pick the exit code.
func (l *Logger) Fatal(subsystem string, err error, messageFmt string, args ...interface{}) {
	l.log(LevelFatal, subsystem, err, messageFmt, args...)
}
