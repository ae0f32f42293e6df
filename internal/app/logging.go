package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LogLevelDebug traces gestures and tool calls.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for startup and shutdown.
	LogLevelInfo
	// LogLevelWarn is for problems that do not stop an interaction.
	LogLevelWarn
	// LogLevelError is for failed interactions.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a logging.level value. Unknown values yield info;
// config validation rejects them before they get here.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// field is one key=value pair attached to a logger.
type field struct {
	key   string
	value any
}

// sink is the output shared by a logger and everything derived from it.
type sink struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

// Logger writes leveled lines with key=value fields.
//
// Loggers derived with WithField share their parent's output and lock, so
// lines from the editor, the script tools and the event loop never
// interleave in the log file.
type Logger struct {
	sink   *sink
	level  LogLevel
	prefix string
	fields []field // sorted by key
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "pixelstorm",
	}
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{
		sink:   &sink{out: cfg.Output, now: time.Now},
		level:  cfg.Level,
		prefix: cfg.Prefix,
	}
}

// NullLogger discards everything.
var NullLogger = &Logger{}

// WithField returns a logger that appends key=value to every line.
// Setting an existing key replaces its value.
func (l *Logger) WithField(key string, value any) *Logger {
	fields := make([]field, 0, len(l.fields)+1)
	for _, f := range l.fields {
		if f.key != key {
			fields = append(fields, f)
		}
	}
	fields = append(fields, field{key: key, value: value})
	sort.Slice(fields, func(i, j int) bool { return fields[i].key < fields[j].key })

	return &Logger{
		sink:   l.sink,
		level:  l.level,
		prefix: l.prefix,
		fields: fields,
	}
}

// WithComponent returns a logger tagged with the component that logs.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level LogLevel) bool {
	return l.sink != nil && level >= l.level
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LogLevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LogLevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LogLevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LogLevelError, msg, args...)
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	var b strings.Builder
	b.WriteString(l.sink.now().Format("2006-01-02T15:04:05.000"))
	fmt.Fprintf(&b, " [%s] ", level)
	if l.prefix != "" {
		b.WriteString(l.prefix)
		b.WriteString(": ")
	}
	b.WriteString(msg)
	for _, f := range l.fields {
		fmt.Fprintf(&b, " %s=%v", f.key, f.value)
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.sink.out, b.String())
}
