package app

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// fixedLogger returns a debug logger writing to buf with a frozen clock.
func fixedLogger(buf *bytes.Buffer, level LogLevel) *Logger {
	l := NewLogger(LoggerConfig{Level: level, Output: buf, Prefix: "pixelstorm"})
	l.sink.now = func() time.Time {
		return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	}
	return l
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"Error", LogLevelError},
		{"", LogLevelInfo},
		{"verbose", LogLevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoggerLineFormat(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LogLevelDebug)

	l.WithComponent("editor").Info("editor started: %dx%d canvas", 60, 30)

	want := "2026-10-14T09:30:00.000 [INFO] pixelstorm: editor started: 60x30 canvas component=editor\n"
	if got := buf.String(); got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  []string
	}{
		{LogLevelDebug, []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"}},
		{LogLevelWarn, []string{"[WARN]", "[ERROR]"}},
		{LogLevelError, []string{"[ERROR]"}},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			l := fixedLogger(&buf, tt.level)
			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != len(tt.want) {
				t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(tt.want), buf.String())
			}
			for i, w := range tt.want {
				if !strings.Contains(lines[i], w) {
					t.Errorf("line %d = %q, want %s", i, lines[i], w)
				}
			}
		})
	}
}

func TestLoggerEnabled(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LogLevelInfo)

	if l.Enabled(LogLevelDebug) {
		t.Error("debug should be disabled at info level")
	}
	if !l.Enabled(LogLevelError) {
		t.Error("error should be enabled at info level")
	}
	if NullLogger.Enabled(LogLevelError) {
		t.Error("NullLogger should have nothing enabled")
	}
}

func TestLoggerFieldsSortedAndReplaced(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, LogLevelDebug).
		WithField("tool", "draw").
		WithComponent("gesture").
		WithField("session", "abc").
		WithField("tool", "fill")

	l.Debug("gesture started")

	line := strings.TrimSpace(buf.String())
	if !strings.HasSuffix(line, "gesture started component=gesture session=abc tool=fill") {
		t.Errorf("line = %q, want sorted fields with tool replaced", line)
	}
}

func TestLoggerDerivedIsIndependent(t *testing.T) {
	var buf bytes.Buffer
	parent := fixedLogger(&buf, LogLevelDebug).WithComponent("app")
	_ = parent.WithField("session", "abc")

	parent.Info("quit")
	if strings.Contains(buf.String(), "session=") {
		t.Errorf("parent picked up child field: %q", buf.String())
	}
}

func TestLoggerDerivedShareOutput(t *testing.T) {
	var buf bytes.Buffer
	root := fixedLogger(&buf, LogLevelDebug)
	editorLog := root.WithComponent("editor")
	scriptLog := root.WithComponent("script")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			editorLog.Debug("tool draw started at (%d, %d)", 1, 2)
		}()
		go func() {
			defer wg.Done()
			scriptLog.Debug("loaded script tool spray")
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Fatalf("got %d lines, want 100", len(lines))
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, "component=editor") && !strings.HasSuffix(line, "component=script") {
			t.Fatalf("interleaved line %q", line)
		}
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic with no output configured.
	NullLogger.Error("dropped")
	NullLogger.WithComponent("editor").Debug("dropped")
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Prefix != "pixelstorm" {
		t.Errorf("Prefix = %q, want pixelstorm", cfg.Prefix)
	}
}
