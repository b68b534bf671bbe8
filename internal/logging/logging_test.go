package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf})

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("debug message should be filtered at warn level")
	}
	if strings.Contains(out, "info message") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "warn message") {
		t.Error("warn message missing from output")
	}
	if !strings.Contains(out, "error message") {
		t.Error("error message missing from output")
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf})

	l.WithField("editor", 3).Info("opened")

	out := buf.String()
	if !strings.Contains(out, "editor=3") {
		t.Errorf("output missing field: %q", out)
	}
}

func TestLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf, Prefix: "enumedit"})

	l.Info("hello")

	if !strings.Contains(buf.String(), "enumedit: hello") {
		t.Errorf("output missing prefix: %q", buf.String())
	}
}

func TestLoggerFormatting(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelInfo, Output: &buf})

	l.Info("count=%d", 42)

	if !strings.Contains(buf.String(), "count=42") {
		t.Errorf("output missing formatted args: %q", buf.String())
	}
}

func TestLoggerReconfigure(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelError})
	l.SetOutput(&buf)
	l.SetLevel(LevelInfo)

	l.WithComponent("plugin").Info("ready")

	out := buf.String()
	if !strings.Contains(out, "ready") {
		t.Errorf("output missing message after SetOutput/SetLevel: %q", out)
	}
	if !strings.Contains(out, "component=plugin") {
		t.Errorf("output missing component field: %q", out)
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic and must not write anywhere.
	NullLogger.Info("discarded")
	NullLogger.Error("discarded")
}
