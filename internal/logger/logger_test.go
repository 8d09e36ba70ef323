package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
	}{
		{name: "info hides debug", level: "info", wantDebug: false},
		{name: "debug shows debug", level: "debug", wantDebug: true},
		{name: "invalid level falls back to info", level: "loud", wantDebug: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			l := New(Config{Level: tt.level, Output: &buf})
			l.LogDebug("debug %d", 1)
			l.LogInfo("info %d", 2)
			l.LogErrorf("error %d", 3)

			out := buf.String()
			if got := strings.Contains(out, "debug 1"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v", got, tt.wantDebug)
			}

			if !strings.Contains(out, "info 2") || !strings.Contains(out, "error 3") {
				t.Errorf("output = %q, want info and error lines", out)
			}
		})
	}
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer

	l := New(Config{Level: "info", Output: &buf})
	l.WithField("requestID", "abc").WithField("tool", "quote").LogInfo("handled")

	out := buf.String()
	if !strings.Contains(out, "requestID=abc") || !strings.Contains(out, "tool=quote") {
		t.Errorf("output = %q, want fields", out)
	}

	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
