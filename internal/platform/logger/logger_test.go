package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		"":        Info,
		"WARNING": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLogger_JSONIncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{
		Level:  Info,
		Format: FormatJSON,
		App:    "pet-care-dashboard",
		Output: zapcore.AddSync(&buf),
	})

	l.With(map[string]any{"component": "gateway"}).Info("request done", map[string]any{
		"status": 200,
		"err":    errors.New("boom"),
	})
	l.Debug("filtered", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if entry["msg"] != "request done" || entry["app"] != "pet-care-dashboard" || entry["component"] != "gateway" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if entry["err"] != "boom" {
		t.Fatalf("expected err field, got %#v", entry["err"])
	}
}
