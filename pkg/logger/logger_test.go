package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSlogLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLoggerWithWriter(&buf, slog.LevelInfo).With("component", "test")

	log.Debugf("hidden %d", 1)
	log.Errorf(errors.New("boom"), "failed to %s", "save")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("want exactly one json record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "failed to save" || rec["error"] != "boom" || rec["component"] != "test" || rec["level"] != "ERROR" {
		t.Fatalf("unexpected record %v", rec)
	}
}
