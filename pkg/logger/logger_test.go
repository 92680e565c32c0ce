package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestCloudRunHandlerWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerTo(&buf, slog.LevelInfo)).With("flight_id", "f1")

	log.WithGroup("cell").Warn("commit rejected", "code", "OB", "error", errors.New("ambiguous"))

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if event["severity"] != "WARNING" || event["message"] != "commit rejected" {
		t.Fatalf("unexpected event: %v", event)
	}
	data, ok := event["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data: %v", event)
	}
	if data["flight_id"] != "f1" || data["cell.code"] != "OB" || data["cell.error"] != "ambiguous" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestCloudRunHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewCloudRunHandlerTo(&buf, slog.LevelWarn))

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info record written at warn level: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != slog.Default() {
		t.Fatalf("expected default logger without context value")
	}

	base := slog.New(NewTestHandler(slog.LevelDebug))
	ctx = ToContext(ctx, base)
	if !IsDebugEnabled(ctx) {
		t.Fatalf("debug should be enabled")
	}

	enriched, ctx := With(ctx, "flight_id", "f1")
	if FromContext(ctx) != enriched {
		t.Fatalf("With did not store the enriched logger")
	}
}
