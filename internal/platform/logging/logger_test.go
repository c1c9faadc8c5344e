package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func TestLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf).Named("draft")

	logger.Debug("hidden")
	logger.Info("player bought", "session_id", "s1", "price", int64(80), "error", errors.New("none"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}

	var got map[string]any
	if err := sonic.UnmarshalString(lines[0], &got); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if got["msg"] != "player bought" || got["session_id"] != "s1" || got["logger"] != "draft" {
		t.Fatalf("unexpected log line: %v", got)
	}
	if got["error"] != "none" {
		t.Fatalf("expected error field, got %v", got["error"])
	}
}

func TestLoggerAddsTraceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelDebug, &buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "traced")
	if !strings.Contains(buf.String(), `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`) {
		t.Fatalf("missing trace id: %s", buf.String())
	}
}

func TestOddArgsDoNotPanic(t *testing.T) {
	var buf bytes.Buffer
	NewJSONWriter(LevelInfo, &buf).Warn("odd", "dangling")
	if !strings.Contains(buf.String(), `"dangling":null`) {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNilLoggerUsesDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(NewJSONWriter(LevelInfo, &buf))
	defer SetDefault(prev)

	var logger *Logger
	logger.Info("from nil", "k", "v")
	if !strings.Contains(buf.String(), `"msg":"from nil"`) {
		t.Fatalf("expected default logger output, got %q", buf.String())
	}
}
