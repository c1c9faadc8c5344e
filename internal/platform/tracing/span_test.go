package tracing

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestChildWithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := Child(ctx, otel.Tracer("test"), "usecase.DraftService.Buy")
	if got != ctx {
		t.Fatalf("expected context unchanged")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no-op span")
	}
}

func TestChildKeepsParentTrace(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	child, span := Child(ctx, otel.Tracer("test"), "usecase.DraftService.Buy", SessionID("d1"))
	defer span.End()
	if got := trace.SpanContextFromContext(child).TraceID(); got != traceID {
		t.Fatalf("expected trace %s, got %s", traceID, got)
	}
}
