// Package tracing starts child spans only under an existing trace, so untraced
// entry points such as health checks and background loops stay span-free.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var noop = trace.SpanFromContext(context.Background())

// Child starts name under the span in ctx. Without a valid parent it returns
// ctx unchanged and a no-op span.
func Child(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// SessionID tags a span with the draft session it acts on.
func SessionID(id string) attribute.KeyValue {
	return attribute.String("futdraft.session_id", id)
}
