package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/futdraft/internal/platform/tracing"
)

var apiTracer = otel.Tracer("futdraft/internal/interfaces/httpapi")

// startSpan opens handler spans only; filtered routes carry no parent and get a no-op.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !shouldCreateHTTPAPISpan(name) {
		name = ""
	}
	return tracing.Child(ctx, apiTracer, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
