package httpapi

import (
	"context"

	"github.com/riskibarqy/fantasy-cricket/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

// Only handler entry points get spans; middleware and response helpers run
// inside the otelhttp request span.
var handlerSpans = tracing.NewScope(nil, "fantasy-cricket/internal/interfaces/httpapi", "httpapi.Handler.")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return handlerSpans.Start(ctx, name)
}
