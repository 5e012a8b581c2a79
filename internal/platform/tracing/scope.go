// Package tracing opens child spans on behalf of one instrumented package.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Scope records spans whose names start with its prefix. An empty prefix
// records every non-empty name.
type Scope struct {
	tracer trace.Tracer
	prefix string
}

// NewScope uses the global provider when provider is nil. The global provider
// delegates, so a scope built at package init follows a later SetTracerProvider.
func NewScope(provider trace.TracerProvider, instrumentation, prefix string) Scope {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return Scope{tracer: provider.Tracer(instrumentation), prefix: prefix}
}

func (s Scope) Records(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && strings.HasPrefix(name, s.prefix)
}

// Start never opens a root span: without a valid parent in ctx, or for a
// name outside the scope, ctx comes back unchanged with a span that records
// nothing.
func (s Scope) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !s.Records(name) || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return s.tracer.Start(ctx, strings.TrimSpace(name), trace.WithAttributes(attrs...))
}
