package usecase

import (
	"context"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/platform/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseSpans = tracing.NewScope(nil, "fantasy-cricket/internal/usecase", "usecase.")

func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return usecaseSpans.Start(ctx, name, attrs...)
}

func leagueAttr(leagueID string) attribute.KeyValue {
	return attribute.String("league.id", strings.TrimSpace(leagueID))
}
