package httpapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/user"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

type (
	principalKey struct{}
	requestIDKey struct{}
)

// withPrincipal also binds user_id to the request's log fields.
func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	ctx = context.WithValue(ctx, principalKey{}, p)
	return logging.ContextWith(ctx, "user_id", p.UserID)
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	if !ok || strings.TrimSpace(p.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return p, nil
}

func withRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	return logging.ContextWith(ctx, "request_id", id)
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
