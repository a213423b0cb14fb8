package policy

import (
	"context"

	"hospital-records/internal/domain/entity"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated identity attached to a request context.
type Principal struct {
	UserID  int
	Role    entity.Role
	TokenID string
}

// NewContext returns a copy of ctx carrying the principal.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext extracts the principal placed by NewContext.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
