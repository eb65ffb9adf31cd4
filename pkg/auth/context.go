package auth

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const principalKey contextKey = "principal"

// ErrPrincipalNotFound is returned when no Principal exists in the request context.
var ErrPrincipalNotFound = errors.New("principal not found in context")

// PrincipalFromCtx extracts the authenticated Principal from the request context.
func PrincipalFromCtx(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok || p.Subject == "" {
		return Principal{}, ErrPrincipalNotFound
	}
	return p, nil
}

// WithPrincipal returns a new context with p attached.
// Used by RequireBearer after the credential has been accepted.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
