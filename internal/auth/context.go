package auth

import "context"

type ctxKey string

const claimsKey ctxKey = "staff_claims"

// WithClaims stores authenticated staff claims in the context (set by the
// auth middleware, read by services that record the acting staff member).
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// ActorFrom returns a display name for audit records: the staff member's
// name when authenticated, "customer" otherwise.
func ActorFrom(ctx context.Context) string {
	if claims, ok := ClaimsFrom(ctx); ok {
		return claims.Name
	}
	return "customer"
}
