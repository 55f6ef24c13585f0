package auth

import (
	"context"
)

type contextKey string

var sessionClaimsKey contextKey = "session_claims"

func SetSessionClaims(ctx context.Context, claims *SessionClaims) context.Context {
	return context.WithValue(ctx, sessionClaimsKey, claims)
}

// GetSessionClaims returns nil outside authenticated routes
func GetSessionClaims(ctx context.Context) *SessionClaims {
	val := ctx.Value(sessionClaimsKey)
	if claims, ok := val.(*SessionClaims); ok {
		return claims
	}
	return nil
}
