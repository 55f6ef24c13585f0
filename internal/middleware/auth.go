package middleware

import (
	"context"
	"net/http"
	"strings"

	"agora/backend/internal/auth"
	"agora/backend/internal/common"
	"agora/backend/internal/constants"
	"agora/backend/internal/logging"
)

// TokenVerifier parses a bearer token into session claims
type TokenVerifier interface {
	Verify(token string) (*auth.SessionClaims, error)
}

// RevocationChecker reports tokens revoked by logout or member deletion
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware requires "Authorization: Bearer <jwt>" and stores the claims in the request context
func AuthMiddleware(tokens TokenVerifier, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				common.RespondMessage(w, http.StatusBadRequest, constants.MsgNoAuthToken)
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				common.RespondMessage(w, http.StatusUnauthorized, constants.MsgWrongCredentials)
				return
			}

			if revoked != nil {
				isRevoked, err := revoked.IsRevoked(r.Context(), claims.TokenID())
				if err != nil {
					logging.Error("Revocation lookup failed",
						"request_id", RequestIDFromContext(r.Context()),
						"error", err,
					)
					common.RespondServerError(w)
					return
				}
				if isRevoked {
					common.RespondMessage(w, http.StatusUnauthorized, constants.MsgWrongCredentials)
					return
				}
			}

			if info := requestInfoFromContext(r.Context()); info != nil {
				info.memberID = claims.MemberID
			}

			ctx := auth.SetSessionClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
