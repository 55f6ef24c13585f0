package common

import (
	"context"
	"fmt"
	"time"

	"agora/backend/internal/constants"
)

// SessionService tracks revoked token IDs until the tokens would have expired
type SessionService struct {
	cache CacheInterface
}

func NewSessionService(cache CacheInterface) *SessionService {
	return &SessionService{cache: cache}
}

func revokedKey(jti string) string {
	return string(constants.CachePrefixRevokedToken) + jti
}

// Revoke blacklists jti for the token's remaining lifetime
func (s *SessionService) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, revokedKey(jti), true, ttl); err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", jti, err)
	}
	return nil
}

func (s *SessionService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.cache.Exists(ctx, revokedKey(jti))
}
