package auth

import "github.com/golang-jwt/jwt/v5"

// SessionClaims identify the logged-in member inside a bearer token
type SessionClaims struct {
	EntityID    uint64 `json:"entity_id"`
	AffiliateID uint64 `json:"affiliate_id"`
	MemberID    uint64 `json:"member_id"`
	Username    string `json:"username"`
	ExpiresIn   string `json:"expiresIn"`
	jwt.RegisteredClaims
}

// TokenID returns the jti used for revocation
func (c *SessionClaims) TokenID() string { return c.ID }
