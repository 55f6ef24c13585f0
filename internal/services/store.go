package services

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"agora/backend/internal/constants"
	"agora/backend/internal/db/repositories"
	"agora/backend/internal/events"
	"agora/backend/internal/logging"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Store bundles the write and read handles. Both point at the same database.
type Store struct {
	DB  *gorm.DB
	SQL *sqlx.DB
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

// ValidUsername accepts 3-30 word characters that are not all digits,
// since numeric path segments address members by ID
func ValidUsername(username string) bool {
	if !usernamePattern.MatchString(username) {
		return false
	}
	_, err := strconv.ParseUint(username, 10, 64)
	return err != nil
}

// requireActiveAffiliate rejects a session whose member was soft-deleted after
// the token was issued. Run it inside the write transaction it guards.
func requireActiveAffiliate(ctx context.Context, identities *repositories.IdentityRepository, affiliateID uint64) error {
	kind, err := identities.GetAffiliateKind(ctx, affiliateID)
	if errors.Is(err, repositories.ErrNotFound) {
		return newError(KindUnauthorized, constants.MsgFollowerInactive)
	}
	if err != nil {
		return err
	}
	if !kind.IsActive {
		return newError(KindUnauthorized, constants.MsgFollowerInactive)
	}
	return nil
}

func memberCacheKey(memberID uint64) string {
	return string(constants.CachePrefixMember) + strconv.FormatUint(memberID, 10)
}

func memberListCacheKey() string {
	return string(constants.CachePrefixMemberList)
}

// normalizePage clamps limit and offset to the allowed range
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// publish logs delivery failures; the committed write stands either way
func publish(ctx context.Context, p events.Publisher, eventType constants.EventType, key string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, eventType, key, payload); err != nil {
		logging.Warn("Event publish failed", "type", eventType, "key", key, "error", err)
	}
}
