package services

import (
	"context"
	"errors"
	"strconv"

	"agora/backend/internal/auth"
	"agora/backend/internal/common"
	"agora/backend/internal/constants"
	"agora/backend/internal/db/repositories"
	"agora/backend/internal/events"
	"agora/backend/internal/metrics"
	"agora/backend/internal/models/dtos"
	"agora/backend/internal/models/entities"
	gormModels "agora/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// FollowService manages follow requests between members and affiliates
type FollowService struct {
	db         *gorm.DB
	identities *repositories.IdentityRepository
	members    *repositories.MemberRepository
	follows    *repositories.FollowRepository
	queries    *repositories.FollowQueryRepository

	cache     *common.CacheLoader
	publisher events.Publisher
	metrics   *metrics.MetricsRegistry
}

func NewFollowService(store Store, cache *common.CacheLoader, publisher events.Publisher, m *metrics.MetricsRegistry) *FollowService {
	return &FollowService{
		db:         store.DB,
		identities: repositories.NewIdentityRepository(store.DB),
		members:    repositories.NewMemberRepository(store.DB),
		follows:    repositories.NewFollowRepository(store.DB),
		queries:    repositories.NewFollowQueryRepository(store.SQL),
		cache:      cache,
		publisher:  publisher,
		metrics:    m,
	}
}

func boolPtr(b bool) *bool { return &b }

// Follow creates (or re-opens a declined) request from the member to the affiliate.
// Public followees accept immediately.
func (s *FollowService) Follow(ctx context.Context, fromMemberID, toAffiliateID uint64) (*dtos.FollowResult, error) {
	var (
		result   dtos.FollowResult
		followee *entities.AffiliateKind
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follower, err := s.members.WithTx(tx).GetByID(ctx, fromMemberID)
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindUnauthorized, constants.MsgFollowerInactive)
		}
		if err != nil {
			return err
		}
		if follower.AffiliateID == toAffiliateID {
			return newError(KindInvalid, constants.MsgCannotFollowSelf)
		}
		if !follower.Affiliate.Entity.IsActive {
			return newError(KindUnauthorized, constants.MsgFollowerInactive)
		}

		followee, err = s.identities.WithTx(tx).GetAffiliateKind(ctx, toAffiliateID)
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, constants.MsgAffiliateNotFound)
		}
		if err != nil {
			return err
		}
		if !followee.IsActive {
			return newError(KindNotFound, constants.MsgAffiliateNotFound)
		}

		var accepted *bool
		if !followee.IsPrivate {
			accepted = boolPtr(true)
		}

		follows := s.follows.WithTx(tx)
		existing, err := follows.GetByPair(ctx, fromMemberID, toAffiliateID)
		switch {
		case err == nil && !existing.IsDeclined():
			return newError(KindConflict, constants.MsgAlreadyFollowing)
		case err == nil:
			if err := follows.SetAccepted(ctx, existing.ID, accepted); err != nil {
				return err
			}
			result.FollowRequestID = existing.ID
		case errors.Is(err, repositories.ErrNotFound):
			req := &gormModels.MemberFollowRequest{
				FromMemberID:  fromMemberID,
				ToAffiliateID: toAffiliateID,
				IsAccepted:    accepted,
			}
			if err := follows.Create(ctx, req); err != nil {
				if errors.Is(err, repositories.ErrDuplicate) {
					return newError(KindConflict, constants.MsgAlreadyFollowing)
				}
				return err
			}
			result.FollowRequestID = req.ID
		default:
			return err
		}

		result.IsAccepted = accepted != nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCounters(ctx, fromMemberID, followee)

	eventType, outcome := constants.EventFollowRequested, "requested"
	if result.IsAccepted {
		eventType, outcome = constants.EventFollowAccepted, "accepted"
	}
	s.metrics.FollowRequest(outcome)
	publish(ctx, s.publisher, eventType, strconv.FormatUint(toAffiliateID, 10), map[string]any{
		"follow_request_id": result.FollowRequestID,
		"from_member_id":    fromMemberID,
		"to_affiliate_id":   toAffiliateID,
	})
	return &result, nil
}

// Unfollow removes the member's request to the affiliate, whatever its state
func (s *FollowService) Unfollow(ctx context.Context, fromMemberID, toAffiliateID uint64) error {
	var followee *entities.AffiliateKind
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follower, err := s.members.WithTx(tx).GetByID(ctx, fromMemberID)
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindUnauthorized, constants.MsgFollowerInactive)
		}
		if err != nil {
			return err
		}
		if !follower.Affiliate.Entity.IsActive {
			return newError(KindUnauthorized, constants.MsgFollowerInactive)
		}

		deleted, err := s.follows.WithTx(tx).DeleteByPair(ctx, fromMemberID, toAffiliateID)
		if err != nil {
			return err
		}
		if !deleted {
			return newError(KindNotFound, constants.MsgFollowNotFound)
		}
		followee, err = s.identities.WithTx(tx).GetAffiliateKind(ctx, toAffiliateID)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCounters(ctx, fromMemberID, followee)
	return nil
}

// Accept marks a pending request as accepted
func (s *FollowService) Accept(ctx context.Context, session *auth.SessionClaims, followRequestID uint64) error {
	return s.answer(ctx, session, followRequestID, true)
}

// Decline marks a pending request as declined
func (s *FollowService) Decline(ctx context.Context, session *auth.SessionClaims, followRequestID uint64) error {
	return s.answer(ctx, session, followRequestID, false)
}

func (s *FollowService) answer(ctx context.Context, session *auth.SessionClaims, followRequestID uint64, accept bool) error {
	if session == nil {
		return newError(KindUnauthorized, constants.MsgWrongCredentials)
	}

	var (
		req      *gormModels.MemberFollowRequest
		followee *entities.AffiliateKind
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireActiveAffiliate(ctx, s.identities.WithTx(tx), session.AffiliateID); err != nil {
			return err
		}
		follows := s.follows.WithTx(tx)

		var err error
		req, err = follows.GetByID(ctx, followRequestID)
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, constants.MsgFollowNotFound)
		}
		if err != nil {
			return err
		}

		followee, err = s.identities.WithTx(tx).GetAffiliateKind(ctx, req.ToAffiliateID)
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, constants.MsgFollowNotFound)
		}
		if err != nil {
			return err
		}
		if req.ToAffiliateID != session.AffiliateID && !followee.OwnedBy(session.MemberID) {
			return newError(KindForbidden, constants.MsgFollowNotYours)
		}
		if !req.IsPending() {
			return newError(KindConflict, constants.MsgFollowNotPending)
		}

		return follows.SetAccepted(ctx, req.ID, boolPtr(accept))
	})
	if err != nil {
		return err
	}

	eventType, outcome := constants.EventFollowDeclined, "declined"
	if accept {
		eventType, outcome = constants.EventFollowAccepted, "accepted"
		s.invalidateCounters(ctx, req.FromMemberID, followee)
	}
	s.metrics.FollowRequest(outcome)
	publish(ctx, s.publisher, eventType, strconv.FormatUint(req.ToAffiliateID, 10), map[string]any{
		"follow_request_id": req.ID,
		"from_member_id":    req.FromMemberID,
		"to_affiliate_id":   req.ToAffiliateID,
	})
	return nil
}

// GetFollowers lists accepted followers of an affiliate
func (s *FollowService) GetFollowers(ctx context.Context, affiliateID uint64) ([]entities.FollowListing, error) {
	return s.queries.Followers(ctx, affiliateID)
}

// GetFollowees lists what the member behind affiliateID follows
func (s *FollowService) GetFollowees(ctx context.Context, affiliateID uint64) ([]entities.FollowListing, error) {
	return s.queries.Followees(ctx, affiliateID)
}

// GetRequests lists pending requests to the session member and its boards
func (s *FollowService) GetRequests(ctx context.Context, session *auth.SessionClaims) ([]entities.FollowListing, error) {
	if session == nil {
		return nil, newError(KindUnauthorized, constants.MsgWrongCredentials)
	}
	if err := requireActiveAffiliate(ctx, s.identities, session.AffiliateID); err != nil {
		return nil, err
	}
	return s.queries.Pending(ctx, session.AffiliateID, session.MemberID)
}

// invalidateCounters drops cached profiles whose follow counters changed
func (s *FollowService) invalidateCounters(ctx context.Context, followerMemberID uint64, followee *entities.AffiliateKind) {
	keys := []string{memberCacheKey(followerMemberID), memberListCacheKey()}
	if followee != nil && followee.MemberID != nil {
		keys = append(keys, memberCacheKey(*followee.MemberID))
	}
	s.cache.Invalidate(ctx, keys...)
}
