package services

import (
	"context"
	"errors"

	"agora/backend/internal/auth"
	"agora/backend/internal/constants"
	"agora/backend/internal/db/repositories"
	"agora/backend/internal/models/dtos"
	"agora/backend/internal/models/entities"
)

// FeedService serves post lists decorated for the consultant
type FeedService struct {
	identities *repositories.IdentityRepository
	follows    *repositories.FollowRepository
	queries    *repositories.FeedQueryRepository
}

func NewFeedService(store Store) *FeedService {
	return &FeedService{
		identities: repositories.NewIdentityRepository(store.DB),
		follows:    repositories.NewFollowRepository(store.DB),
		queries:    repositories.NewFeedQueryRepository(store.SQL),
	}
}

// consultant resolves the reader of a feed, who must still be active
func (s *FeedService) consultant(ctx context.Context, session *auth.SessionClaims) (repositories.Consultant, error) {
	if session == nil {
		return repositories.Consultant{}, newError(KindUnauthorized, constants.MsgWrongCredentials)
	}
	if err := requireActiveAffiliate(ctx, s.identities, session.AffiliateID); err != nil {
		return repositories.Consultant{}, err
	}
	return repositories.Consultant{AffiliateID: session.AffiliateID, MemberID: session.MemberID}, nil
}

// Get returns the consultant's home feed, newest first
func (s *FeedService) Get(ctx context.Context, session *auth.SessionClaims, page dtos.Page) ([]entities.FeedPost, error) {
	c, err := s.consultant(ctx, session)
	if err != nil {
		return nil, err
	}
	limit, offset := normalizePage(page.Limit, page.Offset)
	return s.queries.Home(ctx, c, limit, offset)
}

// GetFromAffiliateID returns the posts of a member or board the consultant may see
func (s *FeedService) GetFromAffiliateID(ctx context.Context, session *auth.SessionClaims, affiliateID uint64, page dtos.Page) ([]entities.FeedPost, error) {
	c, err := s.consultant(ctx, session)
	if err != nil {
		return nil, err
	}

	kind, err := s.identities.GetAffiliateKind(ctx, affiliateID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(KindNotFound, constants.MsgAffiliateNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !kind.IsActive {
		return nil, newError(KindNotFound, constants.MsgAffiliateNotFound)
	}

	if kind.IsPrivate && !kind.OwnedBy(c.MemberID) {
		following, err := s.follows.IsAccepted(ctx, c.MemberID, affiliateID)
		if err != nil {
			return nil, err
		}
		if !following {
			return nil, newError(KindForbidden, constants.MsgPrivateAffiliate)
		}
	}

	limit, offset := normalizePage(page.Limit, page.Offset)
	return s.queries.ByAffiliate(ctx, c, affiliateID, limit, offset)
}

// GetSaved returns the posts the consultant bookmarked
func (s *FeedService) GetSaved(ctx context.Context, session *auth.SessionClaims, page dtos.Page) ([]entities.FeedPost, error) {
	c, err := s.consultant(ctx, session)
	if err != nil {
		return nil, err
	}
	limit, offset := normalizePage(page.Limit, page.Offset)
	return s.queries.Saved(ctx, c, limit, offset)
}
