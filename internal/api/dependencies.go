package api

import (
	"context"

	"agora/backend/internal/auth"
	"agora/backend/internal/common"
	"agora/backend/internal/config"
	"agora/backend/internal/events"
	"agora/backend/internal/metrics"
	"agora/backend/internal/models/dtos"
	"agora/backend/internal/models/entities"
	"agora/backend/internal/services"
)

// MemberAPI is the slice of MemberService the handlers need
type MemberAPI interface {
	CreateMinimalMember(ctx context.Context, req dtos.MemberLoginReq) (*dtos.RegisteredPayload, error)
	CreateFullMember(ctx context.Context, req dtos.RegisterFullReq) (*dtos.RegisteredPayload, error)
	CreateMemberDescription(ctx context.Context, memberID uint64, req dtos.MemberDescriptionReq) error
	UpdateMemberDescription(ctx context.Context, session *auth.SessionClaims, memberID uint64, req dtos.MemberDescriptionReq) error
	Login(ctx context.Context, req dtos.MemberLoginReq) (*dtos.SessionPayload, error)
	Reauth(ctx context.Context, session *auth.SessionClaims) (*dtos.SessionPayload, error)
	Logout(ctx context.Context, session *auth.SessionClaims) error
	GetExtended(ctx context.Context) ([]entities.MemberExtended, error)
	GetExtendedByID(ctx context.Context, memberID uint64) (*entities.MemberExtended, error)
	GetFromMemberPovByUsername(ctx context.Context, consultantMemberID uint64, username string) (*entities.MemberFromMemberPov, error)
	DeleteMember(ctx context.Context, session *auth.SessionClaims, memberID uint64) error
}

type FollowAPI interface {
	Follow(ctx context.Context, fromMemberID, toAffiliateID uint64) (*dtos.FollowResult, error)
	Unfollow(ctx context.Context, fromMemberID, toAffiliateID uint64) error
	Accept(ctx context.Context, session *auth.SessionClaims, followRequestID uint64) error
	Decline(ctx context.Context, session *auth.SessionClaims, followRequestID uint64) error
	GetFollowers(ctx context.Context, affiliateID uint64) ([]entities.FollowListing, error)
	GetFollowees(ctx context.Context, affiliateID uint64) ([]entities.FollowListing, error)
	GetRequests(ctx context.Context, session *auth.SessionClaims) ([]entities.FollowListing, error)
}

type PostAPI interface {
	CreatePost(ctx context.Context, session *auth.SessionClaims, req dtos.CreatePostReq) (*dtos.PostCreated, error)
	DeletePost(ctx context.Context, affiliateID, postID uint64) error
	SwitchSaved(ctx context.Context, affiliateID, postID uint64) (*dtos.SavedState, error)
}

type FeedAPI interface {
	Get(ctx context.Context, session *auth.SessionClaims, page dtos.Page) ([]entities.FeedPost, error)
	GetFromAffiliateID(ctx context.Context, session *auth.SessionClaims, affiliateID uint64, page dtos.Page) ([]entities.FeedPost, error)
	GetSaved(ctx context.Context, session *auth.SessionClaims, page dtos.Page) ([]entities.FeedPost, error)
}

type BoardAPI interface {
	CreateBoard(ctx context.Context, session *auth.SessionClaims, req dtos.CreateBoardReq) (*dtos.BoardCreated, error)
	GetBoard(ctx context.Context, boardID uint64) (*entities.BoardExtended, error)
}

type Services struct {
	Members MemberAPI
	Follows FollowAPI
	Posts   PostAPI
	Feed    FeedAPI
	Boards  BoardAPI

	Tokens   *auth.TokenManager
	Sessions *common.SessionService
}

type Dependencies struct {
	Services  *Services
	Store     services.Store
	Cache     common.CacheInterface
	Publisher events.Publisher
	Metrics   *metrics.MetricsRegistry
}

// InitDependencies wires every service on top of the shared store, cache and publisher
func InitDependencies(cfg *config.Config, store services.Store, cache common.CacheInterface, publisher events.Publisher, m *metrics.MetricsRegistry) *Dependencies {
	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	sessions := common.NewSessionService(cache)

	loader := common.NewCacheLoader(cache, cfg.Cache.TTL)
	if m != nil {
		loader = loader.WithObserver(m)
	}

	return &Dependencies{
		Services: &Services{
			Members:  services.NewMemberService(store, tokens, sessions, loader, publisher, m),
			Follows:  services.NewFollowService(store, loader, publisher, m),
			Posts:    services.NewPostService(store, publisher, m),
			Feed:     services.NewFeedService(store),
			Boards:   services.NewBoardService(store),
			Tokens:   tokens,
			Sessions: sessions,
		},
		Store:     store,
		Cache:     cache,
		Publisher: publisher,
		Metrics:   m,
	}
}

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}
