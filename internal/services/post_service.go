package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"agora/backend/internal/auth"
	"agora/backend/internal/constants"
	"agora/backend/internal/db/repositories"
	"agora/backend/internal/events"
	"agora/backend/internal/metrics"
	"agora/backend/internal/models/dtos"
	gormModels "agora/backend/internal/models/gorm"

	"gorm.io/gorm"
)

const maxPostLength = 1000

type PostService struct {
	db         *gorm.DB
	identities *repositories.IdentityRepository
	follows    *repositories.FollowRepository
	posts      *repositories.PostRepository

	publisher events.Publisher
	metrics   *metrics.MetricsRegistry
}

func NewPostService(store Store, publisher events.Publisher, m *metrics.MetricsRegistry) *PostService {
	return &PostService{
		db:         store.DB,
		identities: repositories.NewIdentityRepository(store.DB),
		follows:    repositories.NewFollowRepository(store.DB),
		posts:      repositories.NewPostRepository(store.DB),
		publisher:  publisher,
		metrics:    m,
	}
}

// CreatePost publishes a post for the session member, optionally on a board
func (s *PostService) CreatePost(ctx context.Context, session *auth.SessionClaims, req dtos.CreatePostReq) (*dtos.PostCreated, error) {
	if session == nil {
		return nil, newError(KindUnauthorized, constants.MsgWrongCredentials)
	}
	body := strings.TrimSpace(req.Body)
	if body == "" || utf8.RuneCountInString(body) > maxPostLength {
		return nil, newError(KindInvalid, "Post body must be between 1 and 1000 characters")
	}

	affiliateIDs := []uint64{session.AffiliateID}
	var created dtos.PostCreated

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireActiveAffiliate(ctx, s.identities.WithTx(tx), session.AffiliateID); err != nil {
			return err
		}
		if req.AffiliateID != nil && *req.AffiliateID != session.AffiliateID {
			if err := s.checkBoardAccess(ctx, tx, session, *req.AffiliateID); err != nil {
				return err
			}
			affiliateIDs = append(affiliateIDs, *req.AffiliateID)
		}

		entity, err := s.identities.WithTx(tx).CreateEntity(ctx)
		if err != nil {
			return err
		}

		post := &gormModels.Post{
			EntityID:        entity.ID,
			Body:            body,
			FromAffiliateID: session.AffiliateID,
		}
		if err := s.posts.WithTx(tx).Create(ctx, post, affiliateIDs); err != nil {
			return err
		}

		created.EntityID = entity.ID
		created.PostID = post.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created.Affiliates = make([]dtos.AffiliateRef, 0, len(affiliateIDs))
	for _, id := range affiliateIDs {
		created.Affiliates = append(created.Affiliates, dtos.AffiliateRef{AffiliateID: id})
	}

	s.metrics.PostCreated()
	publish(ctx, s.publisher, constants.EventPostCreated, strconv.FormatUint(created.PostID, 10), created)
	return &created, nil
}

// checkBoardAccess allows public boards, owned boards and accepted followers
func (s *PostService) checkBoardAccess(ctx context.Context, tx *gorm.DB, session *auth.SessionClaims, boardAffiliateID uint64) error {
	kind, err := s.identities.WithTx(tx).GetAffiliateKind(ctx, boardAffiliateID)
	if errors.Is(err, repositories.ErrNotFound) {
		return newError(KindNotFound, constants.MsgBoardNotFound)
	}
	if err != nil {
		return err
	}
	if !kind.IsBoard() || !kind.IsActive {
		return newError(KindNotFound, constants.MsgBoardNotFound)
	}
	if !kind.IsPrivate || kind.OwnedBy(session.MemberID) {
		return nil
	}

	following, err := s.follows.WithTx(tx).IsAccepted(ctx, session.MemberID, boardAffiliateID)
	if err != nil {
		return err
	}
	if !following {
		return newError(KindForbidden, constants.MsgBoardForbidden)
	}
	return nil
}

// DeletePost soft-deletes a post authored by the affiliate
func (s *PostService) DeletePost(ctx context.Context, affiliateID, postID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireActiveAffiliate(ctx, s.identities.WithTx(tx), affiliateID); err != nil {
			return err
		}
		post, err := s.posts.WithTx(tx).GetByID(ctx, postID)
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, constants.MsgPostNotDeleted)
		}
		if err != nil {
			return err
		}
		if post.FromAffiliateID != affiliateID || !post.Entity.IsActive {
			return newError(KindNotFound, constants.MsgPostNotDeleted)
		}

		_, err = s.identities.WithTx(tx).Deactivate(ctx, post.EntityID)
		return err
	})
}

// SwitchSaved toggles the affiliate's bookmark on an active post
func (s *PostService) SwitchSaved(ctx context.Context, affiliateID, postID uint64) (*dtos.SavedState, error) {
	var state dtos.SavedState
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireActiveAffiliate(ctx, s.identities.WithTx(tx), affiliateID); err != nil {
			return err
		}
		posts := s.posts.WithTx(tx)
		post, err := posts.GetByID(ctx, postID)
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, constants.MsgPostNotFound)
		}
		if err != nil {
			return err
		}
		if !post.Entity.IsActive {
			return newError(KindNotFound, constants.MsgPostNotFound)
		}

		state.Saved, err = posts.ToggleSaved(ctx, postID, affiliateID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}
