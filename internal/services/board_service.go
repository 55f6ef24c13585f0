package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"agora/backend/internal/auth"
	"agora/backend/internal/constants"
	"agora/backend/internal/db/repositories"
	"agora/backend/internal/logging"
	"agora/backend/internal/models/dtos"
	"agora/backend/internal/models/entities"
	gormModels "agora/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// BoardService manages boards, the affiliates that are not members
type BoardService struct {
	db         *gorm.DB
	identities *repositories.IdentityRepository
	boards     *repositories.BoardRepository
	queries    *repositories.BoardQueryRepository
}

func NewBoardService(store Store) *BoardService {
	return &BoardService{
		db:         store.DB,
		identities: repositories.NewIdentityRepository(store.DB),
		boards:     repositories.NewBoardRepository(store.DB),
		queries:    repositories.NewBoardQueryRepository(store.SQL),
	}
}

// CreateBoard runs entity -> affiliate -> board -> description in one transaction
func (s *BoardService) CreateBoard(ctx context.Context, session *auth.SessionClaims, req dtos.CreateBoardReq) (*dtos.BoardCreated, error) {
	if session == nil {
		return nil, newError(KindUnauthorized, constants.MsgWrongCredentials)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" || utf8.RuneCountInString(title) > 100 {
		return nil, newError(KindInvalid, "Board title must be between 1 and 100 characters")
	}

	var created dtos.BoardCreated
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		identities := s.identities.WithTx(tx)
		if err := requireActiveAffiliate(ctx, identities, session.AffiliateID); err != nil {
			return err
		}
		affiliate, err := identities.CreateAffiliate(ctx)
		if err != nil {
			return err
		}

		board := &gormModels.Board{
			AffiliateID:   affiliate.ID,
			OwnerMemberID: session.MemberID,
			Title:         title,
		}
		desc := &gormModels.BoardDescription{About: emptyToNil(req.About), IsPrivate: req.IsPrivate}
		if err := s.boards.WithTx(tx).Create(ctx, board, desc); err != nil {
			return err
		}

		created = dtos.BoardCreated{
			EntityID:    affiliate.EntityID,
			AffiliateID: affiliate.ID,
			BoardID:     board.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Info("Board created", "board_id", created.BoardID, "owner_member_id", session.MemberID)
	return &created, nil
}

func (s *BoardService) GetBoard(ctx context.Context, boardID uint64) (*entities.BoardExtended, error) {
	board, err := s.queries.GetExtended(ctx, boardID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(KindNotFound, constants.MsgBoardNotFound)
	}
	return board, err
}
