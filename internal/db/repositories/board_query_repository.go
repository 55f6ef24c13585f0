package repositories

import (
	"context"

	"agora/backend/internal/constants"
	"agora/backend/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type BoardQueryRepository struct {
	db *sqlx.DB
}

func NewBoardQueryRepository(db *sqlx.DB) *BoardQueryRepository {
	return &BoardQueryRepository{db: db}
}

func (r *BoardQueryRepository) GetExtended(ctx context.Context, boardID uint64) (*entities.BoardExtended, error) {
	var board entities.BoardExtended
	query := r.db.Rebind(constants.SelectBoardExtended)
	if err := r.db.GetContext(ctx, &board, query, false, true, true, boardID, true); err != nil {
		return nil, wrap(err, "failed to fetch board %d", boardID)
	}
	return &board, nil
}
