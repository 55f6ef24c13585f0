package repositories

import (
	"context"

	gormModels "agora/backend/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) WithTx(tx *gorm.DB) *BoardRepository {
	return &BoardRepository{db: tx}
}

// Create inserts the board and its description
func (r *BoardRepository) Create(ctx context.Context, board *gormModels.Board, desc *gormModels.BoardDescription) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(board).Error; err != nil {
		return wrap(err, "failed to create board %q", board.Title)
	}
	desc.BoardID = board.ID
	if err := r.db.WithContext(ctx).Create(desc).Error; err != nil {
		return wrap(err, "failed to create description for board %d", board.ID)
	}
	board.Description = desc
	return nil
}
