package repositories

import (
	"context"

	"agora/backend/internal/constants"
	"agora/backend/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

type FollowQueryRepository struct {
	db *sqlx.DB
}

func NewFollowQueryRepository(db *sqlx.DB) *FollowQueryRepository {
	return &FollowQueryRepository{db: db}
}

// Followers lists the active members with an accepted request to the affiliate
func (r *FollowQueryRepository) Followers(ctx context.Context, affiliateID uint64) ([]entities.FollowListing, error) {
	rows := []entities.FollowListing{}
	query := r.db.Rebind(constants.SelectFollowers)
	if err := r.db.SelectContext(ctx, &rows, query, affiliateID, true, true); err != nil {
		return nil, wrap(err, "failed to list followers of %d", affiliateID)
	}
	for i := range rows {
		rows[i].ConsultantAffiliateID = affiliateID
	}
	return rows, nil
}

// Followees lists the active affiliates the member behind affiliateID follows
func (r *FollowQueryRepository) Followees(ctx context.Context, affiliateID uint64) ([]entities.FollowListing, error) {
	rows := []entities.FollowListing{}
	query := r.db.Rebind(constants.SelectFollowees)
	if err := r.db.SelectContext(ctx, &rows, query, affiliateID, true, true); err != nil {
		return nil, wrap(err, "failed to list followees of %d", affiliateID)
	}
	for i := range rows {
		rows[i].ConsultantAffiliateID = affiliateID
	}
	return rows, nil
}

// Pending lists unanswered requests to the member and to the boards it owns
func (r *FollowQueryRepository) Pending(ctx context.Context, affiliateID, memberID uint64) ([]entities.FollowListing, error) {
	rows := []entities.FollowListing{}
	query := r.db.Rebind(constants.SelectPendingRequests)
	if err := r.db.SelectContext(ctx, &rows, query, true, affiliateID, memberID); err != nil {
		return nil, wrap(err, "failed to list pending requests of %d", affiliateID)
	}
	return rows, nil
}
