package repositories

import (
	"context"

	gormModels "agora/backend/internal/models/gorm"

	"gorm.io/gorm"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) WithTx(tx *gorm.DB) *FollowRepository {
	return &FollowRepository{db: tx}
}

func (r *FollowRepository) GetByID(ctx context.Context, id uint64) (*gormModels.MemberFollowRequest, error) {
	var req gormModels.MemberFollowRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, wrap(err, "failed to fetch follow request %d", id)
	}
	return &req, nil
}

// GetByPair finds the request a member made to an affiliate, whatever its state
func (r *FollowRepository) GetByPair(ctx context.Context, fromMemberID, toAffiliateID uint64) (*gormModels.MemberFollowRequest, error) {
	var req gormModels.MemberFollowRequest
	err := r.db.WithContext(ctx).
		Where("from_member_id = ? AND to_affiliate_id = ?", fromMemberID, toAffiliateID).
		First(&req).Error
	if err != nil {
		return nil, wrap(err, "failed to fetch follow request %d -> %d", fromMemberID, toAffiliateID)
	}
	return &req, nil
}

func (r *FollowRepository) Create(ctx context.Context, req *gormModels.MemberFollowRequest) error {
	err := r.db.WithContext(ctx).Create(req).Error
	return wrap(err, "failed to create follow request %d -> %d", req.FromMemberID, req.ToAffiliateID)
}

// SetAccepted stores the answer; nil puts the request back to pending
func (r *FollowRepository) SetAccepted(ctx context.Context, id uint64, accepted *bool) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.MemberFollowRequest{}).
		Where("id = ?", id).
		Update("is_accepted", accepted)
	if res.Error != nil {
		return wrap(res.Error, "failed to answer follow request %d", id)
	}
	if res.RowsAffected == 0 {
		return wrap(gorm.ErrRecordNotFound, "follow request %d", id)
	}
	return nil
}

// DeleteByPair removes the request whatever its state. It reports whether a row existed.
func (r *FollowRepository) DeleteByPair(ctx context.Context, fromMemberID, toAffiliateID uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("from_member_id = ? AND to_affiliate_id = ?", fromMemberID, toAffiliateID).
		Delete(&gormModels.MemberFollowRequest{})
	if res.Error != nil {
		return false, wrap(res.Error, "failed to delete follow request %d -> %d", fromMemberID, toAffiliateID)
	}
	return res.RowsAffected > 0, nil
}

// IsAccepted reports whether the member follows the affiliate with an accepted request
func (r *FollowRepository) IsAccepted(ctx context.Context, fromMemberID, toAffiliateID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.MemberFollowRequest{}).
		Where("from_member_id = ? AND to_affiliate_id = ? AND is_accepted = ?", fromMemberID, toAffiliateID, true).
		Count(&count).Error
	if err != nil {
		return false, wrap(err, "failed to check follow %d -> %d", fromMemberID, toAffiliateID)
	}
	return count > 0, nil
}

// CounterpartMemberIDs lists the members on the other side of accepted follows:
// those following affiliateID and those whose affiliate memberID follows
func (r *FollowRepository) CounterpartMemberIDs(ctx context.Context, memberID, affiliateID uint64) ([]uint64, error) {
	var followers []uint64
	err := r.db.WithContext(ctx).
		Model(&gormModels.MemberFollowRequest{}).
		Where("to_affiliate_id = ? AND is_accepted = ?", affiliateID, true).
		Pluck("from_member_id", &followers).Error
	if err != nil {
		return nil, wrap(err, "failed to list followers of %d", affiliateID)
	}

	followed := r.db.WithContext(ctx).
		Model(&gormModels.MemberFollowRequest{}).
		Select("to_affiliate_id").
		Where("from_member_id = ? AND is_accepted = ?", memberID, true)

	var followees []uint64
	err = r.db.WithContext(ctx).
		Model(&gormModels.Member{}).
		Where("affiliate_id IN (?)", followed).
		Pluck("id", &followees).Error
	if err != nil {
		return nil, wrap(err, "failed to list followees of member %d", memberID)
	}

	return append(followers, followees...), nil
}
