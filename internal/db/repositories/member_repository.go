package repositories

import (
	"context"

	gormModels "agora/backend/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) WithTx(tx *gorm.DB) *MemberRepository {
	return &MemberRepository{db: tx}
}

// UsernameTaken counts soft-deleted members too, the unique index does
func (r *MemberRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&gormModels.Member{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, wrap(err, "failed to check username %q", username)
	}
	return count > 0, nil
}

func (r *MemberRepository) Create(ctx context.Context, member *gormModels.Member) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
	return wrap(err, "failed to create member %q", member.Username)
}

func (r *MemberRepository) CreateAuth(ctx context.Context, auth *gormModels.MemberAuth) error {
	err := r.db.WithContext(ctx).Create(auth).Error
	return wrap(err, "failed to create auth for member %d", auth.MemberID)
}

// GetByID loads a member with its affiliate and entity, active or not
func (r *MemberRepository) GetByID(ctx context.Context, memberID uint64) (*gormModels.Member, error) {
	var member gormModels.Member
	err := r.db.WithContext(ctx).
		Preload("Affiliate.Entity").
		Where("id = ?", memberID).
		First(&member).Error
	if err != nil {
		return nil, wrap(err, "failed to fetch member %d", memberID)
	}
	return &member, nil
}

func (r *MemberRepository) GetDescription(ctx context.Context, memberID uint64) (*gormModels.MemberDescription, error) {
	var desc gormModels.MemberDescription
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		First(&desc).Error
	if err != nil {
		return nil, wrap(err, "failed to fetch description of member %d", memberID)
	}
	return &desc, nil
}

func (r *MemberRepository) CreateDescription(ctx context.Context, desc *gormModels.MemberDescription) error {
	err := r.db.WithContext(ctx).Create(desc).Error
	return wrap(err, "failed to create description for member %d", desc.MemberID)
}

// UpdateDescription writes every column, zero values included
func (r *MemberRepository) UpdateDescription(ctx context.Context, desc *gormModels.MemberDescription) error {
	err := r.db.WithContext(ctx).
		Model(desc).
		Select("*").
		Updates(desc).Error
	return wrap(err, "failed to update description of member %d", desc.MemberID)
}
