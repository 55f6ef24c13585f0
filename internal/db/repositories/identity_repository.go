package repositories

import (
	"context"

	"agora/backend/internal/constants"
	"agora/backend/internal/models/entities"
	gormModels "agora/backend/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IdentityRepository writes the entity and affiliate rows every member,
// board and post hangs from
type IdentityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// WithTx binds the repository to an open transaction
func (r *IdentityRepository) WithTx(tx *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: tx}
}

// CreateEntity inserts an active entity
func (r *IdentityRepository) CreateEntity(ctx context.Context) (*gormModels.Entity, error) {
	entity := &gormModels.Entity{IsActive: true}
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, wrap(err, "failed to create entity")
	}
	return entity, nil
}

// CreateAffiliate inserts an entity and the affiliate wrapping it
func (r *IdentityRepository) CreateAffiliate(ctx context.Context) (*gormModels.Affiliate, error) {
	entity, err := r.CreateEntity(ctx)
	if err != nil {
		return nil, err
	}

	affiliate := &gormModels.Affiliate{EntityID: entity.ID}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(affiliate).Error; err != nil {
		return nil, wrap(err, "failed to create affiliate for entity %d", entity.ID)
	}
	affiliate.Entity = *entity
	return affiliate, nil
}

// Deactivate soft-deletes an entity. It reports whether a row changed.
func (r *IdentityRepository) Deactivate(ctx context.Context, entityID uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&gormModels.Entity{}).
		Where("id = ? AND is_active = ?", entityID, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, wrap(res.Error, "failed to deactivate entity %d", entityID)
	}
	return res.RowsAffected > 0, nil
}

// GetAffiliateKind resolves whether an affiliate is a member or a board,
// whether it is active and whether it is private
func (r *IdentityRepository) GetAffiliateKind(ctx context.Context, affiliateID uint64) (*entities.AffiliateKind, error) {
	var kind entities.AffiliateKind
	res := r.db.WithContext(ctx).Raw(constants.SelectAffiliateKind, false, affiliateID).Scan(&kind)
	if res.Error != nil {
		return nil, wrap(res.Error, "failed to resolve affiliate %d", affiliateID)
	}
	if res.RowsAffected == 0 {
		return nil, wrap(gorm.ErrRecordNotFound, "affiliate %d", affiliateID)
	}
	return &kind, nil
}
