package repositories

import (
	"context"

	gormModels "agora/backend/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) WithTx(tx *gorm.DB) *PostRepository {
	return &PostRepository{db: tx}
}

// Create inserts the post and one membership per affiliate
func (r *PostRepository) Create(ctx context.Context, post *gormModels.Post, affiliateIDs []uint64) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return wrap(err, "failed to create post for entity %d", post.EntityID)
	}

	memberships := make([]gormModels.PostMembership, 0, len(affiliateIDs))
	for _, id := range affiliateIDs {
		memberships = append(memberships, gormModels.PostMembership{PostID: post.ID, AffiliateID: id})
	}
	if err := r.db.WithContext(ctx).Create(&memberships).Error; err != nil {
		return wrap(err, "failed to create memberships for post %d", post.ID)
	}
	post.Memberships = memberships
	return nil
}

// GetByID loads a post with its entity, active or not
func (r *PostRepository) GetByID(ctx context.Context, postID uint64) (*gormModels.Post, error) {
	var post gormModels.Post
	err := r.db.WithContext(ctx).
		Preload("Entity").
		Where("id = ?", postID).
		First(&post).Error
	if err != nil {
		return nil, wrap(err, "failed to fetch post %d", postID)
	}
	return &post, nil
}

// ToggleSaved adds or removes the bookmark and returns the new state
func (r *PostRepository) ToggleSaved(ctx context.Context, postID, affiliateID uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND affiliate_id = ?", postID, affiliateID).
		Delete(&gormModels.PostSaved{})
	if res.Error != nil {
		return false, wrap(res.Error, "failed to unsave post %d", postID)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	saved := &gormModels.PostSaved{PostID: postID, AffiliateID: affiliateID}
	if err := r.db.WithContext(ctx).Create(saved).Error; err != nil {
		return false, wrap(err, "failed to save post %d", postID)
	}
	return true, nil
}
