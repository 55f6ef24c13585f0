package gorm

import "time"

// MemberFollowRequest links a follower member to a followee affiliate.
// IsAccepted is nil while pending, true once accepted and false when declined.
type MemberFollowRequest struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	FromMemberID  uint64    `gorm:"column:from_member_id;not null;uniqueIndex:idx_follow_pair"`
	ToAffiliateID uint64    `gorm:"column:to_affiliate_id;not null;uniqueIndex:idx_follow_pair;index"`
	IsAccepted    *bool     `gorm:"column:is_accepted"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (MemberFollowRequest) TableName() string {
	return "member_follow_request"
}

// IsPending reports whether the followee has not answered yet
func (r MemberFollowRequest) IsPending() bool {
	return r.IsAccepted == nil
}

// IsDeclined reports whether the followee rejected the request
func (r MemberFollowRequest) IsDeclined() bool {
	return r.IsAccepted != nil && !*r.IsAccepted
}

type Post struct {
	ID              uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	EntityID        uint64 `gorm:"column:entity_id;not null;uniqueIndex"`
	Body            string `gorm:"column:body;type:text;not null"`
	FromAffiliateID uint64 `gorm:"column:from_affiliate_id;not null;index"`

	// Relationships
	Entity      Entity           `gorm:"foreignKey:EntityID"`
	Memberships []PostMembership `gorm:"foreignKey:PostID"`
}

func (Post) TableName() string {
	return "post"
}

// PostMembership associates a post with its author and, optionally, a board
type PostMembership struct {
	PostID      uint64 `gorm:"column:post_id;primaryKey;autoIncrement:false"`
	AffiliateID uint64 `gorm:"column:affiliate_id;primaryKey;autoIncrement:false;index"`
}

func (PostMembership) TableName() string {
	return "post_membership"
}

type PostSaved struct {
	PostID      uint64    `gorm:"column:post_id;primaryKey;autoIncrement:false"`
	AffiliateID uint64    `gorm:"column:affiliate_id;primaryKey;autoIncrement:false;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PostSaved) TableName() string {
	return "post_saved"
}

// All lists every model in dependency order for AutoMigrate
func All() []interface{} {
	return []interface{}{
		&Entity{},
		&Affiliate{},
		&Member{},
		&MemberAuth{},
		&MemberDescription{},
		&Board{},
		&BoardDescription{},
		&MemberFollowRequest{},
		&Post{},
		&PostMembership{},
		&PostSaved{},
	}
}
