package entities

import "time"

// FollowListing is one row of a followers, followees or pending-requests list
type FollowListing struct {
	FollowRequestID       uint64  `db:"follow_request_id" json:"follow_request_id"`
	AffiliateID           uint64  `db:"affiliate_id" json:"affiliate_id"`
	Username              *string `db:"username" json:"username"`
	Fullname              *string `db:"fullname" json:"fullname"`
	Title                 *string `db:"title" json:"title,omitempty"`
	ConsultantAffiliateID uint64  `db:"consultant_affiliate_id" json:"consultant_affiliate_id"`
}

// FeedPost is a post row decorated with author, board and consultant data
type FeedPost struct {
	PostID                    uint64    `db:"post_id" json:"post_id"`
	Body                      string    `db:"body" json:"body"`
	CreatedAt                 time.Time `db:"created_at" json:"created_at"`
	TimesSaved                int64     `db:"times_saved" json:"times_saved"`
	ConsultantAffiliateID     uint64    `db:"consultant_affiliate_id" json:"consultant_affiliate_id"`
	SavedByConsultant         bool      `db:"saved_by_consultant" json:"saved_by_consultant"`
	PostMembershipAffiliateID uint64    `db:"post_membership_affiliate_id" json:"post_membership_affiliate_id"`
	MemberAffiliateID         uint64    `db:"member_affiliate_id" json:"member_affiliate_id"`
	Fullname                  *string   `db:"fullname" json:"fullname"`
	Username                  string    `db:"username" json:"username"`
	MemberIsPrivate           bool      `db:"member_is_private" json:"member_is_private"`
	MemberFollowees           int64     `db:"member_followees" json:"member_followees"`
	MemberFollowers           int64     `db:"member_followers" json:"member_followers"`
	BoardAffiliateID          *uint64   `db:"board_affiliate_id" json:"board_affiliate_id"`
	Title                     *string   `db:"title" json:"title"`
	About                     *string   `db:"about" json:"about"`
	BoardIsPrivate            *bool     `db:"board_is_private" json:"board_is_private"`
	BoardFollowers            *int64    `db:"board_followers" json:"board_followers"`
}

// BoardExtended is a board with its description and follower count
type BoardExtended struct {
	EntityID      uint64    `db:"entity_id" json:"entity_id"`
	AffiliateID   uint64    `db:"affiliate_id" json:"affiliate_id"`
	BoardID       uint64    `db:"board_id" json:"board_id"`
	OwnerMemberID uint64    `db:"owner_member_id" json:"owner_member_id"`
	Title         string    `db:"title" json:"title"`
	About         *string   `db:"about" json:"about"`
	IsPrivate     bool      `db:"is_private" json:"is_private"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	Followers     int64     `db:"followers" json:"followers"`
}
