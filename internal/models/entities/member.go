package entities

import "time"

// MemberExtended is the public profile row with follow counters
type MemberExtended struct {
	EntityID    uint64     `db:"entity_id" json:"entity_id"`
	AffiliateID uint64     `db:"affiliate_id" json:"affiliate_id"`
	MemberID    uint64     `db:"member_id" json:"member_id"`
	Username    string     `db:"username" json:"username"`
	Email       *string    `db:"email" json:"email"`
	Fullname    *string    `db:"fullname" json:"fullname"`
	Bio         *string    `db:"bio" json:"bio"`
	Birthdate   *time.Time `db:"birthdate" json:"birthdate"`
	IsPrivate   bool       `db:"is_private" json:"is_private"`
	HasDesc     bool       `db:"has_description" json:"has_description"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	Followees   int64      `db:"followees" json:"followees"`
	Followers   int64      `db:"followers" json:"followers"`
}

// MemberFromMemberPov is a profile as seen by another member (the consultant)
type MemberFromMemberPov struct {
	FollowRequestedByConsultant bool       `json:"follow_requested_by_consultant"`
	IsConsultantAllowed         bool       `json:"is_consultant_allowed"`
	ConsultantMemberID          uint64     `json:"consultant_member_id"`
	MemberID                    uint64     `json:"member_id"`
	Username                    string     `json:"username"`
	AffiliateID                 uint64     `json:"affiliate_id"`
	Fullname                    *string    `json:"fullname"`
	Bio                         *string    `json:"bio"`
	Birthdate                   *time.Time `json:"birthdate"`
	IsPrivate                   bool       `json:"is_private"`
	Followees                   int64      `json:"followees"`
	Followers                   int64      `json:"followers"`
	CreatedAt                   time.Time  `json:"created_at"`
}

// Credentials is the login lookup row
type Credentials struct {
	EntityID    uint64 `db:"entity_id"`
	AffiliateID uint64 `db:"affiliate_id"`
	MemberID    uint64 `db:"member_id"`
	IsActive    bool   `db:"is_active"`
	Salt        string `db:"salt"`
	Hash        string `db:"hash"`
}

// AffiliateKind tells what sits behind an affiliate and whether it is private
type AffiliateKind struct {
	AffiliateID   uint64  `db:"affiliate_id"`
	IsActive      bool    `db:"is_active"`
	MemberID      *uint64 `db:"member_id"`
	BoardID       *uint64 `db:"board_id"`
	OwnerMemberID *uint64 `db:"owner_member_id"`
	IsPrivate     bool    `db:"is_private"`
}

func (a AffiliateKind) IsMember() bool { return a.MemberID != nil }
func (a AffiliateKind) IsBoard() bool  { return a.BoardID != nil }

// OwnedBy reports whether the member is the affiliate itself or owns the board
func (a AffiliateKind) OwnedBy(memberID uint64) bool {
	if a.MemberID != nil && *a.MemberID == memberID {
		return true
	}
	return a.OwnerMemberID != nil && *a.OwnerMemberID == memberID
}
