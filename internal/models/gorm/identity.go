package gorm

import "time"

// Entity is the soft-deletable root row behind every affiliate and post
type Entity struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for GORM
func (Entity) TableName() string {
	return "entity"
}

// Affiliate is the role-neutral identity shared by members and boards
type Affiliate struct {
	ID       uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	EntityID uint64 `gorm:"column:entity_id;not null;uniqueIndex"`

	// Relationships
	Entity Entity `gorm:"foreignKey:EntityID"`
}

func (Affiliate) TableName() string {
	return "affiliate"
}

type Member struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	AffiliateID uint64 `gorm:"column:affiliate_id;not null;uniqueIndex"`
	Username    string `gorm:"column:username;size:30;not null;uniqueIndex"`

	// Relationships
	Affiliate   Affiliate          `gorm:"foreignKey:AffiliateID"`
	Description *MemberDescription `gorm:"foreignKey:MemberID"`
}

func (Member) TableName() string {
	return "member"
}

// MemberAuth keeps credentials apart from identity
type MemberAuth struct {
	MemberID uint64 `gorm:"column:member_id;primaryKey;autoIncrement:false"`
	Salt     string `gorm:"column:salt;size:32;not null"`
	Hash     string `gorm:"column:hash;size:72;not null"`
}

func (MemberAuth) TableName() string {
	return "member_auth"
}

// MemberDescription is the optional profile created after registration
type MemberDescription struct {
	MemberID  uint64     `gorm:"column:member_id;primaryKey;autoIncrement:false"`
	Email     *string    `gorm:"column:email;size:254"`
	Fullname  *string    `gorm:"column:fullname;size:100"`
	Bio       *string    `gorm:"column:bio;size:500"`
	Birthdate *time.Time `gorm:"column:birthdate;type:date"`
	IsPrivate bool       `gorm:"column:is_private;not null;default:false"`
}

func (MemberDescription) TableName() string {
	return "member_description"
}

type Board struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	AffiliateID   uint64 `gorm:"column:affiliate_id;not null;uniqueIndex"`
	OwnerMemberID uint64 `gorm:"column:owner_member_id;not null;index"`
	Title         string `gorm:"column:title;size:100;not null"`

	// Relationships
	Affiliate   Affiliate         `gorm:"foreignKey:AffiliateID"`
	Description *BoardDescription `gorm:"foreignKey:BoardID"`
}

func (Board) TableName() string {
	return "board"
}

type BoardDescription struct {
	BoardID   uint64  `gorm:"column:board_id;primaryKey;autoIncrement:false"`
	About     *string `gorm:"column:about;size:500"`
	IsPrivate bool    `gorm:"column:is_private;not null;default:false"`
}

func (BoardDescription) TableName() string {
	return "board_description"
}
