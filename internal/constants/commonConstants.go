package constants

import "time"

type (
	CachePrefix string
	EventType   string
)

const (
	CachePrefixMember       CachePrefix = "MEMBER_"
	CachePrefixMemberList   CachePrefix = "MEMBER_LIST"
	CachePrefixRevokedToken CachePrefix = "REVOKED_JTI_"
)

const (
	EventMemberRegistered EventType = "member.registered"
	EventFollowRequested  EventType = "follow.requested"
	EventFollowAccepted   EventType = "follow.accepted"
	EventFollowDeclined   EventType = "follow.declined"
	EventPostCreated      EventType = "post.created"
)

const (
	SaltLength      = 16
	BcryptCost      = 10
	DefaultPageSize = 20
	MaxPageSize     = 100
	DBPingTimeout   = 2 * time.Second
	DateLayout      = "2006-01-02"
)
