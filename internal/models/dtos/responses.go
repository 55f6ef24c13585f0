package dtos

// Responses keep the tagged shapes the web client already consumes:
// a boolean discriminator plus either a payload or a message.

type MessageResponse struct {
	Message string `json:"message"`
}

type CreatedResponse[T any] struct {
	Created bool   `json:"created"`
	Message string `json:"message,omitempty"`
	Payload *T     `json:"payload,omitempty"`
}

type FoundResponse[T any] struct {
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
	Payload *T     `json:"payload,omitempty"`
}

type DoneResponse[T any] struct {
	Done    bool   `json:"done"`
	Message string `json:"message,omitempty"`
	Payload *T     `json:"payload,omitempty"`
}

type DeletedResponse struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message,omitempty"`
}

type AuthenticatedResponse[T any] struct {
	Authenticated bool   `json:"authenticated"`
	Message       string `json:"message,omitempty"`
	Payload       *T     `json:"payload,omitempty"`
}

// MemberIdentity is returned by the registration chains
type MemberIdentity struct {
	EntityID    uint64 `json:"entity_id"`
	AffiliateID uint64 `json:"affiliate_id"`
	MemberID    uint64 `json:"member_id"`
}

// SessionData describes the logged-in member
type SessionData struct {
	MemberIdentity
	Username       string `json:"username"`
	HasDescription bool   `json:"has_description"`
	IsActive       bool   `json:"is_active"`
	IsPrivate      bool   `json:"is_private"`
}

// SessionAccess is the issued bearer token
type SessionAccess struct {
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn"`
}

type SessionPayload struct {
	SessionData
	SessionAccess
}

type FollowResult struct {
	FollowRequestID uint64 `json:"follow_request_id"`
	IsAccepted      bool   `json:"is_accepted"`
}

type AffiliateRef struct {
	AffiliateID uint64 `json:"affiliate_id"`
}

type PostCreated struct {
	Affiliates []AffiliateRef `json:"affiliates"`
	EntityID   uint64         `json:"entity_id"`
	PostID     uint64         `json:"post_id"`
}

type SavedState struct {
	Saved bool `json:"saved"`
}

type BoardCreated struct {
	EntityID    uint64 `json:"entity_id"`
	AffiliateID uint64 `json:"affiliate_id"`
	BoardID     uint64 `json:"board_id"`
}

// RegisteredPayload is returned by both registration chains
type RegisteredPayload struct {
	MemberIdentity
	SessionAccess
}
