package dtos

// MemberLoginReq is used for login and minimal registration
type MemberLoginReq struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=6,max=56"`
}

// MemberDescriptionReq carries the optional profile fields. Nil means "not sent".
type MemberDescriptionReq struct {
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	Fullname  *string `json:"fullname" validate:"omitempty,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	Birthdate *string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	IsPrivate *bool   `json:"is_private"`
}

// RegisterFullReq creates a member and its description in one request
type RegisterFullReq struct {
	MemberLoginReq
	MemberDescriptionReq
}

type CreatePostReq struct {
	Body        string  `json:"body" validate:"required,min=1,max=1000"`
	AffiliateID *uint64 `json:"affiliate_id" validate:"omitempty,gt=0"`
}

type CreateBoardReq struct {
	Title     string  `json:"title" validate:"required,min=1,max=100"`
	About     *string `json:"about" validate:"omitempty,max=500"`
	IsPrivate bool    `json:"is_private"`
}

// Page is the limit/offset pair read from the query string
type Page struct {
	Limit  int
	Offset int
}
