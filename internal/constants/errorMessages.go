package constants

const (
	MsgEmptyFields        = "There's empty required fields"
	MsgServerError        = "Server Error"
	MsgNoAuthToken        = "No auth token provided"
	MsgWrongCredentials   = "Wrong/expired credentials"
	MsgSessionIDMismatch  = "Session's member ID and passed ID don't match"
	MsgTooManyRequests    = "Too many requests"
	MsgInvalidRequestBody = "Invalid request body"
	MsgInvalidFields      = "Invalid fields"
	MsgInvalidPagination  = "limit and offset must be non-negative integers"
)

const (
	MsgUsernameTaken       = "Username is already used"
	MsgUnknownUsername     = "Could not find a member with that username"
	MsgBadCredentials      = "Could not authenticate because the credentials are wrong"
	MsgMemberInactive      = "This member has been deleted"
	MsgMemberNotFound      = "Could not find a member with that ID"
	MsgDescriptionExists   = "Member already has a description"
	MsgCannotFollowSelf    = "You cannot follow yourself"
	MsgAffiliateNotFound   = "Could not find an affiliate with that ID"
	MsgAlreadyFollowing    = "Already following or requested"
	MsgFollowNotFound      = "Could not find a follow request"
	MsgFollowNotPending    = "The follow request was already answered"
	MsgFollowNotYours      = "This follow request is not addressed to you"
	MsgPrivateAffiliate    = "This profile is private"
	MsgBoardNotFound       = "Could not find a board with that ID"
	MsgBoardForbidden      = "You are not allowed to post on this board"
	MsgPostNotFound        = "Could not find a post with that ID"
	MsgPostNotDeleted      = "Could not delete the post"
	MsgInvalidBirthdate    = "Birthdate must use the YYYY-MM-DD format"
	MsgFollowerInactive    = "Your account is no longer active"
	MsgNotAMemberAffiliate = "Only members follow other affiliates"
)
