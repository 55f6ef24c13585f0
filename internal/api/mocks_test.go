package api

import (
	"context"

	"agora/backend/internal/auth"
	"agora/backend/internal/models/dtos"
	"agora/backend/internal/models/entities"
)

// Each mock embeds its interface so calling an unset method panics loudly.

type mockMembers struct {
	MemberAPI
	loginFunc         func(ctx context.Context, req dtos.MemberLoginReq) (*dtos.SessionPayload, error)
	createMinimalFunc func(ctx context.Context, req dtos.MemberLoginReq) (*dtos.RegisteredPayload, error)
	createFullFunc    func(ctx context.Context, req dtos.RegisterFullReq) (*dtos.RegisteredPayload, error)
	createDescFunc    func(ctx context.Context, memberID uint64, req dtos.MemberDescriptionReq) error
	updateDescFunc    func(ctx context.Context, session *auth.SessionClaims, memberID uint64, req dtos.MemberDescriptionReq) error
	getExtendedFunc   func(ctx context.Context) ([]entities.MemberExtended, error)
	getByIDFunc       func(ctx context.Context, memberID uint64) (*entities.MemberExtended, error)
	getByUsernameFunc func(ctx context.Context, consultantMemberID uint64, username string) (*entities.MemberFromMemberPov, error)
	deleteMemberFunc  func(ctx context.Context, session *auth.SessionClaims, memberID uint64) error
}

func (m *mockMembers) Login(ctx context.Context, req dtos.MemberLoginReq) (*dtos.SessionPayload, error) {
	return m.loginFunc(ctx, req)
}

func (m *mockMembers) CreateMinimalMember(ctx context.Context, req dtos.MemberLoginReq) (*dtos.RegisteredPayload, error) {
	return m.createMinimalFunc(ctx, req)
}

func (m *mockMembers) CreateFullMember(ctx context.Context, req dtos.RegisterFullReq) (*dtos.RegisteredPayload, error) {
	return m.createFullFunc(ctx, req)
}

func (m *mockMembers) CreateMemberDescription(ctx context.Context, memberID uint64, req dtos.MemberDescriptionReq) error {
	return m.createDescFunc(ctx, memberID, req)
}

func (m *mockMembers) UpdateMemberDescription(ctx context.Context, session *auth.SessionClaims, memberID uint64, req dtos.MemberDescriptionReq) error {
	return m.updateDescFunc(ctx, session, memberID, req)
}

func (m *mockMembers) GetExtended(ctx context.Context) ([]entities.MemberExtended, error) {
	return m.getExtendedFunc(ctx)
}

func (m *mockMembers) GetExtendedByID(ctx context.Context, memberID uint64) (*entities.MemberExtended, error) {
	return m.getByIDFunc(ctx, memberID)
}

func (m *mockMembers) GetFromMemberPovByUsername(ctx context.Context, consultantMemberID uint64, username string) (*entities.MemberFromMemberPov, error) {
	return m.getByUsernameFunc(ctx, consultantMemberID, username)
}

func (m *mockMembers) DeleteMember(ctx context.Context, session *auth.SessionClaims, memberID uint64) error {
	return m.deleteMemberFunc(ctx, session, memberID)
}

type mockFollows struct {
	FollowAPI
	followFunc  func(ctx context.Context, fromMemberID, toAffiliateID uint64) (*dtos.FollowResult, error)
	acceptFunc  func(ctx context.Context, session *auth.SessionClaims, id uint64) error
	declineFunc func(ctx context.Context, session *auth.SessionClaims, id uint64) error
	followers   func(ctx context.Context, affiliateID uint64) ([]entities.FollowListing, error)
}

func (m *mockFollows) Follow(ctx context.Context, fromMemberID, toAffiliateID uint64) (*dtos.FollowResult, error) {
	return m.followFunc(ctx, fromMemberID, toAffiliateID)
}

func (m *mockFollows) Accept(ctx context.Context, session *auth.SessionClaims, id uint64) error {
	return m.acceptFunc(ctx, session, id)
}

func (m *mockFollows) Decline(ctx context.Context, session *auth.SessionClaims, id uint64) error {
	return m.declineFunc(ctx, session, id)
}

func (m *mockFollows) GetFollowers(ctx context.Context, affiliateID uint64) ([]entities.FollowListing, error) {
	return m.followers(ctx, affiliateID)
}

type mockPosts struct {
	PostAPI
	createFunc func(ctx context.Context, session *auth.SessionClaims, req dtos.CreatePostReq) (*dtos.PostCreated, error)
	deleteFunc func(ctx context.Context, affiliateID, postID uint64) error
	switchFunc func(ctx context.Context, affiliateID, postID uint64) (*dtos.SavedState, error)
}

func (m *mockPosts) CreatePost(ctx context.Context, session *auth.SessionClaims, req dtos.CreatePostReq) (*dtos.PostCreated, error) {
	return m.createFunc(ctx, session, req)
}

func (m *mockPosts) DeletePost(ctx context.Context, affiliateID, postID uint64) error {
	return m.deleteFunc(ctx, affiliateID, postID)
}

func (m *mockPosts) SwitchSaved(ctx context.Context, affiliateID, postID uint64) (*dtos.SavedState, error) {
	return m.switchFunc(ctx, affiliateID, postID)
}

type mockFeed struct {
	FeedAPI
	getFunc func(ctx context.Context, session *auth.SessionClaims, page dtos.Page) ([]entities.FeedPost, error)
}

func (m *mockFeed) Get(ctx context.Context, session *auth.SessionClaims, page dtos.Page) ([]entities.FeedPost, error) {
	return m.getFunc(ctx, session, page)
}

type mockBoards struct {
	BoardAPI
	getFunc func(ctx context.Context, boardID uint64) (*entities.BoardExtended, error)
}

func (m *mockBoards) GetBoard(ctx context.Context, boardID uint64) (*entities.BoardExtended, error) {
	return m.getFunc(ctx, boardID)
}
