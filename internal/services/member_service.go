package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"agora/backend/internal/auth"
	"agora/backend/internal/common"
	"agora/backend/internal/constants"
	"agora/backend/internal/db/repositories"
	"agora/backend/internal/events"
	"agora/backend/internal/logging"
	"agora/backend/internal/metrics"
	"agora/backend/internal/models/dtos"
	"agora/backend/internal/models/entities"
	gormModels "agora/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// MemberService owns registration, credentials and member profiles
type MemberService struct {
	db         *gorm.DB
	identities *repositories.IdentityRepository
	members    *repositories.MemberRepository
	follows    *repositories.FollowRepository
	queries    *repositories.MemberQueryRepository

	tokens    *auth.TokenManager
	sessions  *common.SessionService
	cache     *common.CacheLoader
	publisher events.Publisher
	metrics   *metrics.MetricsRegistry
}

func NewMemberService(
	store Store,
	tokens *auth.TokenManager,
	sessions *common.SessionService,
	cache *common.CacheLoader,
	publisher events.Publisher,
	m *metrics.MetricsRegistry,
) *MemberService {
	return &MemberService{
		db:         store.DB,
		identities: repositories.NewIdentityRepository(store.DB),
		members:    repositories.NewMemberRepository(store.DB),
		follows:    repositories.NewFollowRepository(store.DB),
		queries:    repositories.NewMemberQueryRepository(store.SQL),
		tokens:     tokens,
		sessions:   sessions,
		cache:      cache,
		publisher:  publisher,
		metrics:    m,
	}
}

type credentials struct {
	salt string
	hash string
}

func newCredentials(password string) (*credentials, error) {
	salt, err := auth.NewSalt()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(password, salt)
	if err != nil {
		return nil, err
	}
	return &credentials{salt: salt, hash: hash}, nil
}

func validateLogin(req dtos.MemberLoginReq) error {
	if req.Username == "" || req.Password == "" {
		return newError(KindInvalid, constants.MsgEmptyFields)
	}
	if !ValidUsername(req.Username) {
		return newError(KindInvalid, "Username must be 3 to 30 letters, digits or underscores and not only digits")
	}
	if len(req.Password) < 6 || len(req.Password) > 56 {
		return newError(KindInvalid, "Password must be between 6 and 56 characters")
	}
	return nil
}

// applyDescription patches desc with the fields present in req
func applyDescription(desc *gormModels.MemberDescription, req dtos.MemberDescriptionReq) error {
	if req.Email != nil {
		desc.Email = emptyToNil(req.Email)
	}
	if req.Fullname != nil {
		desc.Fullname = emptyToNil(req.Fullname)
	}
	if req.Bio != nil {
		desc.Bio = emptyToNil(req.Bio)
	}
	if req.Birthdate != nil {
		if raw := emptyToNil(req.Birthdate); raw == nil {
			desc.Birthdate = nil
		} else {
			parsed, err := time.Parse(constants.DateLayout, *raw)
			if err != nil {
				return newError(KindInvalid, constants.MsgInvalidBirthdate)
			}
			desc.Birthdate = &parsed
		}
	}
	if req.IsPrivate != nil {
		desc.IsPrivate = *req.IsPrivate
	}
	return nil
}

// createMember runs entity -> affiliate -> member -> auth inside tx
func (s *MemberService) createMember(ctx context.Context, tx *gorm.DB, username string, creds *credentials) (*dtos.MemberIdentity, error) {
	members := s.members.WithTx(tx)

	taken, err := members.UsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, newError(KindInvalid, constants.MsgUsernameTaken)
	}

	affiliate, err := s.identities.WithTx(tx).CreateAffiliate(ctx)
	if err != nil {
		return nil, err
	}

	member := &gormModels.Member{AffiliateID: affiliate.ID, Username: username}
	if err := members.Create(ctx, member); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newError(KindInvalid, constants.MsgUsernameTaken)
		}
		return nil, err
	}

	if err := members.CreateAuth(ctx, &gormModels.MemberAuth{
		MemberID: member.ID,
		Salt:     creds.salt,
		Hash:     creds.hash,
	}); err != nil {
		return nil, err
	}

	return &dtos.MemberIdentity{
		EntityID:    affiliate.EntityID,
		AffiliateID: affiliate.ID,
		MemberID:    member.ID,
	}, nil
}

// CreateMinimalMember registers a member with credentials only
func (s *MemberService) CreateMinimalMember(ctx context.Context, req dtos.MemberLoginReq) (*dtos.RegisteredPayload, error) {
	return s.register(ctx, req, nil)
}

// CreateFullMember registers a member and its description in one transaction
func (s *MemberService) CreateFullMember(ctx context.Context, req dtos.RegisterFullReq) (*dtos.RegisteredPayload, error) {
	return s.register(ctx, req.MemberLoginReq, &req.MemberDescriptionReq)
}

func (s *MemberService) register(ctx context.Context, login dtos.MemberLoginReq, descReq *dtos.MemberDescriptionReq) (*dtos.RegisteredPayload, error) {
	if err := validateLogin(login); err != nil {
		return nil, err
	}

	var desc *gormModels.MemberDescription
	if descReq != nil {
		desc = &gormModels.MemberDescription{}
		if err := applyDescription(desc, *descReq); err != nil {
			return nil, err
		}
	}

	// bcrypt is slow, hash before opening the transaction
	creds, err := newCredentials(login.Password)
	if err != nil {
		return nil, err
	}

	var identity *dtos.MemberIdentity
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		identity, err = s.createMember(ctx, tx, login.Username, creds)
		if err != nil {
			return err
		}
		if desc != nil {
			desc.MemberID = identity.MemberID
			return s.members.WithTx(tx).CreateDescription(ctx, desc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, memberListCacheKey())
	s.metrics.MemberRegistered()
	publish(ctx, s.publisher, constants.EventMemberRegistered, strconv.FormatUint(identity.MemberID, 10), map[string]any{
		"member_id":    identity.MemberID,
		"affiliate_id": identity.AffiliateID,
		"username":     login.Username,
	})
	logging.Info("Member registered", "member_id", identity.MemberID, "username", login.Username, "with_description", desc != nil)

	access, err := s.issue(auth.Identity{
		EntityID:    identity.EntityID,
		AffiliateID: identity.AffiliateID,
		MemberID:    identity.MemberID,
		Username:    login.Username,
	})
	if err != nil {
		return nil, err
	}
	return &dtos.RegisteredPayload{MemberIdentity: *identity, SessionAccess: *access}, nil
}

// CreateMemberDescription adds the optional profile step; it fails if one exists
func (s *MemberService) CreateMemberDescription(ctx context.Context, memberID uint64, req dtos.MemberDescriptionReq) error {
	desc := &gormModels.MemberDescription{MemberID: memberID}
	if err := applyDescription(desc, req); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		members := s.members.WithTx(tx)
		member, err := members.GetByID(ctx, memberID)
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, constants.MsgMemberNotFound)
		}
		if err != nil {
			return err
		}
		if !member.Affiliate.Entity.IsActive {
			return newError(KindNotFound, constants.MsgMemberNotFound)
		}

		if _, err := members.GetDescription(ctx, memberID); err == nil {
			return newError(KindConflict, constants.MsgDescriptionExists)
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		if err := members.CreateDescription(ctx, desc); err != nil {
			if errors.Is(err, repositories.ErrDuplicate) {
				return newError(KindConflict, constants.MsgDescriptionExists)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, memberCacheKey(memberID), memberListCacheKey())
	return nil
}

// UpdateMemberDescription patches the session member's own description,
// creating it when the member skipped that step
func (s *MemberService) UpdateMemberDescription(ctx context.Context, session *auth.SessionClaims, memberID uint64, req dtos.MemberDescriptionReq) error {
	if session == nil || session.MemberID != memberID {
		return newError(KindUnauthorized, constants.MsgSessionIDMismatch)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireActiveAffiliate(ctx, s.identities.WithTx(tx), session.AffiliateID); err != nil {
			return err
		}
		members := s.members.WithTx(tx)

		desc, err := members.GetDescription(ctx, memberID)
		if errors.Is(err, repositories.ErrNotFound) {
			desc = &gormModels.MemberDescription{MemberID: memberID}
			if err := applyDescription(desc, req); err != nil {
				return err
			}
			return members.CreateDescription(ctx, desc)
		}
		if err != nil {
			return err
		}

		if err := applyDescription(desc, req); err != nil {
			return err
		}
		return members.UpdateDescription(ctx, desc)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx, memberCacheKey(memberID), memberListCacheKey())
	return nil
}

// CheckCredentials authenticates a username/password pair
func (s *MemberService) CheckCredentials(ctx context.Context, req dtos.MemberLoginReq) (*dtos.SessionData, error) {
	if req.Username == "" || req.Password == "" {
		return nil, newError(KindInvalid, constants.MsgEmptyFields)
	}

	creds, err := s.queries.GetCredentials(ctx, req.Username)
	if errors.Is(err, repositories.ErrNotFound) {
		s.metrics.Login(false)
		return nil, newError(KindUnauthorized, constants.MsgUnknownUsername)
	}
	if err != nil {
		return nil, err
	}
	if !creds.IsActive {
		s.metrics.Login(false)
		return nil, newError(KindUnauthorized, constants.MsgMemberInactive)
	}
	if !auth.CheckPassword(req.Password, creds.Salt, creds.Hash) {
		s.metrics.Login(false)
		return nil, newError(KindUnauthorized, constants.MsgBadCredentials)
	}

	member, err := s.queries.GetExtendedByID(ctx, creds.MemberID)
	if err != nil {
		return nil, err
	}

	s.metrics.Login(true)
	return sessionData(member), nil
}

// Login checks credentials and issues a token
func (s *MemberService) Login(ctx context.Context, req dtos.MemberLoginReq) (*dtos.SessionPayload, error) {
	data, err := s.CheckCredentials(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.sessionPayload(data)
}

// Reauth reloads the session member and renews the token
func (s *MemberService) Reauth(ctx context.Context, session *auth.SessionClaims) (*dtos.SessionPayload, error) {
	if session == nil {
		return nil, newError(KindUnauthorized, constants.MsgWrongCredentials)
	}
	member, err := s.queries.GetExtendedByID(ctx, session.MemberID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(KindUnauthorized, constants.MsgWrongCredentials)
	}
	if err != nil {
		return nil, err
	}
	return s.sessionPayload(sessionData(member))
}

// Logout revokes the session token until it expires
func (s *MemberService) Logout(ctx context.Context, session *auth.SessionClaims) error {
	if session == nil || session.ExpiresAt == nil {
		return newError(KindUnauthorized, constants.MsgWrongCredentials)
	}
	return s.sessions.Revoke(ctx, session.TokenID(), session.ExpiresAt.Time)
}

func sessionData(m *entities.MemberExtended) *dtos.SessionData {
	return &dtos.SessionData{
		MemberIdentity: dtos.MemberIdentity{
			EntityID:    m.EntityID,
			AffiliateID: m.AffiliateID,
			MemberID:    m.MemberID,
		},
		Username:       m.Username,
		HasDescription: m.HasDesc,
		IsActive:       true,
		IsPrivate:      m.IsPrivate,
	}
}

func (s *MemberService) sessionPayload(data *dtos.SessionData) (*dtos.SessionPayload, error) {
	access, err := s.issue(auth.Identity{
		EntityID:    data.EntityID,
		AffiliateID: data.AffiliateID,
		MemberID:    data.MemberID,
		Username:    data.Username,
	})
	if err != nil {
		return nil, err
	}
	return &dtos.SessionPayload{SessionData: *data, SessionAccess: *access}, nil
}

func (s *MemberService) issue(id auth.Identity) (*dtos.SessionAccess, error) {
	token, claims, err := s.tokens.Issue(id)
	if err != nil {
		return nil, err
	}
	return &dtos.SessionAccess{Token: token, ExpiresIn: claims.ExpiresIn}, nil
}

// GetExtended lists every active member
func (s *MemberService) GetExtended(ctx context.Context) ([]entities.MemberExtended, error) {
	return common.GetOrLoad(ctx, s.cache, memberListCacheKey(), s.queries.ListExtended)
}

// WarmMemberList drops and reloads the cached member directory
func (s *MemberService) WarmMemberList(ctx context.Context) (int, error) {
	s.cache.Invalidate(ctx, memberListCacheKey())
	members, err := s.GetExtended(ctx)
	if err != nil {
		return 0, err
	}
	return len(members), nil
}

func (s *MemberService) GetExtendedByID(ctx context.Context, memberID uint64) (*entities.MemberExtended, error) {
	member, err := common.GetOrLoad(ctx, s.cache, memberCacheKey(memberID), func(ctx context.Context) (*entities.MemberExtended, error) {
		return s.queries.GetExtendedByID(ctx, memberID)
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(KindNotFound, constants.MsgMemberNotFound)
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

// GetFromMemberPovByUsername returns a profile as the consultant may see it
func (s *MemberService) GetFromMemberPovByUsername(ctx context.Context, consultantMemberID uint64, username string) (*entities.MemberFromMemberPov, error) {
	target, err := s.queries.GetExtendedByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, newError(KindNotFound, constants.MsgUnknownUsername)
	}
	if err != nil {
		return nil, err
	}

	pov := &entities.MemberFromMemberPov{
		ConsultantMemberID: consultantMemberID,
		MemberID:           target.MemberID,
		Username:           target.Username,
		AffiliateID:        target.AffiliateID,
		Fullname:           target.Fullname,
		Bio:                target.Bio,
		Birthdate:          target.Birthdate,
		IsPrivate:          target.IsPrivate,
		Followees:          target.Followees,
		Followers:          target.Followers,
		CreatedAt:          target.CreatedAt,
	}

	accepted := false
	req, err := s.follows.GetByPair(ctx, consultantMemberID, target.AffiliateID)
	switch {
	case err == nil:
		pov.FollowRequestedByConsultant = !req.IsDeclined()
		accepted = req.IsAccepted != nil && *req.IsAccepted
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, err
	}

	pov.IsConsultantAllowed = !target.IsPrivate || target.MemberID == consultantMemberID || accepted
	if !pov.IsConsultantAllowed {
		pov.Bio = nil
		pov.Birthdate = nil
	}
	return pov, nil
}

// DeleteMember soft-deletes the session member and revokes the token used.
// Other tokens of the member are refused by the active-session checks.
func (s *MemberService) DeleteMember(ctx context.Context, session *auth.SessionClaims, memberID uint64) error {
	if session == nil || session.MemberID != memberID {
		return newError(KindUnauthorized, constants.MsgSessionIDMismatch)
	}

	var counterparts []uint64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := s.members.WithTx(tx).GetByID(ctx, memberID)
		if errors.Is(err, repositories.ErrNotFound) {
			return newError(KindNotFound, constants.MsgMemberNotFound)
		}
		if err != nil {
			return err
		}

		counterparts, err = s.follows.WithTx(tx).CounterpartMemberIDs(ctx, memberID, member.AffiliateID)
		if err != nil {
			return err
		}

		changed, err := s.identities.WithTx(tx).Deactivate(ctx, member.Affiliate.EntityID)
		if err != nil {
			return err
		}
		if !changed {
			return newError(KindNotFound, constants.MsgMemberNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// followers and followees of the member show one less in their counters
	keys := []string{memberCacheKey(memberID), memberListCacheKey()}
	for _, id := range counterparts {
		keys = append(keys, memberCacheKey(id))
	}
	s.cache.Invalidate(ctx, keys...)
	if err := s.Logout(ctx, session); err != nil {
		return fmt.Errorf("member %d deleted but token revocation failed: %w", memberID, err)
	}
	logging.Info("Member deleted", "member_id", memberID)
	return nil
}
