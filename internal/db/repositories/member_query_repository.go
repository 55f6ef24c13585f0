package repositories

import (
	"context"

	"agora/backend/internal/constants"
	"agora/backend/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// MemberQueryRepository serves the joined member read models
type MemberQueryRepository struct {
	db *sqlx.DB
}

func NewMemberQueryRepository(db *sqlx.DB) *MemberQueryRepository {
	return &MemberQueryRepository{db: db}
}

func extendedArgs(extra ...any) []any {
	return append([]any{false, true, true, true, true, true}, extra...)
}

func (r *MemberQueryRepository) ListExtended(ctx context.Context) ([]entities.MemberExtended, error) {
	members := []entities.MemberExtended{}
	query := r.db.Rebind(constants.SelectMemberExtended + " ORDER BY m.id")
	if err := r.db.SelectContext(ctx, &members, query, extendedArgs()...); err != nil {
		return nil, wrap(err, "failed to list members")
	}
	return members, nil
}

func (r *MemberQueryRepository) GetExtendedByID(ctx context.Context, memberID uint64) (*entities.MemberExtended, error) {
	var member entities.MemberExtended
	query := r.db.Rebind(constants.SelectMemberExtended + " AND m.id = ?")
	if err := r.db.GetContext(ctx, &member, query, extendedArgs(memberID)...); err != nil {
		return nil, wrap(err, "failed to fetch member %d", memberID)
	}
	return &member, nil
}

func (r *MemberQueryRepository) GetExtendedByUsername(ctx context.Context, username string) (*entities.MemberExtended, error) {
	var member entities.MemberExtended
	query := r.db.Rebind(constants.SelectMemberExtended + " AND m.username = ?")
	if err := r.db.GetContext(ctx, &member, query, extendedArgs(username)...); err != nil {
		return nil, wrap(err, "failed to fetch member %q", username)
	}
	return &member, nil
}

// GetCredentials returns the login row, including soft-deleted members
func (r *MemberQueryRepository) GetCredentials(ctx context.Context, username string) (*entities.Credentials, error) {
	var creds entities.Credentials
	query := r.db.Rebind(constants.SelectCredentialsByUsername)
	if err := r.db.GetContext(ctx, &creds, query, username); err != nil {
		return nil, wrap(err, "failed to fetch credentials for %q", username)
	}
	return &creds, nil
}
