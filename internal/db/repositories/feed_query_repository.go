package repositories

import (
	"context"
	"fmt"

	"agora/backend/internal/constants"
	"agora/backend/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// Consultant identifies the member reading the feed
type Consultant struct {
	AffiliateID uint64
	MemberID    uint64
}

type FeedQueryRepository struct {
	db *sqlx.DB
}

func NewFeedQueryRepository(db *sqlx.DB) *FeedQueryRepository {
	return &FeedQueryRepository{db: db}
}

func (r *FeedQueryRepository) selectPosts(ctx context.Context, c Consultant, filter string, filterArgs []any, limit, offset int) ([]entities.FeedPost, error) {
	args := []any{c.AffiliateID, false, true, true, true, true, true, true, true, true}
	args = append(args, filterArgs...)
	args = append(args, limit, offset)

	posts := []entities.FeedPost{}
	query := r.db.Rebind(fmt.Sprintf(constants.SelectFeedPosts, filter))
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].ConsultantAffiliateID = c.AffiliateID
	}
	return posts, nil
}

// Home returns the consultant's own posts and those of followed members and boards,
// minus posts shared to private boards the consultant cannot open
func (r *FeedQueryRepository) Home(ctx context.Context, c Consultant, limit, offset int) ([]entities.FeedPost, error) {
	posts, err := r.selectPosts(ctx, c, constants.FeedFilterHome,
		[]any{c.AffiliateID, c.MemberID, true, c.MemberID, true, c.AffiliateID, c.MemberID, c.MemberID, true}, limit, offset)
	return posts, wrap(err, "failed to load feed of %d", c.AffiliateID)
}

// ByAffiliate returns posts with a membership to the affiliate
func (r *FeedQueryRepository) ByAffiliate(ctx context.Context, c Consultant, affiliateID uint64, limit, offset int) ([]entities.FeedPost, error) {
	posts, err := r.selectPosts(ctx, c, constants.FeedFilterAffiliate, []any{affiliateID}, limit, offset)
	if err != nil {
		return nil, wrap(err, "failed to load posts of %d", affiliateID)
	}
	for i := range posts {
		posts[i].PostMembershipAffiliateID = affiliateID
	}
	return posts, nil
}

func (r *FeedQueryRepository) Saved(ctx context.Context, c Consultant, limit, offset int) ([]entities.FeedPost, error) {
	posts, err := r.selectPosts(ctx, c, constants.FeedFilterSaved, []any{c.AffiliateID}, limit, offset)
	return posts, wrap(err, "failed to load saved posts of %d", c.AffiliateID)
}
