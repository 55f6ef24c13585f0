package jobs

import (
	"context"
	"time"

	"agora/backend/internal/logging"
)

// MemberListWarmer rebuilds the cached member directory and reports its size
type MemberListWarmer interface {
	WarmMemberList(ctx context.Context) (int, error)
}

// MemberCacheJob keeps GET /api/members served from cache between writes
type MemberCacheJob struct {
	warmer MemberListWarmer
}

func NewMemberCacheJob(warmer MemberListWarmer) *MemberCacheJob {
	return &MemberCacheJob{warmer: warmer}
}

// Run refreshes the member list once
func (j *MemberCacheJob) Run(ctx context.Context) error {
	start := time.Now()

	count, err := j.warmer.WarmMemberList(ctx)
	if err != nil {
		return err
	}

	logging.With("job", "member_cache").Debugw("Member cache warmed",
		"members", count,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// RunScheduled warms immediately, then on every tick until ctx is cancelled
func (j *MemberCacheJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		logging.With("job", "member_cache").Warnw("Member cache warm failed", "phase", "initial", "error", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				logging.With("job", "member_cache").Warnw("Member cache warm failed", "phase", "scheduled", "error", err)
			}
		case <-ctx.Done():
			logging.Info("Shutting down member cache job")
			return
		}
	}
}
