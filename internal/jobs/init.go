package jobs

import (
	"context"
	"time"

	"agora/backend/internal/logging"
)

// InitializeJobs starts the background jobs; a non-positive interval disables them
func InitializeJobs(ctx context.Context, warmer MemberListWarmer, warmInterval time.Duration) *MemberCacheJob {
	job := NewMemberCacheJob(warmer)
	if warmInterval <= 0 {
		logging.Info("Member cache job disabled")
		return job
	}

	go job.RunScheduled(ctx, warmInterval)
	return job
}
