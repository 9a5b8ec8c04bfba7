package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/socialtrend/automator/internal/queue"
	"github.com/socialtrend/automator/internal/repository"
)

// Enqueuer is the producer side of the upload queue.
type Enqueuer interface {
	EnqueueUpload(payload queue.UploadPostPayload) error
}

// DispatchDueJob is the per-minute sweep that promotes due pending posts into
// upload tasks. It reads, it enqueues, it never mutates: posts stay pending
// until a worker claims them, so a failed tick is retried naturally by the
// next one.
type DispatchDueJob struct {
	pr  repository.ScheduledPostRepository
	q   Enqueuer
	now func() time.Time
}

func NewDispatchDueJob(pr repository.ScheduledPostRepository, q Enqueuer) *DispatchDueJob {
	return &DispatchDueJob{
		pr:  pr,
		q:   q,
		now: time.Now,
	}
}

func (j *DispatchDueJob) Run() {
	ctx := context.Background()

	duePosts, err := j.pr.ListDuePending(ctx, j.now())
	if err != nil {
		slog.Error("schedule sweep failed", "error", err)
		return
	}

	if len(duePosts) == 0 {
		return
	}

	slog.Info("found scheduled posts ready for upload", "count", len(duePosts))

	dispatched := 0
	for _, post := range duePosts {
		err := j.q.EnqueueUpload(queue.UploadPostPayload{ScheduledPostID: post.ID})
		if err != nil {
			slog.Error("failed to enqueue upload task",
				"scheduled_post_id", post.ID, "error", err)
			continue
		}
		dispatched++

		slog.Info("scheduled post dispatched to queue",
			"scheduled_post_id", post.ID,
			"user_id", post.UserID,
			"scheduled_at", post.ScheduledAt)
	}

	slog.Info("schedule sweep completed", "dispatched", dispatched)
}
