package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/socialtrend/automator/internal/client"
	"github.com/socialtrend/automator/internal/repository"
	"github.com/socialtrend/automator/internal/telemetry"
	"github.com/socialtrend/automator/internal/transfer"
)

// Worker consumes upload tasks and performs the dispatch: claim the post,
// send it to the automation service, record the outcome. One external call
// per attempt; redelivery is the queue's job.
type Worker struct {
	pr          repository.ScheduledPostRepository
	uploader    client.Uploader
	callbackURL string
}

func NewWorker(pr repository.ScheduledPostRepository, uploader client.Uploader, callbackURL string) *Worker {
	return &Worker{
		pr:          pr,
		uploader:    uploader,
		callbackURL: callbackURL,
	}
}

func (w *Worker) HandleUploadPostTask(ctx context.Context, task *asynq.Task) error {
	var payload UploadPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decoding upload task payload: %w", err)
	}

	return w.Dispatch(ctx, payload.ScheduledPostID)
}

// Dispatch moves a due post through pending -> processing and issues the
// upload request. The processing claim happens before any network I/O so an
// overlapping selector tick cannot re-dispatch the same post. On acknowledged
// receipt the post stays processing; the webhook callback decides the final
// status. On transport failure the post is marked failed and the error is
// returned so asynq applies its bounded retry.
func (w *Worker) Dispatch(ctx context.Context, postID int64) error {
	post, err := w.pr.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("loading scheduled post %d: %w", postID, err)
	}
	if post == nil {
		slog.Warn("scheduled post missing, dropping upload task", "scheduled_post_id", postID)
		return nil
	}

	claimed, err := w.pr.ClaimForDispatch(ctx, postID)
	if err != nil {
		return fmt.Errorf("claiming scheduled post %d: %w", postID, err)
	}
	if !claimed {
		slog.Info("scheduled post already terminal, skipping dispatch",
			"scheduled_post_id", postID, "status", post.Status)
		return nil
	}

	uploadReq := &transfer.UploadRequest{
		ScheduledPostID: post.ID,
		UserID:          post.UserID,
		SocialAccountID: post.SocialAccountID,
		Content:         post.Content,
		MediaURLs:       post.MediaURLs,
		ScheduledAt:     post.ScheduledAt.Format(time.RFC3339),
		CallbackURL:     w.callbackURL,
	}
	if uploadReq.MediaURLs == nil {
		uploadReq.MediaURLs = []string{}
	}

	if err := w.uploader.Upload(ctx, uploadReq); err != nil {
		telemetry.UploadFailures.Inc()

		if markErr := w.pr.MarkFailed(ctx, postID, err.Error()); markErr != nil {
			slog.Error("failed to record dispatch failure",
				"scheduled_post_id", postID, "error", markErr)
		}

		slog.Error("upload dispatch failed", "scheduled_post_id", postID, "error", err)
		return fmt.Errorf("dispatching upload for post %d: %w", postID, err)
	}

	telemetry.UploadsDispatched.Inc()
	slog.Info("upload dispatched", "scheduled_post_id", post.ID, "user_id", post.UserID)
	return nil
}
