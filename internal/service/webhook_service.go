package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/socialtrend/automator/internal/models"
	"github.com/socialtrend/automator/internal/repository"
	"github.com/socialtrend/automator/internal/telemetry"
	"github.com/socialtrend/automator/internal/transfer"
)

const defaultUploadError = "Upload failed"

// WebhookService is the single authoritative path by which a scheduled post
// reaches a terminal status. The automation service reports completion here.
type WebhookService interface {
	Apply(ctx context.Context, cb *transfer.UploadCallback) (*transfer.UploadCallbackResult, error)
}

type webhookService struct {
	pr  repository.ScheduledPostRepository
	now func() time.Time
}

func NewWebhookService(pr repository.ScheduledPostRepository) WebhookService {
	return &webhookService{pr: pr, now: time.Now}
}

// Apply finalizes the post named by the callback. Updates are idempotent per
// status value: a duplicate callback re-applies the same terminal write. A late
// callback with the opposite status overwrites the earlier one; the receiver
// deliberately does not referee out-of-order delivery.
func (s *webhookService) Apply(ctx context.Context, cb *transfer.UploadCallback) (*transfer.UploadCallbackResult, error) {
	if cb.Status != models.PostStatusPosted && cb.Status != models.PostStatusFailed {
		return nil, invalid("status", "status must be posted or failed")
	}

	post, err := s.pr.GetByID(ctx, cb.ScheduledPostID)
	if err != nil {
		return nil, fmt.Errorf("loading scheduled post %d: %w", cb.ScheduledPostID, err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if cb.Status == models.PostStatusPosted {
		postedAt := s.now()
		if err := s.pr.MarkPosted(ctx, post.ID, postedAt); err != nil {
			return nil, fmt.Errorf("marking post %d posted: %w", post.ID, err)
		}

		telemetry.WebhookPosted.Inc()
		slog.Info("scheduled post uploaded successfully",
			"scheduled_post_id", post.ID,
			"post_url", cb.PostURL,
			"message", cb.Message)

		return &transfer.UploadCallbackResult{
			ScheduledPostID: post.ID,
			Status:          models.PostStatusPosted,
			PostedAt:        &postedAt,
		}, nil
	}

	errorMessage := cb.Error
	if errorMessage == "" {
		errorMessage = cb.Message
	}
	if errorMessage == "" {
		errorMessage = defaultUploadError
	}

	if err := s.pr.MarkFailed(ctx, post.ID, errorMessage); err != nil {
		return nil, fmt.Errorf("marking post %d failed: %w", post.ID, err)
	}

	telemetry.WebhookFailed.Inc()
	slog.Warn("scheduled post upload failed",
		"scheduled_post_id", post.ID,
		"error", errorMessage)

	return &transfer.UploadCallbackResult{
		ScheduledPostID: post.ID,
		Status:          models.PostStatusFailed,
		ErrorMessage:    errorMessage,
	}, nil
}
