package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/socialtrend/automator/internal/models"
	"github.com/socialtrend/automator/internal/repository"
	"github.com/socialtrend/automator/internal/telemetry"
	"github.com/socialtrend/automator/internal/transfer"
)

// Accepted layouts for scheduled_at, most specific first.
var scheduledAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

type ScheduleService interface {
	Create(ctx context.Context, userID int64, sc *transfer.ScheduleCreation, meta transfer.RequestMeta) (*models.ScheduledPost, error)
	List(ctx context.Context, userID int64) ([]*models.ScheduledPost, error)
	PostInfo(ctx context.Context, postID, userID int64) (*models.ScheduledPost, error)
}

type scheduleService struct {
	pr    repository.ScheduledPostRepository
	ac    repository.SocialAccountRepository
	audit AuditService
	now   func() time.Time
}

func NewScheduleService(pr repository.ScheduledPostRepository, ac repository.SocialAccountRepository, audit AuditService) ScheduleService {
	return &scheduleService{
		pr:    pr,
		ac:    ac,
		audit: audit,
		now:   time.Now,
	}
}

// Create validates a scheduling request and stores the post as pending. The
// post only enters the dispatch pipeline once the per-minute sweep finds it
// due.
func (s *scheduleService) Create(ctx context.Context, userID int64, sc *transfer.ScheduleCreation, meta transfer.RequestMeta) (*models.ScheduledPost, error) {
	if sc.Content == "" {
		return nil, invalid("content", "content is required")
	}
	if sc.SocialAccountID == 0 {
		return nil, invalid("social_account_id", "social_account_id is required")
	}

	scheduledAt, err := parseScheduledAt(sc.ScheduledAt)
	if err != nil {
		return nil, invalid("scheduled_at", "scheduled_at must be a valid timestamp")
	}
	if !scheduledAt.After(s.now()) {
		return nil, invalid("scheduled_at", "scheduled_at must be in the future")
	}

	for _, mediaURL := range sc.MediaURLs {
		u, err := url.Parse(mediaURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, invalid("media_urls", fmt.Sprintf("%q is not a valid url", mediaURL))
		}
	}

	exists, err := s.ac.CheckByUserID(ctx, sc.SocialAccountID, userID)
	if err != nil {
		return nil, fmt.Errorf("checking social account %d: %w", sc.SocialAccountID, err)
	}
	if !exists {
		return nil, invalid("social_account_id", "social account does not exist")
	}

	post := &models.ScheduledPost{
		UserID:          userID,
		SocialAccountID: sc.SocialAccountID,
		Content:         sc.Content,
		MediaURLs:       sc.MediaURLs,
		ScheduledAt:     scheduledAt,
		Status:          models.PostStatusPending,
	}

	postID, err := s.pr.Create(ctx, nil, post)
	if err != nil {
		return nil, fmt.Errorf("creating scheduled post: %w", err)
	}
	post.ID = postID

	telemetry.PostsScheduled.Inc()
	s.audit.Log(ctx, userID, "schedule", "ScheduledPost", postID, meta)
	slog.Info("post scheduled", "scheduled_post_id", postID, "user_id", userID, "scheduled_at", scheduledAt)

	created, err := s.pr.GetByID(ctx, postID)
	if err != nil || created == nil {
		// Row was just written; fall back to what we know.
		return post, nil
	}
	return created, nil
}

func (s *scheduleService) List(ctx context.Context, userID int64) ([]*models.ScheduledPost, error) {
	posts, err := s.pr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled posts: %w", err)
	}
	return posts, nil
}

func (s *scheduleService) PostInfo(ctx context.Context, postID, userID int64) (*models.ScheduledPost, error) {
	isOwner, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, ErrPostNotFound
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func parseScheduledAt(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range scheduledAtLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
