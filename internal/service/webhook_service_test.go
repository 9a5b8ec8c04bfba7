package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/socialtrend/automator/internal/models"
	"github.com/socialtrend/automator/internal/transfer"
)

func newProcessingPost(repo *fakePostRepo) *models.ScheduledPost {
	return repo.add(&models.ScheduledPost{
		UserID:          1,
		SocialAccountID: 1,
		Content:         "hello world",
		ScheduledAt:     time.Now().Add(-time.Minute),
		Status:          models.PostStatusProcessing,
	})
}

func TestWebhookApply_Posted(t *testing.T) {
	repo := newFakePostRepo()
	post := newProcessingPost(repo)

	s := NewWebhookService(repo)

	result, err := s.Apply(context.Background(), &transfer.UploadCallback{
		ScheduledPostID: post.ID,
		Status:          models.PostStatusPosted,
		PostURL:         "https://example.com/p/1",
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if result.Status != models.PostStatusPosted {
		t.Fatalf("expected result status posted, got %q", result.Status)
	}
	if result.PostedAt == nil {
		t.Fatalf("expected posted_at to be set")
	}

	stored := repo.posts[post.ID]
	if stored.Status != models.PostStatusPosted {
		t.Fatalf("expected stored status posted, got %q", stored.Status)
	}
	if stored.PostedAt == nil {
		t.Fatalf("expected stored posted_at to be set")
	}
	if stored.ErrorMessage != nil {
		t.Fatalf("expected error_message cleared, got %q", *stored.ErrorMessage)
	}
}

func TestWebhookApply_PostedClearsPreviousError(t *testing.T) {
	repo := newFakePostRepo()
	post := newProcessingPost(repo)
	msg := "earlier failure"
	repo.posts[post.ID].Status = models.PostStatusFailed
	repo.posts[post.ID].ErrorMessage = &msg

	s := NewWebhookService(repo)

	_, err := s.Apply(context.Background(), &transfer.UploadCallback{
		ScheduledPostID: post.ID,
		Status:          models.PostStatusPosted,
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	stored := repo.posts[post.ID]
	if stored.Status != models.PostStatusPosted || stored.ErrorMessage != nil {
		t.Fatalf("expected posted with no error, got status=%q error=%v", stored.Status, stored.ErrorMessage)
	}
}

func TestWebhookApply_FailedErrorMessagePrecedence(t *testing.T) {
	tests := []struct {
		name     string
		callback transfer.UploadCallback
		want     string
	}{
		{
			name:     "error field wins",
			callback: transfer.UploadCallback{Status: models.PostStatusFailed, Error: "token expired", Message: "upload did not finish"},
			want:     "token expired",
		},
		{
			name:     "message as fallback",
			callback: transfer.UploadCallback{Status: models.PostStatusFailed, Message: "upload did not finish"},
			want:     "upload did not finish",
		},
		{
			name:     "default when both absent",
			callback: transfer.UploadCallback{Status: models.PostStatusFailed},
			want:     "Upload failed",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakePostRepo()
			post := newProcessingPost(repo)

			s := NewWebhookService(repo)
			cb := tc.callback
			cb.ScheduledPostID = post.ID

			result, err := s.Apply(context.Background(), &cb)
			if err != nil {
				t.Fatalf("Apply returned error: %v", err)
			}
			if result.ErrorMessage != tc.want {
				t.Fatalf("expected error message %q, got %q", tc.want, result.ErrorMessage)
			}

			stored := repo.posts[post.ID]
			if stored.Status != models.PostStatusFailed {
				t.Fatalf("expected stored status failed, got %q", stored.Status)
			}
			if stored.ErrorMessage == nil || *stored.ErrorMessage != tc.want {
				t.Fatalf("expected stored error %q, got %v", tc.want, stored.ErrorMessage)
			}
		})
	}
}

func TestWebhookApply_UnknownPost(t *testing.T) {
	repo := newFakePostRepo()
	s := NewWebhookService(repo)

	_, err := s.Apply(context.Background(), &transfer.UploadCallback{
		ScheduledPostID: 404,
		Status:          models.PostStatusPosted,
	})
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if len(repo.posts) != 0 {
		t.Fatalf("expected no mutation for unknown post")
	}
}

func TestWebhookApply_InvalidStatus(t *testing.T) {
	repo := newFakePostRepo()
	post := newProcessingPost(repo)

	s := NewWebhookService(repo)

	_, err := s.Apply(context.Background(), &transfer.UploadCallback{
		ScheduledPostID: post.ID,
		Status:          "uploaded",
	})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.posts[post.ID].Status != models.PostStatusProcessing {
		t.Fatalf("expected post untouched on invalid status")
	}
}

func TestWebhookApply_PostedIsIdempotent(t *testing.T) {
	repo := newFakePostRepo()
	post := newProcessingPost(repo)

	s := NewWebhookService(repo)
	cb := &transfer.UploadCallback{ScheduledPostID: post.ID, Status: models.PostStatusPosted}

	if _, err := s.Apply(context.Background(), cb); err != nil {
		t.Fatalf("first Apply returned error: %v", err)
	}
	first := *repo.posts[post.ID]

	if _, err := s.Apply(context.Background(), cb); err != nil {
		t.Fatalf("second Apply returned error: %v", err)
	}
	second := *repo.posts[post.ID]

	if second.Status != first.Status {
		t.Fatalf("status changed across duplicate callbacks: %q -> %q", first.Status, second.Status)
	}
	if second.ErrorMessage != nil {
		t.Fatalf("expected error_message to stay cleared")
	}
	if second.PostedAt == nil {
		t.Fatalf("expected posted_at to stay set")
	}
}

func TestWebhookApply_StorageErrorSurfaced(t *testing.T) {
	repo := newFakePostRepo()
	post := newProcessingPost(repo)
	repo.failMark = true

	s := NewWebhookService(repo)

	_, err := s.Apply(context.Background(), &transfer.UploadCallback{
		ScheduledPostID: post.ID,
		Status:          models.PostStatusPosted,
	})
	if err == nil {
		t.Fatalf("expected storage error to be surfaced")
	}
	if repo.posts[post.ID].Status != models.PostStatusProcessing {
		t.Fatalf("expected post unchanged when the write fails")
	}
}
