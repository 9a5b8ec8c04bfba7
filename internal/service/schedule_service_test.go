package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/socialtrend/automator/internal/models"
	"github.com/socialtrend/automator/internal/transfer"
)

func newScheduleService(repo *fakePostRepo, accounts *fakeAccountRepo) (*scheduleService, *noopAudit) {
	audit := &noopAudit{}
	s := NewScheduleService(repo, accounts, audit).(*scheduleService)
	return s, audit
}

func TestScheduleCreate_FuturePostIsPending(t *testing.T) {
	repo := newFakePostRepo()
	accounts := &fakeAccountRepo{owned: map[int64]int64{7: 1}}
	s, audit := newScheduleService(repo, accounts)

	post, err := s.Create(context.Background(), 1, &transfer.ScheduleCreation{
		SocialAccountID: 7,
		Content:         "Check out this amazing content!",
		ScheduledAt:     time.Now().Add(time.Hour).Format(time.RFC3339),
		MediaURLs:       []string{"https://example.com/image.jpg"},
	}, transfer.RequestMeta{})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if post.Status != models.PostStatusPending {
		t.Fatalf("expected status pending, got %q", post.Status)
	}
	if post.ID == 0 {
		t.Fatalf("expected post id to be assigned")
	}
	if len(audit.entries) != 1 || audit.entries[0] != "schedule" {
		t.Fatalf("expected one schedule audit entry, got %v", audit.entries)
	}
}

func TestScheduleCreate_Validation(t *testing.T) {
	accounts := &fakeAccountRepo{owned: map[int64]int64{7: 1}}
	future := time.Now().Add(time.Hour).Format(time.RFC3339)

	tests := []struct {
		name string
		req  transfer.ScheduleCreation
	}{
		{
			name: "past scheduled_at",
			req: transfer.ScheduleCreation{
				SocialAccountID: 7,
				Content:         "late",
				ScheduledAt:     time.Now().Add(-time.Hour).Format(time.RFC3339),
			},
		},
		{
			name: "scheduled_at now",
			req: transfer.ScheduleCreation{
				SocialAccountID: 7,
				Content:         "now",
				ScheduledAt:     time.Now().Format(time.RFC3339),
			},
		},
		{
			name: "unparseable scheduled_at",
			req: transfer.ScheduleCreation{
				SocialAccountID: 7,
				Content:         "soon",
				ScheduledAt:     "tomorrow-ish",
			},
		},
		{
			name: "empty content",
			req: transfer.ScheduleCreation{
				SocialAccountID: 7,
				ScheduledAt:     future,
			},
		},
		{
			name: "missing account",
			req: transfer.ScheduleCreation{
				Content:     "no account",
				ScheduledAt: future,
			},
		},
		{
			name: "account owned by someone else",
			req: transfer.ScheduleCreation{
				SocialAccountID: 99,
				Content:         "not mine",
				ScheduledAt:     future,
			},
		},
		{
			name: "bad media url",
			req: transfer.ScheduleCreation{
				SocialAccountID: 7,
				Content:         "bad media",
				ScheduledAt:     future,
				MediaURLs:       []string{"not a url"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakePostRepo()
			s, _ := newScheduleService(repo, accounts)

			_, err := s.Create(context.Background(), 1, &tc.req, transfer.RequestMeta{})

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(repo.posts) != 0 {
				t.Fatalf("expected no post created on validation failure")
			}
		})
	}
}

func TestScheduleCreate_AcceptsAlternateLayouts(t *testing.T) {
	repo := newFakePostRepo()
	accounts := &fakeAccountRepo{owned: map[int64]int64{7: 1}}
	s, _ := newScheduleService(repo, accounts)

	scheduledAt := time.Now().Add(24 * time.Hour).UTC().Format("2006-01-02 15:04:05")
	post, err := s.Create(context.Background(), 1, &transfer.ScheduleCreation{
		SocialAccountID: 7,
		Content:         "space separated layout",
		ScheduledAt:     scheduledAt,
	}, transfer.RequestMeta{})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if post.Status != models.PostStatusPending {
		t.Fatalf("expected pending, got %q", post.Status)
	}
}

func TestSchedulePostInfo_OwnershipEnforced(t *testing.T) {
	repo := newFakePostRepo()
	accounts := &fakeAccountRepo{owned: map[int64]int64{}}
	s, _ := newScheduleService(repo, accounts)

	post := repo.add(&models.ScheduledPost{
		UserID:      2,
		Content:     "someone else's",
		ScheduledAt: time.Now().Add(time.Hour),
		Status:      models.PostStatusPending,
	})

	if _, err := s.PostInfo(context.Background(), post.ID, 1); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for foreign post, got %v", err)
	}

	got, err := s.PostInfo(context.Background(), post.ID, 2)
	if err != nil {
		t.Fatalf("PostInfo returned error: %v", err)
	}
	if got.ID != post.ID {
		t.Fatalf("expected post %d, got %d", post.ID, got.ID)
	}
}
