package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/socialtrend/automator/internal/models"
	"github.com/socialtrend/automator/internal/transfer"
)

// fakePostRepo mirrors the repository's status semantics in memory.
type fakePostRepo struct {
	posts  map[int64]*models.ScheduledPost
	nextID int64

	failGet  bool
	failMark bool
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[int64]*models.ScheduledPost{}, nextID: 1}
}

func (r *fakePostRepo) add(post *models.ScheduledPost) *models.ScheduledPost {
	if post.ID == 0 {
		post.ID = r.nextID
		r.nextID++
	}
	r.posts[post.ID] = post
	return post
}

func (r *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.ScheduledPost) (int64, error) {
	copied := *post
	r.add(&copied)
	return copied.ID, nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	if r.failGet {
		return nil, errors.New("storage unavailable")
	}
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.ScheduledPost, error) {
	var posts []*models.ScheduledPost
	for _, post := range r.posts {
		if post.UserID == userID {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	return posts, nil
}

func (r *fakePostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	post, ok := r.posts[postID]
	return ok && post.UserID == userID, nil
}

func (r *fakePostRepo) ListDuePending(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error) {
	var due []*models.ScheduledPost
	for _, post := range r.posts {
		if post.Status == models.PostStatusPending && !post.ScheduledAt.After(now) {
			copied := *post
			due = append(due, &copied)
		}
	}
	return due, nil
}

func (r *fakePostRepo) ClaimForDispatch(ctx context.Context, id int64) (bool, error) {
	post, ok := r.posts[id]
	if !ok {
		return false, nil
	}
	if post.Status != models.PostStatusPending && post.Status != models.PostStatusProcessing {
		return false, nil
	}
	post.Status = models.PostStatusProcessing
	return true, nil
}

func (r *fakePostRepo) MarkPosted(ctx context.Context, id int64, postedAt time.Time) error {
	if r.failMark {
		return errors.New("storage unavailable")
	}
	post, ok := r.posts[id]
	if !ok {
		return errors.New("no such post")
	}
	post.Status = models.PostStatusPosted
	post.PostedAt = &postedAt
	post.ErrorMessage = nil
	return nil
}

func (r *fakePostRepo) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	if r.failMark {
		return errors.New("storage unavailable")
	}
	post, ok := r.posts[id]
	if !ok {
		return errors.New("no such post")
	}
	post.Status = models.PostStatusFailed
	post.ErrorMessage = &errorMessage
	return nil
}

type fakeAccountRepo struct {
	owned map[int64]int64 // account id -> user id
}

func (r *fakeAccountRepo) Create(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error) {
	return 1, nil
}

func (r *fakeAccountRepo) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	return nil, nil
}

func (r *fakeAccountRepo) ListByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	return nil, nil
}

func (r *fakeAccountRepo) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	owner, ok := r.owned[accountID]
	return ok && owner == userID, nil
}

func (r *fakeAccountRepo) Remove(ctx context.Context, id int64) error {
	delete(r.owned, id)
	return nil
}

type noopAudit struct {
	entries []string
}

func (a *noopAudit) Log(ctx context.Context, userID int64, action, resourceType string, resourceID int64, meta transfer.RequestMeta) {
	a.entries = append(a.entries, action)
}
