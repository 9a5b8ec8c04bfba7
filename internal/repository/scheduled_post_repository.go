package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/socialtrend/automator/internal/models"
)

type ScheduledPostRepository interface {
	Create(ctx context.Context, tx *sql.Tx, post *models.ScheduledPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.ScheduledPost, error)
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	ListDuePending(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error)
	ClaimForDispatch(ctx context.Context, id int64) (bool, error)
	MarkPosted(ctx context.Context, id int64, postedAt time.Time) error
	MarkFailed(ctx context.Context, id int64, errorMessage string) error
}

type scheduledPostRepository struct {
	db *sql.DB
}

func NewScheduledPostRepository(db *sql.DB) ScheduledPostRepository {
	return &scheduledPostRepository{db: db}
}

const scheduledPostColumns = `id, user_id, social_account_id, content, media_urls, scheduled_at, status, error_message, posted_at, created_at, updated_at`

func (r *scheduledPostRepository) Create(ctx context.Context, tx *sql.Tx, post *models.ScheduledPost) (int64, error) {
	query := `
		INSERT INTO scheduled_posts (user_id, social_account_id, content, media_urls, scheduled_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	mediaURLs, err := json.Marshal(post.MediaURLs)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	var id int64
	if tx != nil {
		err = tx.QueryRowContext(ctx, query, post.UserID, post.SocialAccountID, post.Content, mediaURLs, post.ScheduledAt, post.Status).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, post.UserID, post.SocialAccountID, post.Content, mediaURLs, post.ScheduledAt, post.Status).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *scheduledPostRepository) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	post, err := scanScheduledPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (r *scheduledPostRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE user_id = $1 ORDER BY scheduled_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return collectScheduledPosts(rows)
}

func (r *scheduledPostRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := "SELECT 1 FROM scheduled_posts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

// ListDuePending returns every pending post whose scheduled time has passed.
// Read-only; the selector never mutates.
func (r *scheduledPostRepository) ListDuePending(ctx context.Context, now time.Time) ([]*models.ScheduledPost, error) {
	query := `SELECT ` + scheduledPostColumns + ` FROM scheduled_posts WHERE status = $1 AND scheduled_at <= $2 ORDER BY scheduled_at ASC`
	rows, err := r.db.QueryContext(ctx, query, models.PostStatusPending, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return collectScheduledPosts(rows)
}

// ClaimForDispatch flips the post to processing before any upload I/O happens.
// The conditional WHERE makes the claim atomic: a post already posted or failed
// is never re-dispatched. A post already processing is claimable again so the
// queue can redeliver after a partial failure.
func (r *scheduledPostRepository) ClaimForDispatch(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3 AND status IN ($4, $1)
	`
	result, err := r.db.ExecContext(ctx, query, models.PostStatusProcessing, time.Now(), id, models.PostStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

// MarkPosted writes the terminal posted state. Status, posted_at and the
// cleared error message go in a single statement so a post is never half
// updated.
func (r *scheduledPostRepository) MarkPosted(ctx context.Context, id int64, postedAt time.Time) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			posted_at = $2,
			error_message = NULL,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusPosted, postedAt, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduledPostRepository) MarkFailed(ctx context.Context, id int64, errorMessage string) error {
	query := `
		UPDATE scheduled_posts
		SET status = $1,
			error_message = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusFailed, errorMessage, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScheduledPost(row rowScanner) (*models.ScheduledPost, error) {
	var post models.ScheduledPost
	var mediaURLs []byte
	var errorMessage sql.NullString
	var postedAt sql.NullTime

	err := row.Scan(&post.ID, &post.UserID, &post.SocialAccountID, &post.Content, &mediaURLs,
		&post.ScheduledAt, &post.Status, &errorMessage, &postedAt, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(mediaURLs) > 0 {
		if err := json.Unmarshal(mediaURLs, &post.MediaURLs); err != nil {
			return nil, err
		}
	}
	if errorMessage.Valid {
		s := errorMessage.String
		post.ErrorMessage = &s
	}
	if postedAt.Valid {
		t := postedAt.Time
		post.PostedAt = &t
	}

	return &post, nil
}

func collectScheduledPosts(rows *sql.Rows) ([]*models.ScheduledPost, error) {
	var posts []*models.ScheduledPost
	for rows.Next() {
		post, err := scanScheduledPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}
