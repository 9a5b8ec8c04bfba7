package models

import "time"

type ScheduledPost struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	SocialAccountID int64      `db:"social_account_id" json:"social_account_id"`
	Content         string     `db:"content" json:"content"`
	MediaURLs       []string   `db:"media_urls" json:"media_urls"`
	ScheduledAt     time.Time  `db:"scheduled_at" json:"scheduled_at"`
	Status          string     `db:"status" json:"status"` // pending, processing, posted, failed
	ErrorMessage    *string    `db:"error_message" json:"error_message,omitempty"`
	PostedAt        *time.Time `db:"posted_at" json:"posted_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusPending    = "pending"
	PostStatusProcessing = "processing"
	PostStatusPosted     = "posted"
	PostStatusFailed     = "failed"
)

// Terminal reports whether the post has reached a final status. No transition
// leads out of posted or failed.
func (p *ScheduledPost) Terminal() bool {
	return p.Status == PostStatusPosted || p.Status == PostStatusFailed
}
