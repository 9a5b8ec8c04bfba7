package transfer

import "time"

// UploadRequest is the payload sent to the automation service. It carries a
// copy of everything the uploader needs plus the callback address it must hit
// when the upload finishes.
type UploadRequest struct {
	ScheduledPostID int64    `json:"scheduled_post_id"`
	UserID          int64    `json:"user_id"`
	SocialAccountID int64    `json:"social_account_id"`
	Content         string   `json:"content"`
	MediaURLs       []string `json:"media_urls"`
	ScheduledAt     string   `json:"scheduled_at"`
	CallbackURL     string   `json:"callback_url"`
}

// UploadCallback is what the automation service posts back once an upload
// completes or fails.
type UploadCallback struct {
	ScheduledPostID int64  `json:"scheduled_post_id"`
	Status          string `json:"status"` // posted or failed
	Message         string `json:"message,omitempty"`
	PostURL         string `json:"post_url,omitempty"`
	Error           string `json:"error,omitempty"`
}

type UploadCallbackResult struct {
	ScheduledPostID int64      `json:"scheduled_post_id"`
	Status          string     `json:"status"`
	PostedAt        *time.Time `json:"posted_at,omitempty"`
	ErrorMessage    string     `json:"error_message,omitempty"`
}
