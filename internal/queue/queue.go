package queue

const (
	TaskTypeUploadPost = "upload:post"
	UploadQueue        = "uploads"

	// Redelivery attempts after a failed dispatch. Matches the bounded
	// at-least-once policy of the upload pipeline; the dispatcher itself
	// never retries within an attempt.
	uploadMaxRetry = 3
)

type UploadPostPayload struct {
	ScheduledPostID int64 `json:"scheduled_post_id"`
}
