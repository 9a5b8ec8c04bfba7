package queue

import (
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Client wraps the asynq producer side so callers enqueue typed payloads.
type Client struct {
	asynq *asynq.Client
}

func NewClient(asynqClient *asynq.Client) *Client {
	return &Client{asynq: asynqClient}
}

func (c *Client) EnqueueUpload(payload UploadPostPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeUploadPost, taskPayload)

	_, err = c.asynq.Enqueue(task, asynq.Queue(UploadQueue), asynq.MaxRetry(uploadMaxRetry))
	if err != nil {
		return err
	}

	slog.Info("upload task enqueued", "scheduled_post_id", payload.ScheduledPostID)
	return nil
}
