package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/socialtrend/automator/internal/service"
	"github.com/socialtrend/automator/internal/transfer"
)

type stubWebhookService struct {
	result *transfer.UploadCallbackResult
	err    error
	gotCB  *transfer.UploadCallback
}

func (s *stubWebhookService) Apply(ctx context.Context, cb *transfer.UploadCallback) (*transfer.UploadCallbackResult, error) {
	s.gotCB = cb
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newWebhookApp(svc service.WebhookService) *fiber.App {
	app := fiber.New()
	app.Post("/api/upload/callback", NewWebhookHandler(svc).UploadCallback)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return resp, decoded
}

func TestUploadCallback_Posted(t *testing.T) {
	postedAt := time.Now()
	svc := &stubWebhookService{result: &transfer.UploadCallbackResult{
		ScheduledPostID: 12,
		Status:          "posted",
		PostedAt:        &postedAt,
	}}
	app := newWebhookApp(svc)

	resp, body := postJSON(t, app, "/api/upload/callback",
		`{"scheduled_post_id":12,"status":"posted","post_url":"https://platform.example.com/p/1"}`)

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["success"] != true {
		t.Fatalf("expected success true, got %v", body["success"])
	}
	if svc.gotCB == nil || svc.gotCB.ScheduledPostID != 12 || svc.gotCB.PostURL == "" {
		t.Fatalf("callback not passed through: %+v", svc.gotCB)
	}
}

func TestUploadCallback_UnknownPost(t *testing.T) {
	app := newWebhookApp(&stubWebhookService{err: service.ErrPostNotFound})

	resp, body := postJSON(t, app, "/api/upload/callback",
		`{"scheduled_post_id":999,"status":"posted"}`)

	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body["success"] != false {
		t.Fatalf("expected success false, got %v", body["success"])
	}
}

func TestUploadCallback_InvalidStatus(t *testing.T) {
	app := newWebhookApp(&stubWebhookService{
		err: &service.ValidationError{Field: "status", Message: "status must be posted or failed"},
	})

	resp, _ := postJSON(t, app, "/api/upload/callback",
		`{"scheduled_post_id":12,"status":"uploading"}`)

	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestUploadCallback_MalformedBody(t *testing.T) {
	app := newWebhookApp(&stubWebhookService{})

	resp, _ := postJSON(t, app, "/api/upload/callback", `{"scheduled_post_id":`)

	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
