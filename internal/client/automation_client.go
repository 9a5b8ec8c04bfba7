package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/socialtrend/automator/internal/transfer"
)

const uploadTimeout = 30 * time.Second

// Uploader hands a scheduled post to the automation service. An error means
// the service did not acknowledge the request; it says nothing about whether
// the upload itself will eventually succeed.
type Uploader interface {
	Upload(ctx context.Context, req *transfer.UploadRequest) error
}

type AutomationClient struct {
	baseURL string
	client  *http.Client
}

func NewAutomationClient(baseURL string) *AutomationClient {
	return &AutomationClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: uploadTimeout,
		},
	}
}

func (c *AutomationClient) Upload(ctx context.Context, uploadReq *transfer.UploadRequest) error {
	body, err := json.Marshal(uploadReq)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload request failed: status %d body=%q", resp.StatusCode, string(respBody))
	}

	return nil
}
