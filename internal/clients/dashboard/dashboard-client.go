package dashboard_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/init-pkg/menu-import/domain/app"
	"github.com/init-pkg/menu-import/internal/config"
)

const (
	JobStatusProcessing = "processing"
)

// DashboardClient reports import job progress back to the dashboard API.
// Without a configured URL every call is a no-op.
type DashboardClient struct {
	url    string
	client *http.Client
}

var _ app.JobReporter = &DashboardClient{}

type SuccessRequest struct {
	JobID      uint64            `json:"job_id"`
	Notes      string            `json:"notes,omitempty"`
	ResultData map[string]string `json:"result_data,omitempty"`
}

type ErrorRequest struct {
	JobID        uint64 `json:"job_id"`
	ErrorMessage string `json:"error_message"`
}

type UpdateStatusRequest struct {
	JobID  uint64 `json:"job_id"`
	Status string `json:"status"`
}

func New(cfg *config.Config) *DashboardClient {
	return &DashboardClient{
		url:    cfg.Clients.Dashboard.Url,
		client: &http.Client{Timeout: cfg.Clients.Dashboard.Timeout},
	}
}

func (this *DashboardClient) MarkJobSuccess(ctx context.Context, jobID uint64, notes string, resultData map[string]string) error {
	return this.post(ctx, "/api/menu-import-jobs/mark-success", SuccessRequest{
		JobID:      jobID,
		Notes:      notes,
		ResultData: resultData,
	})
}

func (this *DashboardClient) MarkJobFailed(ctx context.Context, jobID uint64, errorMessage string) error {
	return this.post(ctx, "/api/menu-import-jobs/mark-error", ErrorRequest{
		JobID:        jobID,
		ErrorMessage: errorMessage,
	})
}

func (this *DashboardClient) UpdateJobStatus(ctx context.Context, jobID uint64, status string) error {
	return this.post(ctx, "/api/menu-import-jobs/update-status", UpdateStatusRequest{
		JobID:  jobID,
		Status: status,
	})
}

func (this *DashboardClient) post(ctx context.Context, path string, payload interface{}) error {
	if this.url == "" {
		return nil
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, this.url+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("build %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := this.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("API error %d: %s", res.StatusCode, string(body))
	}

	return nil
}
