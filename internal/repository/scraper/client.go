package scraper

import (
	"context"
	"fmt"
	"net/http"
	"scoutIO/business/scrape"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pobyzaarif/goshortcute"
)

type Config struct {
	BaseURL   string
	APIToken  string
	Username  string
	Password  string
	DatasetID string
	Timeout   time.Duration
}

// Client talks to the third-party scraping API:
//
//	POST /trigger            -> {"snapshot_id": "..."}
//	GET  /progress/{id}      -> {"status": "running|ready|failed"}
//	GET  /snapshot/{id}      -> [ {item}, ... ]
type Client struct {
	http *resty.Client
	cfg  Config
}

var _ scrape.Client = (*Client)(nil)

type triggerResponse struct {
	SnapshotID string `json:"snapshot_id"`
}

type progressResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err == nil && r.StatusCode() >= http.StatusInternalServerError
		})

	if cfg.APIToken != "" {
		client.SetAuthToken(cfg.APIToken)
	} else if cfg.Username != "" {
		client.SetHeader("Authorization", "Basic "+goshortcute.StringtoBase64Encode(cfg.Username+":"+cfg.Password))
	}

	return &Client{http: client, cfg: cfg}
}

func (c *Client) SubmitJob(ctx context.Context, spec scrape.JobSpec) (string, error) {
	datasetID := spec.DatasetID
	if datasetID == "" {
		datasetID = c.cfg.DatasetID
	}

	var out triggerResponse
	var apiErr apiError
	req := c.http.R().
		SetContext(ctx).
		SetBody([]map[string]string{{"url": spec.URL}}).
		SetResult(&out).
		SetError(&apiErr)
	if datasetID != "" {
		req.SetQueryParam("dataset_id", datasetID)
	}

	res, err := req.Post("/trigger")
	if err != nil {
		return "", fmt.Errorf("failed to trigger scrape: %w", err)
	}
	if res.IsError() {
		return "", responseError("trigger", res, apiErr)
	}
	if out.SnapshotID == "" {
		return "", fmt.Errorf("scraping API returned no snapshot id")
	}

	return out.SnapshotID, nil
}

func (c *Client) GetStatus(ctx context.Context, externalID string) (scrape.ProviderStatus, error) {
	var out progressResponse
	var apiErr apiError
	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", externalID).
		SetResult(&out).
		SetError(&apiErr).
		Get("/progress/{id}")
	if err != nil {
		return scrape.ProviderStatus{}, fmt.Errorf("failed to get scrape progress: %w", err)
	}
	if res.IsError() {
		return scrape.ProviderStatus{}, responseError("progress", res, apiErr)
	}

	return scrape.ProviderStatus{State: mapState(out.Status), Message: out.Message}, nil
}

func (c *Client) GetResults(ctx context.Context, externalID string) ([]scrape.RawItem, error) {
	var items []scrape.RawItem
	var apiErr apiError
	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", externalID).
		SetQueryParam("format", "json").
		SetResult(&items).
		SetError(&apiErr).
		Get("/snapshot/{id}")
	if err != nil {
		return nil, fmt.Errorf("failed to download snapshot: %w", err)
	}
	if res.IsError() {
		return nil, responseError("snapshot", res, apiErr)
	}

	return items, nil
}

// mapState folds the provider's status vocabulary into three states.
func mapState(status string) scrape.ProviderState {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "ready", "done", "completed", "success":
		return scrape.ProviderReady
	case "failed", "error", "cancelled", "canceled":
		return scrape.ProviderFailed
	default:
		return scrape.ProviderRunning
	}
}

func responseError(op string, res *resty.Response, apiErr apiError) error {
	msg := apiErr.Message
	if msg == "" {
		msg = apiErr.Error
	}
	if msg == "" {
		msg = strings.TrimSpace(string(res.Body()))
	}
	return fmt.Errorf("scraping API %s returned %d: %s", op, res.StatusCode(), msg)
}
