package scrape

import (
	"context"
	"encoding/json"
	"scoutIO/domain"
)

// JobSpec is what gets submitted to the scraping provider.
type JobSpec struct {
	URL       string `json:"url"`
	DatasetID string `json:"dataset_id,omitempty"`
}

type ProviderState string

const (
	ProviderRunning ProviderState = "running"
	ProviderReady   ProviderState = "ready"
	ProviderFailed  ProviderState = "failed"
)

type ProviderStatus struct {
	State   ProviderState `json:"status"`
	Message string        `json:"message,omitempty"`
}

// RawItem is one product row as the provider returns it. Prices and ratings
// arrive as numbers or as display strings, so they are kept raw until
// Normalize runs.
type RawItem struct {
	ID             domain.CandidateID `json:"id"`
	Title          string             `json:"title"`
	Name           string             `json:"name"`
	Price          json.RawMessage    `json:"price"`
	OldPrice       json.RawMessage    `json:"old_price"`
	Rating         json.RawMessage    `json:"rating"`
	Shipping       string             `json:"shipping"`
	Quality        string             `json:"quality"`
	Tags           []string           `json:"tags"`
	AdvantageLabel string             `json:"advantage_label"`
	URL            string             `json:"url"`
	Image          string             `json:"image"`
	Retailer       string             `json:"retailer"`
}

// Client is the third-party scraping API.
type Client interface {
	SubmitJob(ctx context.Context, spec JobSpec) (string, error)
	GetStatus(ctx context.Context, externalID string) (ProviderStatus, error)
	GetResults(ctx context.Context, externalID string) ([]RawItem, error)
}
