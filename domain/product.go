package domain

import (
	"time"
)

// DetectedProduct is the product the user is currently looking at.
type DetectedProduct struct {
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Price    *float64 `json:"price,omitempty"`
	Currency string   `json:"currency,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Retailer string   `json:"retailer,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
}

// CREATE TABLE public.tracked_products (
//     id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     url           TEXT UNIQUE NOT NULL,
//     title         TEXT,
//     retailer      TEXT,
//     currency      TEXT,
//     image_url     TEXT,
//     last_price    NUMERIC,
//     lowest_price  NUMERIC,
//     seen_count    INT DEFAULT 0,
//     created_at    TIMESTAMPTZ DEFAULT NOW(),
//     updated_at    TIMESTAMPTZ DEFAULT NOW()
// );

type TrackedProduct struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	URL         string    `gorm:"column:url;type:text;uniqueIndex;not null" json:"url"`
	Title       string    `gorm:"column:title;type:text" json:"title"`
	Retailer    string    `gorm:"column:retailer;type:text" json:"retailer"`
	Currency    string    `gorm:"column:currency;type:text" json:"currency"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"image_url"`
	LastPrice   *float64  `gorm:"column:last_price;type:numeric" json:"last_price,omitempty"`
	LowestPrice *float64  `gorm:"column:lowest_price;type:numeric" json:"lowest_price,omitempty"`
	SeenCount   int       `gorm:"column:seen_count;default:0" json:"seen_count"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (TrackedProduct) TableName() string {
	return "tracked_products"
}

// Observe folds a fresh sighting of the product into the tracked row.
func (p *TrackedProduct) Observe(d DetectedProduct) {
	p.URL = d.URL
	if d.Title != "" {
		p.Title = d.Title
	}
	if d.Retailer != "" {
		p.Retailer = d.Retailer
	}
	if d.Currency != "" {
		p.Currency = d.Currency
	}
	if d.ImageURL != "" {
		p.ImageURL = d.ImageURL
	}
	if d.Price != nil {
		price := *d.Price
		p.LastPrice = &price
		if p.LowestPrice == nil || price < *p.LowestPrice {
			lowest := price
			p.LowestPrice = &lowest
		}
	}
	p.SeenCount++
}
