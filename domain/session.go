package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// ShoppingSession carries everything one browsing session knows about the
// product being viewed. It is owned by the session service and passed
// explicitly to whoever needs it.
type ShoppingSession struct {
	ID            string           `json:"id"`
	ActiveProduct *DetectedProduct `json:"active_product,omitempty"`
	Candidates    []Candidate      `json:"candidates"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// CREATE TABLE public.preferences (
//     session_id  TEXT PRIMARY KEY,
//     mode        TEXT NOT NULL,
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Preference struct {
	SessionID string    `gorm:"column:session_id;primaryKey" json:"session_id"`
	Mode      Mode      `gorm:"column:mode;not null" json:"mode"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Preference) TableName() string {
	return "preferences"
}
