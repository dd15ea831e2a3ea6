package domain

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.scrape_jobs (
//     id           UUID PRIMARY KEY,
//     session_id   TEXT NOT NULL,
//     url          TEXT NOT NULL,
//     external_id  TEXT,
//     status       TEXT NOT NULL,
//     error        TEXT,
//     result_count INT DEFAULT 0,
//     spec         JSONB,
//     deadline     TIMESTAMPTZ NOT NULL,
//     created_at   TIMESTAMPTZ DEFAULT NOW(),
//     updated_at   TIMESTAMPTZ DEFAULT NOW(),
//     finished_at  TIMESTAMPTZ
// );

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
	JobTimedOut  JobStatus = "timed_out"
)

var (
	ErrInvalidTransition = errors.New("invalid job status transition")
	ErrJobNotFound       = errors.New("scrape job not found")
)

func (s JobStatus) IsTerminal() bool {
	return s == JobSucceeded || s == JobFailed || s == JobTimedOut
}

// CanTransition reports whether a job may move from s to next.
// Only pending jobs move, and only into a terminal status.
func (s JobStatus) CanTransition(next JobStatus) bool {
	return s == JobPending && next.IsTerminal()
}

type ScrapeJob struct {
	ID          string         `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	SessionID   string         `gorm:"column:session_id;index;not null" json:"session_id"`
	URL         string         `gorm:"column:url;type:text;not null" json:"url"`
	ExternalID  string         `gorm:"column:external_id" json:"external_id,omitempty"`
	Status      JobStatus      `gorm:"column:status;index;not null" json:"status"`
	Error       string         `gorm:"column:error;type:text" json:"error,omitempty"`
	ResultCount int            `gorm:"column:result_count;default:0" json:"result_count"`
	Spec        datatypes.JSON `gorm:"column:spec" json:"spec,omitempty"`
	Deadline    time.Time      `gorm:"column:deadline;not null" json:"deadline"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at" json:"updated_at"`
	FinishedAt  *time.Time     `gorm:"column:finished_at" json:"finished_at,omitempty"`
}

func (ScrapeJob) TableName() string {
	return "scrape_jobs"
}

// Transition moves the job into next, stamping the finish time.
func (j *ScrapeJob) Transition(next JobStatus, reason string, at time.Time) error {
	if !j.Status.CanTransition(next) {
		return ErrInvalidTransition
	}
	j.Status = next
	j.Error = reason
	j.UpdatedAt = at
	j.FinishedAt = &at
	return nil
}
