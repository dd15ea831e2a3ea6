package scrape

import (
	"context"
	"errors"
	"fmt"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
	"scoutIO/pkg/metrics"
	"time"
)

// Janitor times out pending jobs whose worker never reported back, for
// example after a restart.
type Janitor struct {
	jobs  JobRepository
	grace time.Duration
}

func NewJanitor(jobs JobRepository, grace time.Duration) *Janitor {
	return &Janitor{jobs: jobs, grace: grace}
}

// Sweep marks pending jobs whose deadline passed more than grace ago as
// timed out and returns how many it changed.
func (j *Janitor) Sweep(ctx context.Context, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	expired, err := j.jobs.FindExpiredPending(ctx, now.Add(-j.grace))
	if err != nil {
		return 0, fmt.Errorf("failed to list expired jobs: %w", err)
	}

	swept := 0
	for i := range expired {
		job := &expired[i]
		if err := job.Transition(domain.JobTimedOut, ErrDeadlineExceeded.Error(), now); err != nil {
			continue
		}
		if err := j.jobs.Finish(ctx, job); err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				continue
			}
			return swept, fmt.Errorf("failed to time out job %s: %w", job.ID, err)
		}
		metrics.ScrapeJobsTotal.WithLabelValues(string(domain.JobTimedOut)).Inc()
		swept++
	}

	if swept > 0 {
		logger.Info("Timed out stale scrape jobs", "count", swept)
	}

	return swept, nil
}
