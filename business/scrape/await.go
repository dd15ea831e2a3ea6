package scrape

import (
	"context"
	"errors"
	"fmt"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
	"time"
)

type AwaitOptions struct {
	PollInterval time.Duration
	Deadline     time.Time
}

// Outcome is the terminal state reached by Await.
type Outcome struct {
	Status domain.JobStatus
	Items  []RawItem
	Err    error
}

var (
	ErrDeadlineExceeded = errors.New("scrape job deadline exceeded")
	ErrProviderFailed   = errors.New("scraping provider reported failure")
)

// Await polls the provider until the job is ready, failed, the deadline
// passes, or ctx is cancelled. Status errors are treated as transient and
// retried on the next tick.
func Await(ctx context.Context, client Client, externalID string, opts AwaitOptions) Outcome {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = time.Second
	}

	pollCtx, cancel := context.WithDeadline(ctx, opts.Deadline)
	defer cancel()

	timer := time.NewTimer(0)
	defer timer.Stop()

	attempt := 0
	for {
		if pollCtx.Err() != nil {
			return stopped(ctx, pollCtx)
		}

		select {
		case <-pollCtx.Done():
			return stopped(ctx, pollCtx)
		case <-timer.C:
		}

		attempt++
		status, err := client.GetStatus(pollCtx, externalID)
		if err != nil {
			if pollCtx.Err() != nil {
				return stopped(ctx, pollCtx)
			}
			logger.Warn("scrape status check failed", "external_id", externalID, "attempt", attempt, "error", err)
			timer.Reset(interval)
			continue
		}

		switch status.State {
		case ProviderReady:
			items, err := client.GetResults(pollCtx, externalID)
			if err != nil {
				if pollCtx.Err() != nil {
					return stopped(ctx, pollCtx)
				}
				return Outcome{Status: domain.JobFailed, Err: fmt.Errorf("failed to fetch results: %w", err)}
			}
			return Outcome{Status: domain.JobSucceeded, Items: items}
		case ProviderFailed:
			err := ErrProviderFailed
			if status.Message != "" {
				err = fmt.Errorf("%w: %s", ErrProviderFailed, status.Message)
			}
			return Outcome{Status: domain.JobFailed, Err: err}
		}

		logger.Debug("scrape job still running", "external_id", externalID, "attempt", attempt)
		timer.Reset(interval)
	}
}

// stopped distinguishes a caller cancellation from the poll deadline.
func stopped(parent, pollCtx context.Context) Outcome {
	if err := parent.Err(); err != nil {
		return Outcome{Status: domain.JobFailed, Err: err}
	}
	if errors.Is(pollCtx.Err(), context.DeadlineExceeded) {
		return Outcome{Status: domain.JobTimedOut, Err: ErrDeadlineExceeded}
	}
	return Outcome{Status: domain.JobFailed, Err: pollCtx.Err()}
}
