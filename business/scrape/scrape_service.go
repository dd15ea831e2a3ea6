package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"scoutIO/domain"
	"scoutIO/pkg/logger"
	"scoutIO/pkg/metrics"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidURL = errors.New("url must be an absolute http(s) url")

type JobRepository interface {
	Create(ctx context.Context, job *domain.ScrapeJob) error
	FindByID(ctx context.Context, id string) (domain.ScrapeJob, error)
	SetExternalID(ctx context.Context, id, externalID string) error
	// Finish persists a terminal status. It returns
	// domain.ErrInvalidTransition when the stored job is no longer pending.
	Finish(ctx context.Context, job *domain.ScrapeJob) error
	FindExpiredPending(ctx context.Context, before time.Time) ([]domain.ScrapeJob, error)
}

// CandidateSink receives the normalised results of a finished job.
type CandidateSink interface {
	SetCandidates(ctx context.Context, sessionID string, candidates []domain.Candidate) error
}

type Options struct {
	DatasetID    string
	PollInterval time.Duration
	JobDeadline  time.Duration
}

type Service struct {
	client   Client
	jobs     JobRepository
	sessions CandidateSink
	opts     Options
	now      func() time.Time

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewService(client Client, jobs JobRepository, sessions CandidateSink, opts Options) *Service {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}
	if opts.JobDeadline <= 0 {
		opts.JobDeadline = 2 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		client:   client,
		jobs:     jobs,
		sessions: sessions,
		opts:     opts,
		now:      time.Now,
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// Start records a pending job, submits it to the provider and follows it in
// the background until it reaches a terminal status.
func (s *Service) Start(ctx context.Context, sessionID, rawURL string) (*domain.ScrapeJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if !validURL(rawURL) {
		return nil, ErrInvalidURL
	}

	spec := JobSpec{URL: rawURL, DatasetID: s.opts.DatasetID}
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job spec: %w", err)
	}

	now := s.now()
	job := &domain.ScrapeJob{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		URL:       rawURL,
		Status:    domain.JobPending,
		Spec:      specJSON,
		Deadline:  now.Add(s.opts.JobDeadline),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create scrape job: %w", err)
	}

	externalID, err := s.client.SubmitJob(ctx, spec)
	if err != nil {
		logger.Error("Failed to submit scrape job", "job_id", job.ID, "error", err)
		s.finish(job, Outcome{Status: domain.JobFailed, Err: err}, 0)
		return job, fmt.Errorf("failed to submit scrape job: %w", err)
	}

	job.ExternalID = externalID
	if err := s.jobs.SetExternalID(ctx, job.ID, externalID); err != nil {
		logger.Error("Failed to store provider job id", "job_id", job.ID, "external_id", externalID, "error", err)
		s.finish(job, Outcome{Status: domain.JobFailed, Err: err}, 0)
		return nil, fmt.Errorf("failed to store provider job id: %w", err)
	}

	logger.Info("Scrape job submitted", "job_id", job.ID, "external_id", externalID, "session_id", sessionID)

	s.wg.Add(1)
	go s.follow(*job)

	return job, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.ScrapeJob, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScrapeJob{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := uuid.Parse(id); err != nil {
		return domain.ScrapeJob{}, domain.ErrJobNotFound
	}

	return s.jobs.FindByID(ctx, id)
}

// Close cancels every running job and waits for the workers to record
// their final status.
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Service) follow(job domain.ScrapeJob) {
	defer s.wg.Done()

	outcome := Await(s.baseCtx, s.client, job.ExternalID, AwaitOptions{
		PollInterval: s.opts.PollInterval,
		Deadline:     job.Deadline,
	})

	count := 0
	if outcome.Status == domain.JobSucceeded {
		candidates := Normalize(outcome.Items)
		count = len(candidates)

		ctx, cancel := s.detached()
		err := s.sessions.SetCandidates(ctx, job.SessionID, candidates)
		cancel()
		if err != nil {
			outcome = Outcome{Status: domain.JobFailed, Err: fmt.Errorf("failed to store candidates: %w", err)}
			count = 0
		}
	}

	s.finish(&job, outcome, count)
}

func (s *Service) finish(job *domain.ScrapeJob, outcome Outcome, count int) {
	reason := ""
	if outcome.Err != nil {
		reason = outcome.Err.Error()
	}

	if err := job.Transition(outcome.Status, reason, s.now()); err != nil {
		logger.Error("Scrape job already finished", "job_id", job.ID, "status", job.Status)
		return
	}
	job.ResultCount = count

	ctx, cancel := s.detached()
	defer cancel()

	if err := s.jobs.Finish(ctx, job); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			logger.Warn("Scrape job was finished elsewhere", "job_id", job.ID)
			return
		}
		logger.Error("Failed to persist scrape job status", "job_id", job.ID, "error", err)
		return
	}

	metrics.ScrapeJobsTotal.WithLabelValues(string(job.Status)).Inc()
	metrics.ScrapeJobDuration.Observe(job.UpdatedAt.Sub(job.CreatedAt).Seconds())

	logger.Info("Scrape job finished", "job_id", job.ID, "status", job.Status, "results", count, "reason", reason)
}

// detached outlives cancellation of the service so final writes still land.
func (s *Service) detached() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(s.baseCtx), 5*time.Second)
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
