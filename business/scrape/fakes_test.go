package scrape

import (
	"context"
	"errors"
	"scoutIO/domain"
	"sort"
	"sync"
	"time"
)

type fakeClient struct {
	mu        sync.Mutex
	submitErr error
	statuses  []ProviderStatus
	statusErr []error
	items     []RawItem
	resultErr error
	polls     int
	submitted []JobSpec
}

func (f *fakeClient) SubmitJob(ctx context.Context, spec JobSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = append(f.submitted, spec)
	return "snap-1", nil
}

// GetStatus replays the scripted statuses and repeats the last one.
func (f *fakeClient) GetStatus(ctx context.Context, externalID string) (ProviderStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.polls
	f.polls++
	if i < len(f.statusErr) && f.statusErr[i] != nil {
		return ProviderStatus{}, f.statusErr[i]
	}
	if len(f.statuses) == 0 {
		return ProviderStatus{State: ProviderRunning}, nil
	}
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	return f.statuses[i], nil
}

func (f *fakeClient) GetResults(ctx context.Context, externalID string) ([]RawItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items, f.resultErr
}

func (f *fakeClient) pollCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polls
}

type memoryJobs struct {
	mu   sync.Mutex
	jobs map[string]domain.ScrapeJob

	setExternalErr error
}

func newMemoryJobs() *memoryJobs {
	return &memoryJobs{jobs: map[string]domain.ScrapeJob{}}
}

func (m *memoryJobs) Create(ctx context.Context, job *domain.ScrapeJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.ID] = *job
	return nil
}

func (m *memoryJobs) FindByID(ctx context.Context, id string) (domain.ScrapeJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return domain.ScrapeJob{}, domain.ErrJobNotFound
	}
	return job, nil
}

func (m *memoryJobs) SetExternalID(ctx context.Context, id, externalID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setExternalErr != nil {
		return m.setExternalErr
	}
	job, ok := m.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	job.ExternalID = externalID
	m.jobs[id] = job
	return nil
}

func (m *memoryJobs) Finish(ctx context.Context, job *domain.ScrapeJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.jobs[job.ID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if stored.Status != domain.JobPending {
		return domain.ErrInvalidTransition
	}
	m.jobs[job.ID] = *job
	return nil
}

func (m *memoryJobs) FindExpiredPending(ctx context.Context, before time.Time) ([]domain.ScrapeJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ScrapeJob
	for _, job := range m.jobs {
		if job.Status == domain.JobPending && job.Deadline.Before(before) {
			out = append(out, job)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryJobs) status(id string) domain.JobStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.jobs[id].Status
}

type memorySink struct {
	mu         sync.Mutex
	err        error
	candidates map[string][]domain.Candidate
}

func (s *memorySink) SetCandidates(ctx context.Context, sessionID string, candidates []domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.candidates == nil {
		s.candidates = map[string][]domain.Candidate{}
	}
	s.candidates[sessionID] = candidates
	return nil
}

func (s *memorySink) get(sessionID string) []domain.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.candidates[sessionID]
}

var errFlaky = errors.New("connection reset")
