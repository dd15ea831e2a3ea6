package postgres

import (
	"context"
	"errors"
	"fmt"
	"scoutIO/domain"
	"time"

	"gorm.io/gorm"
)

type ScrapeJobRepository struct {
	DB *gorm.DB
}

func NewScrapeJobRepository(db *gorm.DB) *ScrapeJobRepository {
	return &ScrapeJobRepository{DB: db}
}

func (r *ScrapeJobRepository) Create(ctx context.Context, job *domain.ScrapeJob) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create scrape job: %w", err)
	}

	return nil
}

func (r *ScrapeJobRepository) FindByID(ctx context.Context, id string) (domain.ScrapeJob, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScrapeJob{}, fmt.Errorf("context error: %w", err)
	}

	var job domain.ScrapeJob
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ScrapeJob{}, domain.ErrJobNotFound
		}
		return domain.ScrapeJob{}, fmt.Errorf("failed to find scrape job: %w", err)
	}

	return job, nil
}

func (r *ScrapeJobRepository) SetExternalID(ctx context.Context, id, externalID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.ScrapeJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"external_id": externalID,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update scrape job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}

// Finish only touches rows that are still pending, so a worker and the
// janitor can never both finish the same job.
func (r *ScrapeJobRepository) Finish(ctx context.Context, job *domain.ScrapeJob) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.ScrapeJob{}).
		Where("id = ? AND status = ?", job.ID, domain.JobPending).
		Updates(map[string]interface{}{
			"status":       job.Status,
			"error":        job.Error,
			"result_count": job.ResultCount,
			"updated_at":   job.UpdatedAt,
			"finished_at":  job.FinishedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to finish scrape job: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvalidTransition
	}

	return nil
}

func (r *ScrapeJobRepository) FindExpiredPending(ctx context.Context, before time.Time) ([]domain.ScrapeJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var jobs []domain.ScrapeJob
	err := r.DB.WithContext(ctx).
		Where("status = ? AND deadline < ?", domain.JobPending, before).
		Order("deadline ASC").
		Limit(500).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find expired scrape jobs: %w", err)
	}

	return jobs, nil
}
