package postgres

import (
	"context"
	"errors"
	"fmt"
	"scoutIO/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepository struct {
	DB *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

func (r *PreferenceRepository) Get(ctx context.Context, sessionID string) (domain.Preference, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Preference{}, false, fmt.Errorf("context error: %w", err)
	}

	var pref domain.Preference
	err := r.DB.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Preference{}, false, nil
	}
	if err != nil {
		return domain.Preference{}, false, fmt.Errorf("failed to find preference: %w", err)
	}

	return pref, true, nil
}

func (r *PreferenceRepository) Upsert(ctx context.Context, pref domain.Preference) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"mode", "updated_at"}),
		}).
		Create(&pref).Error
	if err != nil {
		return fmt.Errorf("failed to upsert preference: %w", err)
	}

	return nil
}
