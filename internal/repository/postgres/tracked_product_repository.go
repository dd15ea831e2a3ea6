package postgres

import (
	"context"
	"errors"
	"fmt"
	"scoutIO/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrackedProductRepository struct {
	DB *gorm.DB
}

func NewTrackedProductRepository(db *gorm.DB) *TrackedProductRepository {
	return &TrackedProductRepository{
		DB: db,
	}
}

// Observe records a sighting of a detected product and returns the updated
// row, including the lowest price seen so far.
func (r *TrackedProductRepository) Observe(ctx context.Context, product domain.DetectedProduct) (domain.TrackedProduct, error) {
	if err := ctx.Err(); err != nil {
		return domain.TrackedProduct{}, fmt.Errorf("context error: %w", err)
	}

	var tracked domain.TrackedProduct
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("url = ?", product.URL).
			First(&tracked).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to find tracked product: %w", err)
		}

		tracked.Observe(product)

		if err := tx.Save(&tracked).Error; err != nil {
			return fmt.Errorf("failed to save tracked product: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.TrackedProduct{}, err
	}

	return tracked, nil
}

func (r *TrackedProductRepository) FindByURL(ctx context.Context, url string) (domain.TrackedProduct, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.TrackedProduct{}, false, fmt.Errorf("context error: %w", err)
	}

	var tracked domain.TrackedProduct
	err := r.DB.WithContext(ctx).Where("url = ?", url).First(&tracked).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.TrackedProduct{}, false, nil
	}
	if err != nil {
		return domain.TrackedProduct{}, false, fmt.Errorf("failed to find tracked product: %w", err)
	}

	return tracked, true, nil
}
